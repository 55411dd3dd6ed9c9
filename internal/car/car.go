// Copyright (c) 2026 Motorpool. All rights reserved.

// Package car owns the vehicle inventory: the Car entity, its validation
// schema, and the repository operations over it.
package car

import "time"

// Car represents one vehicle record in the inventory.
//
// # Rules
//   - VIN is unique — enforced by the storage layer's unique index, never by
//     application-level locking.
//   - CreatedAt is assigned at insertion time and is the default list
//     ordering key.
type Car struct {
	ID           string    `json:"id"`
	Manufacturer string    `json:"manufacturer"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Color        string    `json:"color"`
	VIN          string    `json:"vin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Field names used in validation messages and as search keys.
const (
	FieldManufacturer = "manufacturer"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldColor        = "color"
	FieldVIN          = "vin"
)

// Schema bounds.
const (
	// MaxTextLen bounds manufacturer, model, and color.
	MaxTextLen = 50
	// MinYear and MaxYear bound the model year (inclusive).
	MinYear = 1900
	MaxYear = 2100
	// VINLength is the fixed length of a vehicle identification number.
	VINLength = 17
)

// SearchableFields is the allow-list of attribute names accepted as a search
// key. A caller-supplied field name is never used as a query key unless it
// appears here — anything else is a validation error, not an empty result.
var SearchableFields = []string{
	FieldManufacturer,
	FieldModel,
	FieldYear,
	FieldColor,
	FieldVIN,
}
