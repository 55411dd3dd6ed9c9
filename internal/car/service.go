// Copyright (c) 2026 Motorpool. All rights reserved.

package car

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/validate"
	"github.com/motorpoolhq/motorpool/pkg/uuidv7"
)

// Service implements the vehicle inventory use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the fields required to add a vehicle.
type CreateInput struct {
	Manufacturer string
	Model        string
	Year         int
	Color        string
	VIN          string
}

// UpdateInput holds a partial set of fields to merge into an existing
// vehicle. Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Manufacturer *string
	Model        *string
	Year         *int
	Color        *string
	VIN          *string
}

// Create validates and persists a new vehicle.
//
// # Flow
//  1. Run the full schema in one pass so every violation is reported.
//  2. Pre-check the VIN for a friendlier conflict message. This is purely
//     an optimization: two concurrent creates can both pass it, and the
//     unique index in storage still admits exactly one.
//  3. Insert; a storage-level rejection surfaces as [apperr.Conflict]
//     naming "vin".
func (service *Service) Create(ctx context.Context, input CreateInput) (*Car, error) {
	car := &Car{
		ID:           uuidv7.New(),
		Manufacturer: input.Manufacturer,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		VIN:          input.VIN,
	}

	if err := validateCar(car); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByVIN(ctx, car.VIN); err == nil {
		return nil, vinConflict()
	}

	if err := service.repo.Create(ctx, car); err != nil {
		return nil, err
	}

	service.logger.Info("car_created",
		slog.String("car_id", car.ID),
		slog.String("vin", car.VIN),
	)
	return car, nil
}

// List returns vehicles ordered by creation time, bounded by limit.
func (service *Service) List(ctx context.Context, limit, offset int) ([]*Car, int, error) {
	return service.repo.List(ctx, limit, offset)
}

// Get returns a single vehicle by id.
func (service *Service) Get(ctx context.Context, id string) (*Car, error) {
	return service.repo.FindByID(ctx, id)
}

// Update merges the given partial fields into the existing record,
// re-validates the merged result against the full schema, and persists it.
//
// Re-validating the merged record means an update can fail because of a
// field it did not touch — if a record somehow holds an out-of-range year,
// any partial update must fix it before going through.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Car, error) {
	car, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vinChanged := false
	if input.Manufacturer != nil {
		car.Manufacturer = *input.Manufacturer
	}
	if input.Model != nil {
		car.Model = *input.Model
	}
	if input.Year != nil {
		car.Year = *input.Year
	}
	if input.Color != nil {
		car.Color = *input.Color
	}
	if input.VIN != nil {
		vinChanged = car.VIN != *input.VIN
		car.VIN = *input.VIN
	}

	if err := validateCar(car); err != nil {
		return nil, err
	}

	if vinChanged {
		if _, err := service.repo.FindByVIN(ctx, car.VIN); err == nil {
			return nil, vinConflict()
		}
	}

	if err := service.repo.Update(ctx, car); err != nil {
		return nil, err
	}

	service.logger.Info("car_updated", slog.String("car_id", car.ID))
	return car, nil
}

// Delete removes a vehicle by id. Deleting an unknown id succeeds silently.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("car_deleted", slog.String("car_id", id))
	return nil
}

// Search returns vehicles whose field equals value exactly.
//
// The field name is checked against [SearchableFields] before any query is
// built; anything else is a validation error. The year value must parse as
// an integer.
func (service *Service) Search(ctx context.Context, field, value string, limit, offset int) ([]*Car, int, error) {
	validator := &validate.Validator{}
	validator.
		OneOf("field", field, SearchableFields...).
		Required("value", value)

	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	var typedValue any = value
	if field == FieldYear {
		year, err := strconv.Atoi(value)
		if err != nil {
			return nil, 0, validate.RequiredError("value", "Must be an integer for field 'year'")
		}
		typedValue = year
	}

	return service.repo.Search(ctx, field, typedValue, limit, offset)
}

// validateCar runs the full vehicle schema: every rule is checked so the
// caller sees all violations at once.
func validateCar(car *Car) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldManufacturer, car.Manufacturer).
		MaxLen(FieldManufacturer, car.Manufacturer, MaxTextLen).
		Required(FieldModel, car.Model).
		MaxLen(FieldModel, car.Model, MaxTextLen).
		Range(FieldYear, car.Year, MinYear, MaxYear).
		Required(FieldColor, car.Color).
		MaxLen(FieldColor, car.Color, MaxTextLen).
		Required(FieldVIN, car.VIN).
		ExactLen(FieldVIN, car.VIN, VINLength)

	return validator.Err()
}

// vinConflict is the friendly duplicate-VIN error produced by pre-checks.
// It is byte-identical to the one dberr derives from the unique index so
// clients cannot tell which path rejected them.
func vinConflict() error {
	return apperr.Conflict("VIN must be unique", apperr.FieldError{
		Field:   FieldVIN,
		Message: "VIN must be unique",
	})
}
