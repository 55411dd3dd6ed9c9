// Copyright (c) 2026 Motorpool. All rights reserved.

package car

import "context"

// Repository defines the data access contract for vehicle records.
//
// # Implementations
//
// The canonical implementation for Motorpool is PostgreSQL
// ([PostgresRepository]). Tests use an in-memory fake.
type Repository interface {
	// Create persists a new car. The insert is rejected by the storage-level
	// unique index if the VIN already exists; exactly one of two concurrent
	// inserts with the same VIN wins. Returns [apperr.Conflict] naming "vin"
	// on rejection.
	Create(ctx context.Context, car *Car) error

	// List returns cars ordered by CreatedAt ascending, with the total count.
	List(ctx context.Context, limit, offset int) ([]*Car, int, error)

	// FindByID returns the car with the given id.
	//
	// Returns [apperr.NotFound] if it does not exist.
	FindByID(ctx context.Context, id string) (*Car, error)

	// FindByVIN returns the car with the given VIN.
	//
	// Returns [apperr.NotFound] if it does not exist.
	FindByVIN(ctx context.Context, vin string) (*Car, error)

	// Update writes the full (already merged and re-validated) record back.
	// Returns [apperr.NotFound] if the row is gone, [apperr.Conflict] if the
	// new VIN collides.
	Update(ctx context.Context, car *Car) error

	// Delete removes a car by id. Deleting a non-existent id is NOT an
	// error — the operation is idempotent.
	Delete(ctx context.Context, id string) error

	// Search returns cars whose field equals value exactly, ordered by
	// CreatedAt ascending, with the total count. field MUST have been
	// checked against [SearchableFields] by the caller; the implementation
	// still refuses anything outside its own column map.
	Search(ctx context.Context, field string, value any, limit, offset int) ([]*Car, int, error)
}
