// Copyright (c) 2026 Motorpool. All rights reserved.

package car

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/dberr"
)

// uniqueVIN declares the constraint the insert and update statements can trip.
var uniqueVIN = dberr.Unique{
	Constraint: "cars_vin_key",
	Field:      FieldVIN,
	Message:    "VIN must be unique",
}

// searchColumns maps allow-listed field names to their column names. The
// caller-supplied field never reaches the SQL text directly — only values
// from this map do.
var searchColumns = map[string]string{
	FieldManufacturer: "manufacturer",
	FieldModel:        "model",
	FieldYear:         "year",
	FieldColor:        "color",
	FieldVIN:          "vin",
}

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new car record.
//
// Uniqueness is the index's job: a concurrent duplicate VIN loses the race
// here and surfaces as [apperr.Conflict], regardless of any pre-check the
// service ran.
func (repository *PostgresRepository) Create(ctx context.Context, car *Car) error {
	const query = `
		INSERT INTO cars (id, manufacturer, model, year, color, vin, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if car.CreatedAt.IsZero() {
		car.CreatedAt = now
	}
	car.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		car.ID,
		car.Manufacturer,
		car.Model,
		car.Year,
		car.Color,
		car.VIN,
		car.CreatedAt,
		car.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "create_car", uniqueVIN)
	}

	return nil
}

// List returns cars in non-decreasing CreatedAt order with the total count.
//
// The result reflects a snapshot at query time; no isolation against
// concurrent writes is promised.
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Car, int, error) {
	const query = `
		SELECT id, manufacturer, model, year, color, vin, createdat, updatedat
		FROM cars
		ORDER BY createdat ASC
		LIMIT $1 OFFSET $2`
	const countQuery = `SELECT count(*) FROM cars`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_cars")
	}

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_cars")
	}
	defer rows.Close()

	var cars []*Car
	for rows.Next() {
		c := &Car{}
		if err := rows.Scan(&c.ID, &c.Manufacturer, &c.Model, &c.Year, &c.Color, &c.VIN, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_car")
		}
		cars = append(cars, c)
	}

	return cars, total, nil
}

// FindByID returns the car with the given id, or [apperr.NotFound].
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Car, error) {
	const query = `
		SELECT id, manufacturer, model, year, color, vin, createdat, updatedat
		FROM cars
		WHERE id = $1`

	c := &Car{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Manufacturer, &c.Model, &c.Year, &c.Color, &c.VIN, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, carNotFound(dberr.Wrap(err, "get_car"))
	}

	return c, nil
}

// FindByVIN returns the car with the given VIN, or [apperr.NotFound].
func (repository *PostgresRepository) FindByVIN(ctx context.Context, vin string) (*Car, error) {
	const query = `
		SELECT id, manufacturer, model, year, color, vin, createdat, updatedat
		FROM cars
		WHERE vin = $1`

	c := &Car{}
	err := repository.pool.QueryRow(ctx, query, vin).Scan(
		&c.ID, &c.Manufacturer, &c.Model, &c.Year, &c.Color, &c.VIN, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, carNotFound(dberr.Wrap(err, "get_car_by_vin"))
	}

	return c, nil
}

// Update writes the merged record back.
func (repository *PostgresRepository) Update(ctx context.Context, car *Car) error {
	const query = `
		UPDATE cars
		SET manufacturer = $2, model = $3, year = $4, color = $5, vin = $6, updatedat = $7
		WHERE id = $1`

	car.UpdatedAt = time.Now()

	cmd, err := repository.pool.Exec(ctx, query,
		car.ID,
		car.Manufacturer,
		car.Model,
		car.Year,
		car.Color,
		car.VIN,
		car.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_car", uniqueVIN)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Car")
	}

	return nil
}

// Delete removes a car by id.
//
// Zero rows affected is success: deleting what is already gone is a no-op
// by design, unlike lookups where absence is an error.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM cars WHERE id = $1`

	if _, err := repository.pool.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "delete_car")
	}

	return nil
}

// Search returns cars matching field == value exactly.
//
// The column is resolved through searchColumns; an unknown field is an
// internal error here because the service validates against the allow-list
// first — reaching this path with a bad field is a programming bug, not
// user input.
func (repository *PostgresRepository) Search(ctx context.Context, field string, value any, limit, offset int) ([]*Car, int, error) {
	column, ok := searchColumns[field]
	if !ok {
		return nil, 0, apperr.Internal(fmt.Errorf("car: search field %q bypassed the allow-list", field))
	}

	query := fmt.Sprintf(`
		SELECT id, manufacturer, model, year, color, vin, createdat, updatedat
		FROM cars
		WHERE %s = $1
		ORDER BY createdat ASC
		LIMIT $2 OFFSET $3`, column)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM cars WHERE %s = $1`, column)

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, value).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_search_cars")
	}

	rows, err := repository.pool.Query(ctx, query, value, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_cars")
	}
	defer rows.Close()

	var cars []*Car
	for rows.Next() {
		c := &Car{}
		if err := rows.Scan(&c.ID, &c.Manufacturer, &c.Model, &c.Year, &c.Color, &c.VIN, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_car")
		}
		cars = append(cars, c)
	}

	return cars, total, nil
}

// carNotFound rewrites dberr's generic not-found into one naming the resource.
func carNotFound(err error) error {
	if err == dberr.ErrNotFound {
		return apperr.NotFound("Car")
	}
	return err
}
