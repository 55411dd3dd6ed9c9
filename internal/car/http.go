// Copyright (c) 2026 Motorpool. All rights reserved.

// HTTP delivery layer for the vehicle inventory.
//
// Every route in this package is guarded: an unauthenticated request is
// rejected with 401 before any handler body runs.

package car

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/motorpoolhq/motorpool/internal/platform/middleware"
	requestutil "github.com/motorpoolhq/motorpool/internal/platform/request"
	"github.com/motorpoolhq/motorpool/internal/platform/respond"
	"github.com/motorpoolhq/motorpool/pkg/pagination"
)

// Handler implements inventory-related HTTP endpoints.
type Handler struct {
	carService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{carService: service}
}

// Routes returns a [chi.Router] configured with inventory routes.
//
// # Endpoints
//   - GET    /        : Lists vehicles (paginated).
//   - POST   /        : Adds a vehicle.
//   - GET    /search  : Exact-match search on an allow-listed field.
//   - GET    /{id}    : Fetches one vehicle.
//   - PATCH  /{id}    : Partially updates a vehicle.
//   - DELETE /{id}    : Removes a vehicle (idempotent).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Authentication is mandatory for the entire inventory surface.
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// carRequest represents the JSON payload for creating a vehicle.
type carRequest struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	VIN          string `json:"vin"`
}

// carPatchRequest represents the JSON payload for a partial update.
// Absent fields stay nil and leave the stored value untouched.
type carPatchRequest struct {
	Manufacturer *string `json:"manufacturer"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	Color        *string `json:"color"`
	VIN          *string `json:"vin"`
}

// create handles POST /api/v1/cars requests.
//
// # Returns
//   - HTTP 201 Created on success with the stored vehicle.
//   - HTTP 400 Bad Request if validation rules fail.
//   - HTTP 409 Conflict if the VIN is already registered.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input carRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Service Invocation ─────────────────────────────────────────────

	car, err := handler.carService.Create(request.Context(), CreateInput{
		Manufacturer: input.Manufacturer,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		VIN:          input.VIN,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Response ───────────────────────────────────────────────────────

	respond.Created(writer, car)
}

// list handles GET /api/v1/cars requests with pagination support.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	cars, total, err := handler.carService.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cars, pagination.NewMeta(params.Page, params.Limit, total))
}

// get handles GET /api/v1/cars/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	car, err := handler.carService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, car)
}

// update handles PATCH /api/v1/cars/{id} requests.
//
// The merged record (stored values plus supplied fields) must satisfy the
// full schema, so a patch can surface validation errors on fields it never
// mentioned.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	id := requestutil.ID(request, "id")

	var input carPatchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Service Invocation ─────────────────────────────────────────────

	car, err := handler.carService.Update(request.Context(), id, UpdateInput{
		Manufacturer: input.Manufacturer,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		VIN:          input.VIN,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Response ───────────────────────────────────────────────────────

	respond.OK(writer, car)
}

// remove handles DELETE /api/v1/cars/{id} requests.
//
// Deleting an id that does not exist still returns 204: the end state
// ("no such vehicle") is identical either way.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.carService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// search handles GET /api/v1/cars/search?field=...&value=... requests.
//
// # Returns
//   - HTTP 200 OK with the (possibly empty) list of exact matches.
//   - HTTP 400 Bad Request if the field is not searchable or the value
//     cannot be typed for it.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	field := query.Get("field")
	value := query.Get("value")
	params := pagination.FromRequest(request)

	cars, total, err := handler.carService.Search(request.Context(), field, value, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cars, pagination.NewMeta(params.Page, params.Limit, total))
}
