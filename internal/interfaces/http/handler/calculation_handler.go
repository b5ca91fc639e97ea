package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/application/port"
)

// CalculationHandler serves the calculators and their history.
type CalculationHandler struct {
	calc Calculator
	log  port.Logger
}

// NewCalculationHandler creates the handler.
func NewCalculationHandler(calc Calculator, log port.Logger) *CalculationHandler {
	if log == nil {
		log = port.NopLogger{}
	}
	return &CalculationHandler{calc: calc, log: log}
}

// Routes mounts the calculation endpoints.
//
//	POST   /center-of-gravity
//	POST   /axle-center-of-gravity
//	POST   /restraint
//	POST   /container-fit
//	GET    /
//	GET    /{id}
//	DELETE /{id}
func (h *CalculationHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/center-of-gravity", h.CenterOfGravity)
	r.Post("/axle-center-of-gravity", h.AxleCenterOfGravity)
	r.Post("/restraint", h.Restraint)
	r.Post("/container-fit", h.ContainerFit)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	return r
}

// CenterOfGravity handles POST /center-of-gravity.
func (h *CalculationHandler) CenterOfGravity(w http.ResponseWriter, r *http.Request) {
	var req dto.CenterOfGravityRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.calc.CenterOfGravity(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, r, http.StatusOK, resp)
}

// AxleCenterOfGravity handles POST /axle-center-of-gravity.
func (h *CalculationHandler) AxleCenterOfGravity(w http.ResponseWriter, r *http.Request) {
	var req dto.AxleCenterOfGravityRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.calc.AxleCenterOfGravity(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, r, http.StatusOK, resp)
}

// Restraint handles POST /restraint.
func (h *CalculationHandler) Restraint(w http.ResponseWriter, r *http.Request) {
	var req dto.RestraintRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.calc.Restraint(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, r, http.StatusOK, resp)
}

// ContainerFit handles POST /container-fit.
func (h *CalculationHandler) ContainerFit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContainerFitRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.calc.ContainerFit(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, r, http.StatusOK, resp)
}

// List handles GET / with kind, outcome, label, limit and offset query parameters.
func (h *CalculationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.ListCalculationsRequest{
		Kind:    q.Get("kind"),
		Outcome: q.Get("outcome"),
		Label:   q.Get("label"),
	}

	var errs []dto.ValidationError
	for name, dst := range map[string]*int{"limit": &req.Limit, "offset": &req.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, dto.ValidationError{Field: name, Message: "must be an integer", Value: raw})
			continue
		}
		*dst = n
	}
	if len(errs) > 0 {
		respondValidation(w, r, errs)
		return
	}

	page, err := h.calc.ListCalculations(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

// Get handles GET /{id}.
func (h *CalculationHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.calc.GetCalculation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respond(w, r, http.StatusOK, resp)
}

// Delete handles DELETE /{id}.
func (h *CalculationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.calc.DeleteCalculation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	render.NoContent(w, r)
}

// Containers handles GET /api/v1/containers.
func (h *CalculationHandler) Containers(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, h.calc.Containers())
}
