// Package handler contains the HTTP handlers of the calculation API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/application/port"
	"github.com/hapkiduki/loadplan-go/internal/application/service"
	"github.com/hapkiduki/loadplan-go/internal/interfaces/http/middleware"
)

// Calculator is the application service used by the handlers.
type Calculator interface {
	CenterOfGravity(ctx context.Context, req dto.CenterOfGravityRequest) (*dto.CenterOfGravityResponse, error)
	AxleCenterOfGravity(ctx context.Context, req dto.AxleCenterOfGravityRequest) (*dto.CenterOfGravityResponse, error)
	Restraint(ctx context.Context, req dto.RestraintRequest) (*dto.RestraintResponse, error)
	ContainerFit(ctx context.Context, req dto.ContainerFitRequest) (*dto.ContainerFitResponse, error)
	Containers() []dto.ContainerProfileResponse
	ListCalculations(ctx context.Context, req dto.ListCalculationsRequest) (*dto.Page[dto.CalculationSummary], error)
	GetCalculation(ctx context.Context, id string) (*dto.CalculationResponse, error)
	DeleteCalculation(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

var _ Calculator = (*service.CalculatorService)(nil)

func respond[T any](w http.ResponseWriter, r *http.Request, status int, data T) {
	render.Status(r, status)
	render.JSON(w, r, dto.OK(data).Stamp(middleware.GetRequestID(r.Context()), time.Now()))
}

func respondValidation(w http.ResponseWriter, r *http.Request, errs []dto.ValidationError) {
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, dto.Invalid[any](errs).Stamp(middleware.GetRequestID(r.Context()), time.Now()))
}

// respondError maps service errors to HTTP statuses.
func respondError(w http.ResponseWriter, r *http.Request, log port.Logger, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		respondValidation(w, r, ve.Errors)
		return
	}

	switch {
	case errors.Is(err, service.ErrCalculationNotFound):
		middleware.WriteError(w, r, http.StatusNotFound, dto.CodeNotFound, "Calculation not found")
	case errors.Is(err, service.ErrHistoryDisabled):
		middleware.WriteError(w, r, http.StatusNotFound, dto.CodeHistoryDisabled, "Calculation history is disabled")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		middleware.WriteError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "Request cancelled")
	default:
		log.WithContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
		middleware.WriteError(w, r, http.StatusInternalServerError, dto.CodeInternal, "An unexpected error occurred")
	}
}

// decode reads a JSON body into v and answers 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
			return false
		}
		middleware.WriteError(w, r, http.StatusBadRequest, dto.CodeBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}
