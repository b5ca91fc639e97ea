package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/domain/entity"
	"github.com/hapkiduki/loadplan-go/internal/domain/repository"
)

// ListCalculations returns a page of history records, newest first.
func (s *CalculatorService) ListCalculations(ctx context.Context, req dto.ListCalculationsRequest) (*dto.Page[dto.CalculationSummary], error) {
	filter, err := historyFilter(req)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.mapRepoError(err)
	}

	items := make([]dto.CalculationSummary, 0, len(records))
	for _, c := range records {
		items = append(items, dto.NewCalculationSummary(c))
	}
	page := dto.NewPage(items, total, filter.Limit, filter.Offset)
	return &page, nil
}

// GetCalculation returns one history record with its request and result.
func (s *CalculatorService) GetCalculation(ctx context.Context, rawID string) (*dto.CalculationResponse, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}

	calc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	resp := dto.NewCalculationResponse(calc)
	return &resp, nil
}

// DeleteCalculation removes a history record.
func (s *CalculatorService) DeleteCalculation(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if s.repo == nil {
		return ErrHistoryDisabled
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err)
	}
	s.logger.WithContext(ctx).Info("calculation deleted", "calculation_id", id.String())
	return nil
}

// Ping checks the history store. A service without history is always ready.
func (s *CalculatorService) Ping(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Ping(ctx)
}

func historyFilter(req dto.ListCalculationsRequest) (repository.CalculationFilter, error) {
	v := &validator{}
	f := repository.CalculationFilter{
		Label:  req.Label,
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	if req.Kind != "" {
		k := entity.CalculationKind(req.Kind)
		if !k.IsValid() {
			v.add("kind", "unknown calculation kind", req.Kind)
		}
		f.Kind = &k
	}
	if req.Outcome != "" {
		o := entity.CalculationOutcome(req.Outcome)
		if !o.IsValid() {
			v.add("outcome", "unknown outcome", req.Outcome)
		}
		f.Outcome = &o
	}

	switch {
	case f.Limit < 0:
		v.add("limit", "must not be negative", req.Limit)
	case f.Limit == 0:
		f.Limit = DefaultPageLimit
	case f.Limit > MaxPageLimit:
		f.Limit = MaxPageLimit
	}
	if f.Offset < 0 {
		v.add("offset", "must not be negative", req.Offset)
	}

	return f, v.err()
}

func (s *CalculatorService) mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrCalculationNotFound):
		return fmt.Errorf("%w: %v", ErrCalculationNotFound, err)
	case errors.Is(err, repository.ErrHistoryDisabled):
		return ErrHistoryDisabled
	}
	return fmt.Errorf("history store: %w", err)
}
