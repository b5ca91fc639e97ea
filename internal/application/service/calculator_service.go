// Package service implements the application use cases: running the
// load-planning calculators and keeping their history.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/application/port"
	"github.com/hapkiduki/loadplan-go/internal/domain/entity"
	"github.com/hapkiduki/loadplan-go/internal/domain/loadplan"
	"github.com/hapkiduki/loadplan-go/internal/domain/repository"
	"github.com/hapkiduki/loadplan-go/internal/domain/valueobject"
	"github.com/hapkiduki/loadplan-go/pkg/logger"
)

// Limits applied to requests.
const (
	MaxMassPoints    = 500
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Metric names.
const (
	metricCalculations   = "loadplan_calculations_total"
	metricDuration       = "loadplan_calculation_duration"
	metricHistoryFailure = "loadplan_history_write_failures_total"
	metricStrapsRequired = "loadplan_restraint_straps_required"
)

// Defaults are applied when a restraint request omits a factor.
type Defaults struct {
	// Gravity in m/s²
	Gravity float64

	// Accelerations in g per direction
	Accelerations map[loadplan.Direction]float64

	SafetyFactor float64
}

// StandardDefaults returns forward 0.8 g, rearward and lateral 0.5 g,
// safety factor 1 and standard gravity.
func StandardDefaults() Defaults {
	return Defaults{
		Gravity: valueobject.StandardGravity,
		Accelerations: map[loadplan.Direction]float64{
			loadplan.DirectionForward:  0.8,
			loadplan.DirectionRearward: 0.5,
			loadplan.DirectionLateral:  0.5,
		},
		SafetyFactor: 1.0,
	}
}

func (d Defaults) acceleration(dir loadplan.Direction) float64 {
	return d.Accelerations[dir]
}

// CalculatorService runs the calculators and records each run.
type CalculatorService struct {
	repo     repository.CalculationRepository
	logger   port.Logger
	metrics  port.Metrics
	tracer   port.Tracer
	defaults Defaults
}

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// WithMetrics sets the metrics sink.
func WithMetrics(m port.Metrics) Option {
	return func(s *CalculatorService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t port.Tracer) Option {
	return func(s *CalculatorService) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithDefaults overrides StandardDefaults.
func WithDefaults(d Defaults) Option {
	return func(s *CalculatorService) {
		s.defaults = d
	}
}

// NewCalculatorService creates the service.
//
// Parameters:
//   - repo: history store; nil disables history
//   - logger: structured logger; nil discards logs
//   - opts: metrics, tracer and default factors
//
// Returns:
//   - *CalculatorService: ready to use
func NewCalculatorService(repo repository.CalculationRepository, logger port.Logger, opts ...Option) *CalculatorService {
	if logger == nil {
		logger = port.NopLogger{}
	}
	s := &CalculatorService{
		repo:     repo,
		logger:   logger,
		metrics:  port.NopMetrics{},
		tracer:   port.NopTracer{},
		defaults: StandardDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CenterOfGravity computes the CoG of arbitrary mass points.
func (s *CalculatorService) CenterOfGravity(ctx context.Context, req dto.CenterOfGravityRequest) (*dto.CenterOfGravityResponse, error) {
	if len(req.Points) > MaxMassPoints {
		v := &validator{}
		v.add("points", fmt.Sprintf("at most %d mass points are accepted", MaxMassPoints), len(req.Points))
		return nil, v.err()
	}

	ctx, span := s.tracer.StartSpan(ctx, "calculator.center_of_gravity")
	defer span.End()
	start := time.Now()

	cog := loadplan.ComputeCenterOfGravity(req.MassPoints())
	resp := dto.NewCenterOfGravityResponse(cog)
	resp.ID = s.record(ctx, span, entity.KindCenterOfGravity, req.Label, cogOutcome(cog), req, resp, start)
	return &resp, nil
}

// AxleCenterOfGravity computes the CoG from front and rear axle loads.
func (s *CalculatorService) AxleCenterOfGravity(ctx context.Context, req dto.AxleCenterOfGravityRequest) (*dto.CenterOfGravityResponse, error) {
	ctx, span := s.tracer.StartSpan(ctx, "calculator.axle_center_of_gravity")
	defer span.End()
	start := time.Now()

	cog := loadplan.ComputeAxleCenterOfGravity(req.FrontAxle.ToAxleLoad(), req.RearAxle.ToAxleLoad())
	resp := dto.NewCenterOfGravityResponse(cog)
	resp.ID = s.record(ctx, span, entity.KindAxleCenterOfGravity, req.Label, cogOutcome(cog), req, resp, start)
	return &resp, nil
}

// Restraint sizes direct lashing in all three directions.
func (s *CalculatorService) Restraint(ctx context.Context, req dto.RestraintRequest) (*dto.RestraintResponse, error) {
	in, err := s.restraintInput(req)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.StartSpan(ctx, "calculator.restraint")
	defer span.End()
	span.SetAttribute("load_mass_kg", in.LoadMassKg)
	start := time.Now()

	plan := loadplan.ComputeRestraintPlan(in)
	for _, e := range plan.Evaluations {
		s.metrics.Histogram(metricStrapsRequired, float64(e.RequiredStrapCount), map[string]string{"direction": string(e.Direction)})
	}
	resp := dto.NewRestraintResponse(plan)
	resp.ID = s.record(ctx, span, entity.KindRestraint, req.Label, restraintOutcome(plan), req, resp, start)
	return &resp, nil
}

// ContainerFit checks an asset against a catalogue or custom container.
func (s *CalculatorService) ContainerFit(ctx context.Context, req dto.ContainerFitRequest) (*dto.ContainerFitResponse, error) {
	profile, err := resolveContainer(req)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.StartSpan(ctx, "calculator.container_fit")
	defer span.End()
	span.SetAttribute("container_type", string(profile.Type))
	start := time.Now()

	allowRotation := true
	if req.AllowRotation != nil {
		allowRotation = *req.AllowRotation
	}
	var override *float64
	if req.PayloadOverride != nil {
		v := valueobject.NonNegative(req.PayloadOverride.Float())
		override = &v
	}
	asset := loadplan.AssetBox{
		Dimensions: valueobject.NewDimensions(req.Asset.Length.Float(), req.Asset.Width.Float(), req.Asset.Height.Float()),
		MassKg:     req.Asset.Mass.Float(),
	}

	result := loadplan.CheckContainerFit(asset, profile, allowRotation, override)
	resp := dto.NewContainerFitResponse(profile, result)
	resp.ID = s.record(ctx, span, entity.KindContainerFit, req.Label, containerOutcome(result), req, resp, start)
	return &resp, nil
}

// Containers lists the container catalogue.
func (s *CalculatorService) Containers() []dto.ContainerProfileResponse {
	profiles := loadplan.Catalogue()
	out := make([]dto.ContainerProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, dto.NewContainerProfileResponse(p))
	}
	return out
}

func (s *CalculatorService) restraintInput(req dto.RestraintRequest) (loadplan.RestraintInput, error) {
	v := &validator{}
	in := loadplan.RestraintInput{
		LoadMassKg: req.LoadMass.Float(),
		Gravity:    valueobject.PositiveOr(req.Gravity.FloatOr(s.defaults.Gravity), s.defaults.Gravity),
		Directions: make(map[loadplan.Direction]loadplan.DirectionInput, 3),
	}

	keys := make([]string, 0, len(req.Directions))
	for k := range req.Directions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !loadplan.Direction(k).IsValid() {
			v.add("directions."+k, "unknown direction; use forward, rearward or lateral", k)
		}
	}

	for _, d := range loadplan.Directions() {
		field := "directions." + string(d)
		dr, ok := req.Directions[string(d)]
		if !ok {
			v.add(field, "direction is required", nil)
			continue
		}

		mode := loadplan.LashingMode(strings.ToLower(strings.TrimSpace(dr.Mode)))
		if mode == "" {
			mode = loadplan.LashingModeAuto
		}
		if !mode.IsValid() {
			v.add(field+".mode", "must be auto or manual", dr.Mode)
		}

		in.Directions[d] = loadplan.DirectionInput{
			AccelerationG: dr.AccelerationG.FloatOr(s.defaults.acceleration(d)),
			SafetyFactor:  dr.SafetyFactor.FloatOr(s.defaults.SafetyFactor),
			Lashing: loadplan.LashingConfig{
				Mode:            mode,
				StrapCount:      dr.StrapCount.Int(),
				StrapRatingDaN:  dr.StrapRating.Float(),
				LashingAngleDeg: dr.LashingAngle.Float(),
			},
		}
	}

	if req.Anchor != nil {
		swl := req.Anchor.SafeWorkingLoad.Float()
		margin := req.Anchor.MarginFactor.FloatOr(1)
		if swl <= 0 {
			v.add("anchor.swl_dan", "must be greater than zero", swl)
		}
		if margin <= 0 {
			v.add("anchor.margin_factor", "must be greater than zero", margin)
		}
		in.Anchor = &loadplan.AnchorConstraint{SafeWorkingLoadDaN: swl, MarginFactor: margin}
	}

	return in, v.err()
}

func resolveContainer(req dto.ContainerFitRequest) (loadplan.ContainerProfile, error) {
	v := &validator{}
	t := loadplan.ContainerType(strings.TrimSpace(req.ContainerType))

	switch {
	case t == "":
		v.add("container_type", "container type is required", nil)
	case t == loadplan.ContainerCustom:
		c := req.CustomContainer
		if c == nil {
			v.add("custom_container", "required when container_type is custom", nil)
			break
		}
		fields := []struct {
			name  string
			value float64
		}{
			{"custom_container.internal_length", c.InternalLength.Float()},
			{"custom_container.internal_width", c.InternalWidth.Float()},
			{"custom_container.internal_height", c.InternalHeight.Float()},
			{"custom_container.door_width", c.DoorWidth.Float()},
			{"custom_container.door_height", c.DoorHeight.Float()},
			{"custom_container.max_payload", c.MaxPayload.Float()},
		}
		for _, f := range fields {
			if f.value <= 0 {
				v.add(f.name, "must be greater than zero", f.value)
			}
		}
		if err := v.err(); err != nil {
			return loadplan.ContainerProfile{}, err
		}
		profile, err := loadplan.CustomContainer(
			c.InternalLength.Float(), c.InternalWidth.Float(), c.InternalHeight.Float(),
			c.DoorWidth.Float(), c.DoorHeight.Float(), c.MaxPayload.Float(),
		)
		if err != nil {
			v.add("custom_container", err.Error(), nil)
			break
		}
		return profile, nil
	default:
		profile, err := loadplan.LookupContainer(t)
		if err != nil {
			v.add("container_type", err.Error(), req.ContainerType)
			break
		}
		return profile, nil
	}
	return loadplan.ContainerProfile{}, v.err()
}

// record stores a history entry and reports the run. It returns the record
// ID, or "" when history is off or the write failed.
func (s *CalculatorService) record(
	ctx context.Context,
	span port.Span,
	kind entity.CalculationKind,
	label string,
	outcome entity.CalculationOutcome,
	request, result any,
	started time.Time,
) string {
	elapsed := time.Since(started)
	tags := map[string]string{"kind": string(kind), "outcome": string(outcome)}
	s.metrics.Counter(metricCalculations, 1, tags)
	s.metrics.Timing(metricDuration, elapsed, map[string]string{"kind": string(kind)})
	span.SetAttribute("outcome", string(outcome))

	var calc *entity.Calculation
	var err error
	if s.repo != nil {
		calc, err = entity.NewCalculation(kind, label, outcome, request, result)
		if err == nil {
			ctx = logger.ContextWithCalculationID(ctx, calc.ID.String())
		}
	}

	log := s.logger.WithContext(ctx).With("kind", kind, "outcome", outcome)
	log.Debug("calculation completed", "duration", elapsed)

	if s.repo == nil {
		return ""
	}
	if err == nil {
		err = s.repo.Create(ctx, calc)
	}
	if err != nil {
		if errors.Is(err, repository.ErrHistoryDisabled) {
			return ""
		}
		s.metrics.Counter(metricHistoryFailure, 1, map[string]string{"kind": string(kind)})
		span.SetError(err)
		log.Warn("failed to record calculation history", "error", err)
		return ""
	}

	span.AddEvent("history.recorded", map[string]any{"calculation_id": calc.ID.String()})
	return calc.ID.String()
}

func cogOutcome(c loadplan.CenterOfGravity) entity.CalculationOutcome {
	if c.OutOfRange {
		return entity.OutcomeFail
	}
	if !c.Defined() {
		return entity.OutcomeNoData
	}
	return entity.OutcomeComputed
}

func restraintOutcome(p loadplan.RestraintPlan) entity.CalculationOutcome {
	if !p.Pass() {
		return entity.OutcomeFail
	}
	for _, e := range p.Evaluations {
		if e.AnchorStatus == loadplan.AnchorNotChecked {
			return entity.OutcomeWarning
		}
	}
	return entity.OutcomePass
}

func containerOutcome(r loadplan.ContainerFitResult) entity.CalculationOutcome {
	switch {
	case !r.Fits:
		return entity.OutcomeFail
	case r.PayloadExceeded:
		return entity.OutcomeWarning
	}
	return entity.OutcomePass
}

// parseID validates a history record ID taken from a URL.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		v := &validator{}
		v.add("id", "must be a UUID", raw)
		return uuid.Nil, v.err()
	}
	return id, nil
}
