package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

// Resolvers give the quote path access to referenced records without
// pulling in the full CRUD services.
type CourtResolver interface {
	GetByID(ctx context.Context, id string) (*court.Court, error)
}

type CoachResolver interface {
	GetByID(ctx context.Context, id string) (*coach.Coach, error)
}

type EquipmentResolver interface {
	GetByID(ctx context.Context, id string) (*equipment.Equipment, error)
}

type CreateRuleRequest struct {
	Name       string
	Type       RuleType
	Conditions Conditions
	Multiplier float64
	Priority   int
}

type UpdateRuleRequest struct {
	Name       *string
	Conditions *Conditions
	Multiplier *float64
	Priority   *int
	IsActive   *bool
}

// QuoteRequest is a pricing request with unresolved references.
type QuoteRequest struct {
	CourtID   string
	Date      time.Time
	Slot      timeslot.Range
	Equipment []equipment.Selection
	CoachID   *string
}

// Quote is a priced, fully resolved booking request.
type Quote struct {
	Court     *court.Court
	Coach     *coach.Coach // nil when no coach requested
	Lines     []LineItem
	Breakdown Breakdown
}

type Service interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error)
	GetRule(ctx context.Context, id string) (*Rule, error)
	ListRules(ctx context.Context, filter Filter) ([]*Rule, error)
	UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (*Rule, error)
	DeactivateRule(ctx context.Context, id string) error

	// Quote resolves references, loads active rules and prices the request.
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

type service struct {
	repo      Repository
	courts    CourtResolver
	coaches   CoachResolver
	equipment EquipmentResolver
}

func NewService(repo Repository, courts CourtResolver, coaches CoachResolver, equip EquipmentResolver) Service {
	return &service{
		repo:      repo,
		courts:    courts,
		coaches:   coaches,
		equipment: equip,
	}
}

// validateConditions checks that the payload carries exactly what the rule
// type needs.
func validateConditions(t RuleType, c Conditions) error {
	switch t {
	case RulePeakHours:
		if c.StartTime == nil || c.EndTime == nil {
			return ErrInvalidConditions
		}
		if c.EndTime.Hour() <= c.StartTime.Hour() {
			return ErrInvalidConditions
		}
	case RuleWeekend:
		if len(c.Days) == 0 {
			return ErrInvalidConditions
		}
		for _, d := range c.Days {
			if d < 0 || d > 6 {
				return ErrInvalidConditions
			}
		}
	case RuleCourtType:
		if c.CourtType == nil || !c.CourtType.Valid() {
			return ErrInvalidConditions
		}
	case RuleSeasonal:
		if c.StartDate == nil || c.EndDate == nil {
			return ErrInvalidConditions
		}
		start, err := time.Parse(DateLayout, *c.StartDate)
		if err != nil {
			return ErrInvalidConditions
		}
		end, err := time.Parse(DateLayout, *c.EndDate)
		if err != nil {
			return ErrInvalidConditions
		}
		if end.Before(start) {
			return ErrInvalidConditions
		}
	default:
		return ErrInvalidType
	}
	return nil
}

func (s *service) CreateRule(ctx context.Context, req CreateRuleRequest) (*Rule, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	if req.Multiplier < 0.1 || req.Multiplier > 10 {
		return nil, ErrInvalidMultiplier
	}
	if err := validateConditions(req.Type, req.Conditions); err != nil {
		return nil, err
	}

	rule := &Rule{
		Name:       strings.TrimSpace(req.Name),
		Type:       req.Type,
		Conditions: req.Conditions,
		Multiplier: req.Multiplier,
		Priority:   req.Priority,
	}
	if rule.Priority == 0 {
		rule.Priority = 1
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) GetRule(ctx context.Context, id string) (*Rule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRules(ctx context.Context, filter Filter) ([]*Rule, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (*Rule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		rule.Name = strings.TrimSpace(*req.Name)
	}
	if req.Multiplier != nil {
		if *req.Multiplier < 0.1 || *req.Multiplier > 10 {
			return nil, ErrInvalidMultiplier
		}
		rule.Multiplier = *req.Multiplier
	}
	if req.Conditions != nil {
		rule.Conditions = *req.Conditions
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	// Rule type is immutable; re-validate conditions against it.
	if err := validateConditions(rule.Type, rule.Conditions); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) DeactivateRule(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	crt, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !crt.IsActive {
		return nil, ErrCourtInactive
	}

	var co *coach.Coach
	if req.CoachID != nil && *req.CoachID != "" {
		co, err = s.coaches.GetByID(ctx, *req.CoachID)
		if err != nil {
			return nil, err
		}
		if !co.IsActive {
			return nil, ErrCoachInactive
		}
	}

	lines := make([]LineItem, 0, len(req.Equipment))
	for _, sel := range req.Equipment {
		if sel.Quantity < 1 {
			return nil, apperror.Validation("equipment quantity must be at least 1")
		}
		item, err := s.equipment.GetByID(ctx, sel.EquipmentID)
		if err != nil {
			return nil, err
		}
		if !item.IsActive {
			return nil, ErrEquipmentInactive
		}
		lines = append(lines, LineItem{
			EquipmentID:  item.ID,
			Name:         item.Name,
			Quantity:     sel.Quantity,
			PricePerHour: item.PricePerHour,
		})
	}

	rules, err := s.repo.List(ctx, Filter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	breakdown := Calculate(QuoteInput{
		Court:     crt,
		Date:      req.Date,
		Slot:      req.Slot,
		Equipment: lines,
		Coach:     co,
		Rules:     rules,
	})

	return &Quote{
		Court:     crt,
		Coach:     co,
		Lines:     lines,
		Breakdown: breakdown,
	}, nil
}
