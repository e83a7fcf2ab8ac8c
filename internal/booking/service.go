package booking

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/courtreserve/court-reserve-backend/internal/availability"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
)

type CreateRequest struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CourtID       string
	Date          time.Time
	Slot          timeslot.Range
	Equipment     []equipment.Selection
	CoachID       *string
	Notes         string
}

type Service interface {
	// Create prices the request (resolving every reference, so unknown
	// IDs surface as not-found errors), verifies availability and claims
	// the slot. A slot lost to a concurrent booking between the check and
	// the claim surfaces as ErrTimeConflict.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel marks a confirmed booking cancelled and restores its equipment
	// stock. Cancelling an already cancelled booking is a no-op; completed
	// bookings cannot be cancelled.
	Cancel(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo         Repository
	availability availability.Service
	pricing      pricing.Service
	logger       *zap.Logger
}

func NewService(repo Repository, avail availability.Service, pricingSvc pricing.Service, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		availability: avail,
		pricing:      pricingSvc,
		logger:       logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ErrEmptyName
	}

	addr, err := mail.ParseAddress(req.CustomerEmail)
	if err != nil {
		return nil, ErrInvalidEmail
	}
	email := strings.ToLower(addr.Address)

	if req.Slot.End <= req.Slot.Start {
		return nil, ErrInvalidTimeRange
	}

	// Quote first: it resolves every reference, so an unknown court, coach
	// or equipment ID is a not-found error rather than an availability
	// conflict.
	quote, err := s.pricing.Quote(ctx, pricing.QuoteRequest{
		CourtID:   req.CourtID,
		Date:      req.Date,
		Slot:      req.Slot,
		Equipment: req.Equipment,
		CoachID:   req.CoachID,
	})
	if err != nil {
		return nil, err
	}

	check, err := s.availability.Check(ctx, availability.CheckRequest{
		Date:      req.Date,
		Slot:      req.Slot,
		CourtID:   req.CourtID,
		CoachID:   coachID(req.CoachID),
		Equipment: req.Equipment,
	})
	if err != nil {
		return nil, err
	}
	if !check.Available {
		return nil, apperror.Conflict(unavailableReason(check))
	}

	booking := &Booking{
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		CourtID:       quote.Court.ID,
		CourtName:     quote.Court.Name,
		Date:          req.Date,
		Slot:          req.Slot,
		Duration:      req.Slot.Hours(),
		Equipment:     toLines(quote.Lines),
		Pricing:       quote.Breakdown,
		Status:        StatusConfirmed,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if quote.Coach != nil {
		booking.CoachID = &quote.Coach.ID
		booking.CoachName = &quote.Coach.Name
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.availability.InvalidateDate(ctx, req.Date)
	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("court_id", booking.CourtID),
		zap.String("date", booking.Date.Format(DateLayout)),
		zap.String("start_time", booking.Slot.Start.String()),
		zap.Float64("total_price", booking.Pricing.TotalPrice))
	return booking, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case StatusCancelled:
		return booking, nil
	case StatusCompleted:
		return nil, ErrCannotCancel
	}

	changed, err := s.repo.CancelConfirmed(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Lost a race with another cancel; the stored state is the answer.
		return s.repo.GetByID(ctx, id)
	}

	s.availability.InvalidateDate(ctx, booking.Date)
	s.logger.Info("booking cancelled",
		zap.String("booking_id", id),
		zap.String("court_id", booking.CourtID),
		zap.String("date", booking.Date.Format(DateLayout)))
	return s.repo.GetByID(ctx, id)
}

func coachID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func toLines(items []pricing.LineItem) []Line {
	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{
			EquipmentID:   item.EquipmentID,
			EquipmentName: item.Name,
			Quantity:      item.Quantity,
			PricePerHour:  item.PricePerHour,
		}
	}
	return lines
}

// unavailableReason picks the most specific failing dimension for the
// conflict message returned to the client.
func unavailableReason(result *availability.Result) string {
	if !result.CourtAvailable {
		if result.CourtReason != "" {
			return result.CourtReason
		}
		return "court is not available for the requested time"
	}
	if !result.CoachAvailable {
		if result.CoachReason != "" {
			return result.CoachReason
		}
		return "coach is not available for the requested time"
	}
	for _, st := range result.EquipmentStatus {
		if !st.Available {
			if st.Reason != "" {
				return st.Reason
			}
			return fmt.Sprintf("equipment %s is not available", st.EquipmentID)
		}
	}
	return "requested time is not available"
}
