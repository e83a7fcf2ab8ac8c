package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

type CourtLister interface {
	List(ctx context.Context, filter court.Filter) ([]*court.Court, int, error)
}

type CoachResolver interface {
	GetByID(ctx context.Context, id string) (*coach.Coach, error)
}

type EquipmentResolver interface {
	GetByID(ctx context.Context, id string) (*equipment.Equipment, error)
}

// CheckRequest describes a prospective booking. CourtID and CoachID are
// optional; dimensions that are not requested pass automatically.
type CheckRequest struct {
	Date      time.Time
	Slot      timeslot.Range
	CourtID   string
	CoachID   string
	Equipment []equipment.Selection
}

type Service interface {
	// Check tests every requested dimension and reports each outcome.
	// Unknown references make their dimension unavailable with a reason;
	// only storage failures surface as errors.
	Check(ctx context.Context, req CheckRequest) (*Result, error)

	// SlotsForDate renders the daily grid of one-hour slots per active court.
	SlotsForDate(ctx context.Context, date time.Time) ([]CourtSlots, error)

	// InvalidateDate drops any cached grid for the date.
	InvalidateDate(ctx context.Context, date time.Time)
}

type service struct {
	repo      Repository
	courts    CourtLister
	coaches   CoachResolver
	equipment EquipmentResolver
	cache     *SlotCache
}

func NewService(repo Repository, courts CourtLister, coaches CoachResolver, equip EquipmentResolver, cache *SlotCache) Service {
	return &service{
		repo:      repo,
		courts:    courts,
		coaches:   coaches,
		equipment: equip,
		cache:     cache,
	}
}

func (s *service) Check(ctx context.Context, req CheckRequest) (*Result, error) {
	result := &Result{
		CourtAvailable:     true,
		CoachAvailable:     true,
		EquipmentAvailable: true,
		EquipmentStatus:    []EquipmentStatus{},
	}

	if req.CourtID != "" {
		busy, err := s.repo.CourtHasOverlap(ctx, req.CourtID, req.Date, req.Slot)
		if err != nil {
			return nil, err
		}
		if busy {
			result.CourtAvailable = false
			result.CourtReason = "court is already booked for this time"
		}
	}

	if req.CoachID != "" {
		if err := s.checkCoach(ctx, req, result); err != nil {
			return nil, err
		}
	}

	for _, sel := range req.Equipment {
		status, err := s.checkEquipmentLine(ctx, sel)
		if err != nil {
			return nil, err
		}
		if !status.Available {
			result.EquipmentAvailable = false
		}
		result.EquipmentStatus = append(result.EquipmentStatus, status)
	}

	result.Available = result.CourtAvailable && result.CoachAvailable && result.EquipmentAvailable
	return result, nil
}

func (s *service) checkCoach(ctx context.Context, req CheckRequest, result *Result) error {
	co, err := s.coaches.GetByID(ctx, req.CoachID)
	if err != nil {
		if errors.Is(err, coach.ErrNotFound) {
			result.CoachAvailable = false
			result.CoachReason = "coach not found"
			return nil
		}
		return err
	}

	// The recurring calendar gates first: the slot must fit inside one of
	// the coach's windows for that weekday.
	if !co.Covers(int(req.Date.Weekday()), req.Slot) {
		result.CoachAvailable = false
		result.CoachReason = "coach is not available at this time"
		return nil
	}

	busy, err := s.repo.CoachHasOverlap(ctx, req.CoachID, req.Date, req.Slot)
	if err != nil {
		return err
	}
	if busy {
		result.CoachAvailable = false
		result.CoachReason = "coach is already booked for this time"
	}
	return nil
}

func (s *service) checkEquipmentLine(ctx context.Context, sel equipment.Selection) (EquipmentStatus, error) {
	item, err := s.equipment.GetByID(ctx, sel.EquipmentID)
	if err != nil {
		if errors.Is(err, equipment.ErrNotFound) {
			return EquipmentStatus{
				EquipmentID: sel.EquipmentID,
				Available:   false,
				Reason:      "equipment not found",
			}, nil
		}
		return EquipmentStatus{}, err
	}

	// Point-in-time counter check, not an interval test: units held by any
	// open booking count as out regardless of that booking's time window.
	if item.AvailableQuantity < sel.Quantity {
		return EquipmentStatus{
			EquipmentID:       sel.EquipmentID,
			Available:         false,
			AvailableQuantity: item.AvailableQuantity,
			Reason:            fmt.Sprintf("only %d available, requested %d", item.AvailableQuantity, sel.Quantity),
		}, nil
	}

	return EquipmentStatus{
		EquipmentID:       sel.EquipmentID,
		Available:         true,
		AvailableQuantity: item.AvailableQuantity,
	}, nil
}

func (s *service) SlotsForDate(ctx context.Context, date time.Time) ([]CourtSlots, error) {
	if grid, ok := s.cache.Get(ctx, date); ok {
		return grid, nil
	}

	courts, _, err := s.courts.List(ctx, court.Filter{ActiveOnly: true, PageSize: 1000})
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.BookedSlotsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	bookedByCourt := make(map[string][]timeslot.Range)
	for _, b := range booked {
		bookedByCourt[b.CourtID] = append(bookedByCourt[b.CourtID], b.Slot)
	}

	catalog := timeslot.Slots()
	grid := make([]CourtSlots, 0, len(courts))

	for _, c := range courts {
		slots := make([]Slot, len(catalog))
		for i, slot := range catalog {
			// Same overlap predicate as the detailed check, so the grid and
			// the check endpoint never disagree about a slot.
			free := true
			for _, b := range bookedByCourt[c.ID] {
				if slot.Overlaps(b) {
					free = false
					break
				}
			}
			slots[i] = Slot{StartTime: slot.Start, EndTime: slot.End, Available: free}
		}
		grid = append(grid, CourtSlots{
			Court: GridCourt{ID: c.ID, Name: c.Name, Type: c.Type, BasePrice: c.BasePrice},
			Slots: slots,
		})
	}

	s.cache.Set(ctx, date, grid)
	return grid, nil
}

func (s *service) InvalidateDate(ctx context.Context, date time.Time) {
	s.cache.Invalidate(ctx, date)
}
