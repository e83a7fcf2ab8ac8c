package equipment

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name          string
	Category      Category
	TotalQuantity int
	PricePerHour  float64
	Description   string
}

type UpdateRequest struct {
	Name          *string
	Category      *Category
	TotalQuantity *int
	PricePerHour  *float64
	Description   *string
	IsActive      *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Equipment, error)
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Equipment, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Equipment, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !req.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if req.TotalQuantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if req.PricePerHour < 0 {
		return nil, ErrInvalidPrice
	}

	e := &Equipment{
		Name:          strings.TrimSpace(req.Name),
		Category:      req.Category,
		TotalQuantity: req.TotalQuantity,
		// New stock starts fully available.
		AvailableQuantity: req.TotalQuantity,
		PricePerHour:      req.PricePerHour,
		Description:       req.Description,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		e.Category = *req.Category
	}
	if req.TotalQuantity != nil {
		if *req.TotalQuantity < 0 {
			return nil, ErrInvalidQuantity
		}
		// Adjusting total shifts availability by the same delta so units
		// reserved by open bookings stay reserved.
		delta := *req.TotalQuantity - e.TotalQuantity
		if e.AvailableQuantity+delta < 0 {
			return nil, ErrInvalidQuantity
		}
		e.TotalQuantity = *req.TotalQuantity
		e.AvailableQuantity += delta
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrInvalidPrice
		}
		e.PricePerHour = *req.PricePerHour
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}
