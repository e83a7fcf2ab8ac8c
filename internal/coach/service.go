package coach

import (
	"context"
	"net/mail"
	"strings"
)

type CreateRequest struct {
	Name           string
	Email          string
	Phone          string
	HourlyRate     float64
	Specialization []string
	Availability   []Window
	Bio            string
}

type UpdateRequest struct {
	Name           *string
	Email          *string
	Phone          *string
	HourlyRate     *float64
	Specialization []string
	Availability   []Window
	Bio            *string
	IsActive       *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Coach, error)
	GetByID(ctx context.Context, id string) (*Coach, error)
	List(ctx context.Context, filter Filter) ([]*Coach, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Coach, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateWindows(windows []Window) error {
	for _, w := range windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return ErrInvalidWindow
		}
		if w.End <= w.Start {
			return ErrInvalidWindow
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Coach, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if req.HourlyRate < 0 {
		return nil, ErrInvalidRate
	}
	if err := validateWindows(req.Availability); err != nil {
		return nil, err
	}

	c := &Coach{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		HourlyRate:     req.HourlyRate,
		Specialization: req.Specialization,
		Availability:   req.Availability,
		Bio:            req.Bio,
	}
	if c.Specialization == nil {
		c.Specialization = []string{}
	}
	if c.Availability == nil {
		c.Availability = []Window{}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Coach, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Coach, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Coach, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return nil, ErrInvalidEmail
		}
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, ErrInvalidRate
		}
		c.HourlyRate = *req.HourlyRate
	}
	if req.Specialization != nil {
		c.Specialization = req.Specialization
	}
	if req.Availability != nil {
		if err := validateWindows(req.Availability); err != nil {
			return nil, err
		}
		c.Availability = req.Availability
	}
	if req.Bio != nil {
		c.Bio = *req.Bio
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}
