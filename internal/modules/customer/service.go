package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"lrbook/internal/domain"
	"lrbook/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	customers CustomerRepository
	now       func() time.Time
}

func NewService(customers CustomerRepository) *Service {
	return &Service{customers: customers, now: time.Now}
}

func (s *Service) List(ctx context.Context, search string, limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.customers.List(ctx, search, limit)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// Create registers a customer. An existing phone or GST number is reported
// as ErrCustomerExists rather than creating a second record.
func (s *Service) Create(ctx context.Context, req CustomerRequest) (*domain.Customer, error) {
	c, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if existing, err := s.FindExisting(ctx, c.Phone, c.GSTNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrCustomerExists
	}

	now := s.now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.customers.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCustomerExists
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, req CustomerRequest) (*domain.Customer, error) {
	current, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.build(req)
	if err != nil {
		return nil, err
	}

	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = s.now().UTC()
	if err := s.customers.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCustomerExists
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

// FindExisting looks a customer up by phone, then by GST number. It returns
// nil without error when neither matches.
func (s *Service) FindExisting(ctx context.Context, phone, gst string) (*domain.Customer, error) {
	if strings.TrimSpace(phone) != "" {
		c, err := s.customers.FindByPhone(ctx, phone)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	if strings.TrimSpace(gst) != "" {
		c, err := s.customers.FindByGST(ctx, gst)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// FindOrCreate returns the matching customer or creates one from the party
// details. A concurrent insert of the same phone is resolved by re-reading.
func (s *Service) FindOrCreate(ctx context.Context, party domain.PartySnapshot) (*domain.Customer, error) {
	if strings.TrimSpace(party.Phone) == "" && strings.TrimSpace(party.GSTNumber) == "" {
		return nil, domain.NewValidationError("phone", "is required to register a customer")
	}
	existing, err := s.FindExisting(ctx, party.Phone, party.GSTNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if strings.TrimSpace(party.Phone) == "" {
		return nil, domain.NewValidationError("phone", "is required to register a customer")
	}

	now := s.now().UTC()
	c := &domain.Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(party.Name),
		Phone:     strings.TrimSpace(party.Phone),
		Address:   strings.TrimSpace(party.Address),
		GSTNumber: strings.ToUpper(strings.TrimSpace(party.GSTNumber)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			if raced, ferr := s.FindExisting(ctx, party.Phone, party.GSTNumber); ferr == nil && raced != nil {
				return raced, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) build(req CustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, domain.NewValidationError("phone", "is required")
	}
	return &domain.Customer{
		Name:      name,
		Phone:     phone,
		Address:   strings.TrimSpace(req.Address),
		GSTNumber: strings.ToUpper(strings.TrimSpace(req.GSTNumber)),
	}, nil
}
