package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"lrbook/internal/domain"
	"lrbook/internal/repository"

	"github.com/google/uuid"
)

// Service owns the city and location master data.
type Service struct {
	cities    CityRepository
	locations LocationRepository
	now       func() time.Time
}

func NewService(cities CityRepository, locations LocationRepository) *Service {
	return &Service{cities: cities, locations: locations, now: time.Now}
}

func (s *Service) ListCities(ctx context.Context, search string) ([]domain.City, error) {
	return s.cities.List(ctx, search)
}

func (s *Service) CreateCity(ctx context.Context, req CityRequest) (*domain.City, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	code := domain.NormalizeCode(req.Code)
	if !domain.ValidCode(code) {
		return nil, domain.NewValidationError("code", "must be exactly 3 letters")
	}

	now := s.now().UTC()
	city := &domain.City{ID: uuid.NewString(), Name: name, Code: code, CreatedAt: now, UpdatedAt: now}
	if err := s.cities.Create(ctx, city); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCodeExists
		}
		return nil, err
	}
	return city, nil
}

// UpdateCity renames a city. The code is its identity and cannot change.
func (s *Service) UpdateCity(ctx context.Context, id string, req CityRequest) (*domain.City, error) {
	city, err := s.cities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if code := domain.NormalizeCode(req.Code); code != "" && code != city.Code {
		return nil, domain.NewValidationError("code", "cannot be changed")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	city.Name = name
	city.UpdatedAt = s.now().UTC()
	if err := s.cities.Update(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *Service) DeleteCity(ctx context.Context, id string) error {
	inUse, err := s.locations.List(ctx, domain.LocationFilter{CityID: id})
	if err != nil {
		return err
	}
	if len(inUse) > 0 {
		return ErrCityInUse
	}
	return s.cities.Delete(ctx, id)
}

func (s *Service) ListLocations(ctx context.Context, f domain.LocationFilter) ([]domain.Location, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.NewValidationError("status", "must be active or inactive")
	}
	return s.locations.List(ctx, f)
}

func (s *Service) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	return s.locations.GetByID(ctx, id)
}

func (s *Service) CreateLocation(ctx context.Context, req LocationRequest) (*domain.Location, error) {
	loc, err := s.buildLocation(ctx, &domain.Location{}, req)
	if err != nil {
		return nil, err
	}
	code := domain.NormalizeCode(req.Code)
	if !domain.ValidCode(code) {
		return nil, domain.NewValidationError("code", "must be exactly 3 letters")
	}

	now := s.now().UTC()
	loc.ID = uuid.NewString()
	loc.Code = code
	loc.CreatedAt = now
	loc.UpdatedAt = now
	if err := s.locations.Create(ctx, loc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCodeExists
		}
		return nil, err
	}
	return loc, nil
}

func (s *Service) UpdateLocation(ctx context.Context, id string, req LocationRequest) (*domain.Location, error) {
	current, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if code := domain.NormalizeCode(req.Code); code != "" && code != current.Code {
		return nil, domain.NewValidationError("code", "cannot be changed")
	}

	loc, err := s.buildLocation(ctx, current, req)
	if err != nil {
		return nil, err
	}
	loc.UpdatedAt = s.now().UTC()
	if err := s.locations.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	return s.locations.Delete(ctx, id)
}

func (s *Service) buildLocation(ctx context.Context, loc *domain.Location, req LocationRequest) (*domain.Location, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	status := domain.LocationStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if status == "" {
		status = domain.LocationActive
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "must be active or inactive")
	}
	if _, err := s.cities.GetByID(ctx, req.CityID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}

	loc.Name = name
	loc.CityID = req.CityID
	loc.Status = status
	loc.Address = strings.TrimSpace(req.Address)
	return loc, nil
}
