// Package provision bootstraps an empty installation: the first admin and,
// optionally, the default origin location.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lrbook/internal/domain"
	"lrbook/internal/repository"

	"github.com/google/uuid"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// SeedDefaultLocation creates a city and location named DefaultLocation
	// with code DefaultCode when missing.
	SeedDefaultLocation bool
	DefaultLocation     string
	DefaultCode         string
}

type Result struct {
	AdminCreated    bool
	CityCreated     bool
	LocationCreated bool
}

type PasswordHasher func(password string) (string, error)

// Run is idempotent: existing records are left untouched.
func Run(ctx context.Context, repos *repository.Set, hash PasswordHasher, opts Options) (Result, error) {
	var res Result

	email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
	if email == "" || opts.AdminPassword == "" {
		return res, errors.New("admin email and password are required")
	}
	if len(opts.AdminPassword) < 8 {
		return res, errors.New("admin password must be at least 8 characters")
	}

	now := time.Now().UTC()
	if _, err := repos.Agents.GetByEmail(ctx, email); err == nil {
		log.Printf("provision_admin_exists email=%s", email)
	} else if errors.Is(err, repository.ErrNotFound) {
		pw, err := hash(opts.AdminPassword)
		if err != nil {
			return res, fmt.Errorf("hash password: %w", err)
		}
		name := strings.TrimSpace(opts.AdminName)
		if name == "" {
			name = "Administrator"
		}
		err = repos.Agents.Create(ctx, &domain.Agent{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			PasswordHash: pw,
			Role:         domain.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return res, fmt.Errorf("create admin: %w", err)
		}
		res.AdminCreated = err == nil
		log.Printf("provision_admin_created email=%s", email)
	} else {
		return res, fmt.Errorf("lookup admin: %w", err)
	}

	if !opts.SeedDefaultLocation {
		return res, nil
	}

	code := domain.NormalizeCode(opts.DefaultCode)
	name := strings.TrimSpace(opts.DefaultLocation)
	if !domain.ValidCode(code) || name == "" {
		return res, fmt.Errorf("invalid default location %q/%q", name, code)
	}

	city, err := repos.Cities.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		city = &domain.City{ID: uuid.NewString(), Name: name, Code: code, CreatedAt: now, UpdatedAt: now}
		if err := repos.Cities.Create(ctx, city); err != nil {
			return res, fmt.Errorf("create city: %w", err)
		}
		res.CityCreated = true
	} else if err != nil {
		return res, fmt.Errorf("lookup city: %w", err)
	}

	if _, err := repos.Locations.GetByCode(ctx, code); errors.Is(err, repository.ErrNotFound) {
		loc := &domain.Location{
			ID: uuid.NewString(), Name: name, Code: code, CityID: city.ID,
			Status: domain.LocationActive, CreatedAt: now, UpdatedAt: now,
		}
		if err := repos.Locations.Create(ctx, loc); err != nil {
			return res, fmt.Errorf("create location: %w", err)
		}
		res.LocationCreated = true
	} else if err != nil {
		return res, fmt.Errorf("lookup location: %w", err)
	}

	log.Printf("provision_default_location code=%s city_created=%t location_created=%t", code, res.CityCreated, res.LocationCreated)
	return res, nil
}
