package booking

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

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Config struct {
	// DefaultLocation is used when the agent's own location is unknown.
	DefaultLocation string
	MaxLRAttempts   int
}

type Service struct {
	bookings  BookingRepository
	locations LocationRepository
	cities    CityRepository
	customers CustomerResolver
	events    EventPublisher
	cfg       Config

	suffix func() (string, error)
	now    func() time.Time
}

func NewService(
	bookings BookingRepository,
	locations LocationRepository,
	cities CityRepository,
	customers CustomerResolver,
	events EventPublisher,
	cfg Config,
) *Service {
	if cfg.MaxLRAttempts < 1 {
		cfg.MaxLRAttempts = 1
	}
	return &Service{
		bookings:  bookings,
		locations: locations,
		cities:    cities,
		customers: customers,
		events:    events,
		cfg:       cfg,
		suffix:    RandomSuffix,
		now:       time.Now,
	}
}

// CreateBooking validates the submission, resolves locations and customers,
// recomputes charges and stores the booking under a fresh LR number.
func (s *Service) CreateBooking(ctx context.Context, agent domain.AgentIdentity, req CreateBookingRequest) (*domain.Booking, error) {
	lrType, items, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	from, err := s.resolveFromLocation(ctx, agent.Location)
	if err != nil {
		return nil, err
	}
	to, err := s.resolveToLocation(ctx, req.ToLocation)
	if err != nil {
		return nil, err
	}

	sender := s.resolveParty(ctx, "sender", req.Sender)
	receiver := s.resolveParty(ctx, "receiver", req.Receiver)

	now := s.now().UTC()
	b := &domain.Booking{
		ID:            uuid.NewString(),
		LRType:        lrType,
		FromLocation:  from,
		ToLocation:    to,
		Sender:        sender,
		Receiver:      receiver,
		Items:         items,
		Charges:       ComputeCharges(items, req.Charges),
		Status:        domain.BookingBooked,
		AgentID:       agent.ID,
		AgentLocation: agent.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.insertWithLRNumber(ctx, b); err != nil {
		return nil, err
	}

	log.Printf("booking_created id=%s lr_number=%s agent_id=%s from=%s to=%s total=%.2f",
		b.ID, b.LRNumber, b.AgentID, b.FromLocation.Code, b.ToLocation.Code, b.Charges.TotalAmount)
	s.publish(domain.BookingEvent{Type: domain.EventBookingCreated, Booking: b})
	return b, nil
}

func validateCreate(req CreateBookingRequest) (domain.LRType, []domain.BookingItem, error) {
	if req.ToLocation.empty() {
		return "", nil, domain.NewValidationError("to_location", "is required")
	}
	if strings.TrimSpace(req.Sender.Name) == "" {
		return "", nil, domain.NewValidationError("sender.name", "is required")
	}
	if strings.TrimSpace(req.Receiver.Name) == "" {
		return "", nil, domain.NewValidationError("receiver.name", "is required")
	}
	if len(req.Items) == 0 {
		return "", nil, domain.NewValidationError("items", "at least one item is required")
	}
	if strings.TrimSpace(req.Items[0].Description) == "" {
		return "", nil, domain.NewValidationError("items[0].description", "is required")
	}

	lrType := domain.LRType(strings.ToLower(strings.TrimSpace(req.LRType)))
	if !lrType.Valid() {
		return "", nil, domain.NewValidationError("lr_type", "must be paid, to_pay or on_account")
	}

	items := make([]domain.BookingItem, 0, len(req.Items))
	for i, it := range req.Items {
		if it.Quantity < 1 {
			return "", nil, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if it.Weight < 0 {
			return "", nil, domain.NewValidationError(fmt.Sprintf("items[%d].weight", i), "must not be negative")
		}
		if it.FreightCharge < 0 {
			return "", nil, domain.NewValidationError(fmt.Sprintf("items[%d].freight_charge", i), "must not be negative")
		}
		items = append(items, domain.BookingItem{
			Description:   strings.TrimSpace(it.Description),
			Quantity:      it.Quantity,
			Weight:        it.Weight,
			FreightCharge: it.FreightCharge,
		})
	}

	c := req.Charges
	for name, v := range map[string]float64{
		"handling_charges":      c.HandlingCharges,
		"book_delivery_charges": c.BookDeliveryCharges,
		"door_delivery_charges": c.DoorDeliveryCharges,
		"pickup_charges":        c.PickupCharges,
		"lr_charges":            c.LRCharges,
		"other_charges":         c.OtherCharges,
	} {
		if v < 0 {
			return "", nil, domain.NewValidationError("charges."+name, "must not be negative")
		}
	}

	return lrType, items, nil
}

// resolveFromLocation maps the agent's location name to a Location, falling
// back to the configured default. No match at all is fatal. The origin is the
// agent's own branch, so its active flag is not checked here.
func (s *Service) resolveFromLocation(ctx context.Context, agentLocation string) (domain.LocationSnapshot, error) {
	candidates := []string{agentLocation}
	if !strings.EqualFold(strings.TrimSpace(agentLocation), strings.TrimSpace(s.cfg.DefaultLocation)) {
		candidates = append(candidates, s.cfg.DefaultLocation)
	}

	for _, name := range candidates {
		if strings.TrimSpace(name) == "" {
			continue
		}
		loc, err := s.locations.FindByName(ctx, name)
		if err == nil {
			if name != agentLocation {
				log.Printf("booking_from_location_fallback agent_location=%q fallback=%q", agentLocation, loc.Name)
			}
			return loc.Snapshot(), nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.LocationSnapshot{}, fmt.Errorf("resolve from location: %w", err)
		}
	}

	log.Printf("booking_from_location_unresolved agent_location=%q default=%q", agentLocation, s.cfg.DefaultLocation)
	return domain.LocationSnapshot{}, ErrFromLocationUnresolved
}

// resolveToLocation accepts a location id, a location code, or a city code.
// A city destination has no location id in its snapshot. Inactive locations
// cannot receive new bookings.
func (s *Service) resolveToLocation(ctx context.Context, ref LocationRef) (domain.LocationSnapshot, error) {
	if id := strings.TrimSpace(ref.LocationID); id != "" {
		loc, err := s.locations.GetByID(ctx, id)
		if err == nil {
			return destination(loc)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.LocationSnapshot{}, fmt.Errorf("resolve to location: %w", err)
		}
		if ref.Code == "" {
			return domain.LocationSnapshot{}, domain.NewValidationError("to_location", "unknown location")
		}
	}

	code := domain.NormalizeCode(ref.Code)
	if !domain.ValidCode(code) {
		return domain.LocationSnapshot{}, domain.NewValidationError("to_location.code", "must be exactly 3 letters")
	}

	loc, err := s.locations.GetByCode(ctx, code)
	if err == nil {
		return destination(loc)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.LocationSnapshot{}, fmt.Errorf("resolve to location: %w", err)
	}

	city, err := s.cities.GetByCode(ctx, code)
	if err == nil {
		return domain.LocationSnapshot{Name: city.Name, Code: city.Code}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.LocationSnapshot{}, fmt.Errorf("resolve to location: %w", err)
	}
	return domain.LocationSnapshot{}, domain.NewValidationError("to_location", "unknown location or city code "+code)
}

func destination(loc *domain.Location) (domain.LocationSnapshot, error) {
	if loc.Status == domain.LocationInactive {
		return domain.LocationSnapshot{}, domain.NewValidationError("to_location", "location "+loc.Code+" is inactive")
	}
	return loc.Snapshot(), nil
}

// resolveParty links the party to a customer record. Lookup or creation
// failures are logged and the snapshot is kept without a customer id.
func (s *Service) resolveParty(ctx context.Context, role string, p PartyRequest) domain.PartySnapshot {
	snap := domain.PartySnapshot{
		CustomerID: strings.TrimSpace(p.CustomerID),
		Name:       strings.TrimSpace(p.Name),
		Phone:      strings.TrimSpace(p.Phone),
		GSTNumber:  strings.ToUpper(strings.TrimSpace(p.GSTNumber)),
		Address:    strings.TrimSpace(p.Address),
	}
	if snap.CustomerID != "" || s.customers == nil {
		return snap
	}

	c, err := s.customers.FindOrCreate(ctx, snap)
	if err != nil {
		log.Printf("booking_customer_warning role=%s phone=%q error=%q", role, snap.Phone, err.Error())
		return snap
	}

	snap.CustomerID = c.ID
	if snap.GSTNumber == "" {
		snap.GSTNumber = c.GSTNumber
	}
	if snap.Address == "" {
		snap.Address = c.Address
	}
	return snap
}

// insertWithLRNumber assigns a candidate LR number and inserts, drawing a
// new suffix whenever the store reports the number as taken.
func (s *Service) insertWithLRNumber(ctx context.Context, b *domain.Booking) error {
	typeCode := b.LRType.Code()
	for attempt := 1; attempt <= s.cfg.MaxLRAttempts; attempt++ {
		suffix, err := s.suffix()
		if err != nil {
			return err
		}
		b.LRNumber = FormatLRNumber(b.FromLocation.Code, typeCode, suffix)

		err = s.bookings.Create(ctx, b)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			b.LRNumber = ""
			return fmt.Errorf("persist booking: %w", err)
		}
		log.Printf("booking_lr_collision lr_number=%s attempt=%d", b.LRNumber, attempt)
	}

	b.LRNumber = ""
	return ErrLRNumberExhausted
}

func (s *Service) GetBooking(ctx context.Context, agent domain.AgentIdentity, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return visible(agent, b)
}

func (s *Service) GetByLRNumber(ctx context.Context, agent domain.AgentIdentity, lr string) (*domain.Booking, error) {
	b, err := s.bookings.GetByLRNumber(ctx, lr)
	if err != nil {
		return nil, err
	}
	return visible(agent, b)
}

// visible hides other agents' bookings behind ErrNotFound.
func visible(agent domain.AgentIdentity, b *domain.Booking) (*domain.Booking, error) {
	if !agent.IsAdmin() && b.AgentID != agent.ID {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context, agent domain.AgentIdentity, f domain.BookingFilter) ([]domain.Booking, int64, error) {
	if !agent.IsAdmin() {
		f.AgentID = agent.ID
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, domain.NewValidationError("status", "unknown status")
	}
	if f.LRType != "" && !f.LRType.Valid() {
		return nil, 0, domain.NewValidationError("lr_type", "unknown lr_type")
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.bookings.List(ctx, f)
}

// UpdateStatus moves a booking along its lifecycle. Agents may only move
// their own bookings.
func (s *Service) UpdateStatus(ctx context.Context, agent domain.AgentIdentity, id string, next domain.BookingStatus) (*domain.Booking, error) {
	if !next.Valid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !agent.IsAdmin() && b.AgentID != agent.ID {
		return nil, ErrForbidden
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}

	prev := b.Status
	at := s.now().UTC()
	if err := s.bookings.UpdateStatus(ctx, b.ID, prev, next, at); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			return nil, err
		}
		// Another writer moved the booking after it was read.
		current, rerr := s.bookings.GetByID(ctx, b.ID)
		if rerr != nil {
			return nil, rerr
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}
	b.Status = next
	b.UpdatedAt = at

	log.Printf("booking_status_changed id=%s lr_number=%s from=%s to=%s by=%s", b.ID, b.LRNumber, prev, next, agent.ID)
	s.publish(domain.BookingEvent{Type: domain.EventBookingStatusChanged, Booking: b, PreviousStatus: prev})
	return b, nil
}

func (s *Service) publish(ev domain.BookingEvent) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}
