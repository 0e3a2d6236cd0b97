package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/wherehaus/addressbook/internal/domain"
	"github.com/wherehaus/addressbook/internal/geo"
	"github.com/wherehaus/addressbook/internal/repository"
	apperrors "github.com/wherehaus/addressbook/pkg/errors"
	"github.com/wherehaus/addressbook/pkg/tracing"
)

// AddressService implements the business logic for address operations.
type AddressService struct {
	repo   repository.AddressRepository
	logger *slog.Logger
	tracer trace.Tracer
}

// NewAddressService creates a new address service.
func NewAddressService(repo repository.AddressRepository, logger *slog.Logger) *AddressService {
	return &AddressService{
		repo:   repo,
		logger: logger,
		tracer: tracing.Tracer("addressbook.service"),
	}
}

// CreateAddressInput holds the parameters for creating a new address.
type CreateAddressInput struct {
	Label     string
	Street    string
	City      string
	State     string
	Country   string
	Latitude  float64
	Longitude float64
}

// UpdateAddressInput holds the parameters for updating an address. Nil fields
// leave the stored value unchanged, coordinates included.
type UpdateAddressInput struct {
	Label     *string
	Street    *string
	City      *string
	State     *string
	Country   *string
	Latitude  *float64
	Longitude *float64
}

// Create persists a new address, assigning its identifier and timestamps.
func (s *AddressService) Create(ctx context.Context, input *CreateAddressInput) (*domain.Address, error) {
	ctx, span := s.tracer.Start(ctx, "address.create")
	defer span.End()

	if input.Street == "" {
		return nil, apperrors.Validation("street is required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	// Millisecond precision, matching what the store persists, so the
	// created record round-trips identically through a subsequent get.
	now := time.Now().UTC().Truncate(time.Millisecond)
	address := &domain.Address{
		ID:        uuid.New().String(),
		Label:     input.Label,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		Country:   input.Country,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, address); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create address: %w", err))
	}

	s.logger.InfoContext(ctx, "address created", slog.String("address_id", address.ID))

	return address, nil
}

// Get returns the address with the given identifier.
func (s *AddressService) Get(ctx context.Context, id string) (*domain.Address, error) {
	ctx, span := s.tracer.Start(ctx, "address.get")
	defer span.End()

	address, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Update applies a partial update to an existing address. Omitted fields keep
// their stored values.
func (s *AddressService) Update(ctx context.Context, id string, input *UpdateAddressInput) (*domain.Address, error) {
	ctx, span := s.tracer.Start(ctx, "address.update")
	defer span.End()

	address, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Label != nil {
		address.Label = *input.Label
	}
	if input.Street != nil {
		if *input.Street == "" {
			return nil, apperrors.Validation("street cannot be empty")
		}
		address.Street = *input.Street
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.State != nil {
		address.State = *input.State
	}
	if input.Country != nil {
		address.Country = *input.Country
	}
	if input.Latitude != nil {
		address.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		address.Longitude = *input.Longitude
	}

	if err := validateCoordinates(address.Latitude, address.Longitude); err != nil {
		return nil, err
	}

	address.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := s.repo.Update(ctx, address); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "address updated", slog.String("address_id", address.ID))

	return address, nil
}

// Delete removes the address with the given identifier.
func (s *AddressService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "address.delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "address deleted", slog.String("address_id", id))

	return nil
}

// FindNearby returns all addresses whose great-circle distance from the
// center is at most radiusKm, ordered by ascending distance. The scan is
// O(n) over all stored rows.
func (s *AddressService) FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.NearbyAddress, error) {
	ctx, span := s.tracer.Start(ctx, "address.find_nearby")
	defer span.End()

	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		return nil, apperrors.Validation("radius must be non-negative")
	}

	addresses, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list addresses: %w", err))
	}

	nearby := make([]domain.NearbyAddress, 0, len(addresses))
	for _, a := range addresses {
		d := geo.Distance(lat, lon, a.Latitude, a.Longitude)
		if d <= radiusKm {
			nearby = append(nearby, domain.NearbyAddress{Address: a, DistanceKm: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby, nil
}

func validateCoordinates(lat, lon float64) error {
	// NaN compares false against every bound, so it must be rejected explicitly.
	if math.IsNaN(lat) || lat < domain.MinLatitude || lat > domain.MaxLatitude {
		return apperrors.Validation(fmt.Sprintf("latitude must be between %g and %g", domain.MinLatitude, domain.MaxLatitude))
	}
	if math.IsNaN(lon) || lon < domain.MinLongitude || lon > domain.MaxLongitude {
		return apperrors.Validation(fmt.Sprintf("longitude must be between %g and %g", domain.MinLongitude, domain.MaxLongitude))
	}
	return nil
}
