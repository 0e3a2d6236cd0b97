package repository

import (
	"context"

	"github.com/wherehaus/addressbook/internal/domain"
)

// AddressRepository defines the interface for address persistence operations.
type AddressRepository interface {
	// Create inserts a new address into the store.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves an address by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Address, error)

	// Update modifies an existing address in the store.
	Update(ctx context.Context, address *domain.Address) error

	// Delete removes an address from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// List returns all stored addresses. The proximity query filters this
	// full scan in memory; there is no spatial index.
	List(ctx context.Context) ([]domain.Address, error)
}
