package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wherehaus/addressbook/internal/domain"
	apperrors "github.com/wherehaus/addressbook/pkg/errors"
)

// AddressRepository implements repository.AddressRepository using SQLite.
type AddressRepository struct {
	db *sql.DB
}

// NewAddressRepository creates a new SQLite-backed address repository.
func NewAddressRepository(db *sql.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts a new address into the database.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	query := `
		INSERT INTO addresses (id, label, street, city, state, country, latitude, longitude, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Label,
		a.Street,
		a.City,
		a.State,
		a.Country,
		a.Latitude,
		a.Longitude,
		toMillis(a.CreatedAt),
		toMillis(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	return nil
}

// GetByID retrieves an address by its ID.
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	query := `
		SELECT id, label, street, city, state, country, latitude, longitude, created_at, updated_at
		FROM addresses
		WHERE id = ?`

	var (
		a         domain.Address
		createdAt int64
		updatedAt int64
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.Label,
		&a.Street,
		&a.City,
		&a.State,
		&a.Country,
		&a.Latitude,
		&a.Longitude,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("address", id)
		}
		return nil, fmt.Errorf("select address: %w", err)
	}

	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)

	return &a, nil
}

// Update modifies an existing address in the database.
func (r *AddressRepository) Update(ctx context.Context, a *domain.Address) error {
	query := `
		UPDATE addresses
		SET label = ?, street = ?, city = ?, state = ?, country = ?,
		    latitude = ?, longitude = ?, updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		a.Label,
		a.Street,
		a.City,
		a.State,
		a.Country,
		a.Latitude,
		a.Longitude,
		toMillis(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update address rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("address", a.ID)
	}

	return nil
}

// Delete removes an address from the database by its ID.
func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM addresses WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete address rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("address", id)
	}

	return nil
}

// List returns all stored addresses ordered by creation time.
func (r *AddressRepository) List(ctx context.Context) ([]domain.Address, error) {
	query := `
		SELECT id, label, street, city, state, country, latitude, longitude, created_at, updated_at
		FROM addresses
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var (
			a         domain.Address
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(
			&a.ID,
			&a.Label,
			&a.Street,
			&a.City,
			&a.State,
			&a.Country,
			&a.Latitude,
			&a.Longitude,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		a.CreatedAt = fromMillis(createdAt)
		a.UpdatedAt = fromMillis(updatedAt)
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	return addresses, nil
}
