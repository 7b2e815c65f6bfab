// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/aquaflow/internal/models"
)

// CustomersKey is the fixed key the whole customer collection is stored under.
const CustomersKey = "aquaflow_customers"

// ErrNotFound is returned when a requested key or record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations the services need.
// The customer collection is read and replaced as a whole; there are no
// field-level writers.
type Store interface {
	// LoadCustomers returns the stored collection in insertion order.
	// It returns ErrNotFound if the collection has never been written.
	LoadCustomers(ctx context.Context) ([]models.Customer, error)

	// ReplaceCustomers atomically overwrites the whole collection.
	ReplaceCustomers(ctx context.Context, customers []models.Customer) error

	// LoadState returns the operator's view state, or a zero AppState if
	// none has been saved.
	LoadState(ctx context.Context, userID string) (models.AppState, error)

	// SaveState overwrites the operator's view state.
	SaveState(ctx context.Context, userID string, state models.AppState) error

	// CreateUser inserts a new operator account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil and no error if the email is unknown.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil and no error if the ID is unknown.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
