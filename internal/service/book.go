package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/aquaflow/internal/calculator"
	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/internal/storage"
)

// Book owns the customer collection and the operators' view state. Every
// read-modify-write goes through its mutex, so concurrent RPCs never lose
// each other's updates. Calls to the insight provider must happen outside
// of Update.
type Book struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time
	newID calculator.IDFunc
}

// NewBook creates a book on top of the store.
func NewBook(store storage.Store) *Book {
	return &Book{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Customers returns the whole collection, seeding the demo customers the
// first time the store is read.
func (b *Book) Customers(ctx context.Context) ([]models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

// Customer returns one customer by ID.
func (b *Book) Customer(ctx context.Context, id string) (models.Customer, error) {
	customers, err := b.Customers(ctx)
	if err != nil {
		return models.Customer{}, err
	}
	idx := models.FindCustomer(customers, id)
	if idx < 0 {
		return models.Customer{}, fmt.Errorf("%w: %q", ErrCustomerNotFound, id)
	}
	return customers[idx], nil
}

func (b *Book) load(ctx context.Context) ([]models.Customer, error) {
	customers, err := b.store.LoadCustomers(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		customers = SeedCustomers()
		if err := b.store.ReplaceCustomers(ctx, customers); err != nil {
			return nil, fmt.Errorf("failed to seed customers: %w", err)
		}
		slog.Info("Seeded demo customers", "count", len(customers))
		return customers, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return customers, nil
}

// Update loads the collection, applies fn and stores the result in one
// critical section. Nothing is written if fn fails.
func (b *Book) Update(ctx context.Context, fn func([]models.Customer) ([]models.Customer, error)) ([]models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	customers, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(customers)
	if err != nil {
		return nil, err
	}
	if err := b.store.ReplaceCustomers(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save customers: %w", err)
	}
	return updated, nil
}

// UpdateCustomer applies fn to the customer with the given ID.
func (b *Book) UpdateCustomer(ctx context.Context, id string, fn func(models.Customer) (models.Customer, error)) (models.Customer, error) {
	var result models.Customer
	_, err := b.Update(ctx, func(customers []models.Customer) ([]models.Customer, error) {
		idx := models.FindCustomer(customers, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrCustomerNotFound, id)
		}
		updated, err := fn(customers[idx])
		if err != nil {
			return nil, err
		}
		out := slices.Clone(customers)
		out[idx] = updated
		result = updated
		return out, nil
	})
	return result, err
}

// State returns the operator's view state.
func (b *Book) State(ctx context.Context, userID string) (models.AppState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, err := b.store.LoadState(ctx, userID)
	if err != nil {
		return models.AppState{}, fmt.Errorf("failed to load state: %w", err)
	}
	return state, nil
}

// UpdateState applies fn to the operator's view state and stores it.
func (b *Book) UpdateState(ctx context.Context, userID string, fn func(models.AppState) models.AppState) (models.AppState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, err := b.store.LoadState(ctx, userID)
	if err != nil {
		return models.AppState{}, fmt.Errorf("failed to load state: %w", err)
	}
	state = fn(state)
	if err := b.store.SaveState(ctx, userID, state); err != nil {
		return models.AppState{}, fmt.Errorf("failed to save state: %w", err)
	}
	return state, nil
}
