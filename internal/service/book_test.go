package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/internal/storage/sqlite"
)

func newTestBook(t *testing.T) *Book {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "book.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewBook(store)
}

func TestBook_SeedsOnce(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	customers, err := book.Customers(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedCustomers(), customers)

	_, err = book.Update(ctx, func(cs []models.Customer) ([]models.Customer, error) {
		return cs[:1], nil
	})
	require.NoError(t, err)

	customers, err = book.Customers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestBook_UpdateErrorWritesNothing(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := book.UpdateCustomer(ctx, "1", func(c models.Customer) (models.Customer, error) {
		c.Name = "changed"
		return c, boom
	})
	assert.ErrorIs(t, err, boom)

	c, err := book.Customer(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.Name)
}

func TestBook_ConcurrentUpdates(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := book.Update(ctx, func(cs []models.Customer) ([]models.Customer, error) {
				out := append([]models.Customer(nil), cs...)
				return append(out, models.Customer{ID: fmt.Sprintf("c%d", i), Name: "n", MeterNumber: "m"}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	customers, err := book.Customers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, len(SeedCustomers())+writers)
}

func TestBook_State(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	state, err := book.State(ctx, "op")
	require.NoError(t, err)
	assert.Equal(t, models.AppState{}, state)

	_, err = book.UpdateState(ctx, "op", func(s models.AppState) models.AppState {
		s.SelectedCustomerID = "2"
		return s
	})
	require.NoError(t, err)

	state, err = book.State(ctx, "op")
	require.NoError(t, err)
	assert.Equal(t, "2", state.SelectedCustomerID)

	other, err := book.State(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other.SelectedCustomerID)
}
