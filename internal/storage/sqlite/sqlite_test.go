package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Customers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("LoadCustomers before any write is not found", func(t *testing.T) {
		_, err := store.LoadCustomers(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ReplaceCustomers round trips the collection", func(t *testing.T) {
		date := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)
		customers := []models.Customer{
			{
				ID: "1", Name: "John Doe", Address: "123 River Road", MeterNumber: "MTR-001", LastReading: 1250,
				Readings: []models.Reading{{ID: "r1", Date: date, Value: 1250, Consumption: 50, Amount: 110, Status: models.StatusPaid}},
				Scans:    []models.ScanEntry{{ID: "s1", Date: date, Analysis: "Stable", AlertLevel: models.AlertLevelLow}},
			},
			{ID: "2", Name: "Alice Smith", MeterNumber: "MTR-002", LastReading: 890},
		}
		require.NoError(t, store.ReplaceCustomers(ctx, customers))

		got, err := store.LoadCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID, "insertion order is kept")
		assert.Equal(t, customers[0].Readings, got[0].Readings)
		assert.Equal(t, customers[0].Scans, got[0].Scans)
		assert.Equal(t, 890.0, got[1].LastReading)
	})

	t.Run("ReplaceCustomers overwrites rather than merges", func(t *testing.T) {
		require.NoError(t, store.ReplaceCustomers(ctx, []models.Customer{{ID: "3", Name: "Only"}}))

		got, err := store.LoadCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})

	t.Run("empty collection is found and empty", func(t *testing.T) {
		require.NoError(t, store.ReplaceCustomers(ctx, nil))

		got, err := store.LoadCustomers(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSQLiteStore_State(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.LoadState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.AppState{}, empty)

	state := models.AppState{
		SelectedCustomerID: "2",
		PendingReading:     &models.PendingReading{CustomerID: "2", Value: "905.5"},
		LatestInsight:      &models.Insight{CustomerID: "2", Analysis: "Leak suspected", AlertLevel: models.AlertLevelHigh},
		DismissedAlertIDs:  []string{"overdue-r3"},
		Filter:             models.FilterCriticalLeak,
	}
	require.NoError(t, store.SaveState(ctx, "user-1", state))

	got, err := store.LoadState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	other, err := store.LoadState(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, models.AppState{}, other, "state is per operator")
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("ops@aquaflow.test", "Ops", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	byEmail, err := store.GetUserByEmail(ctx, "ops@aquaflow.test")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Ops", byID.DisplayName)

	missing, err := store.GetUserByEmail(ctx, "nobody@aquaflow.test")
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := models.NewUser("ops@aquaflow.test", "Other", "hash")
	assert.Error(t, store.CreateUser(ctx, dup), "email is unique")
}

func TestSQLiteStore_ReplaceCustomersRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := newWithDB(db)
	writeErr := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv")).
		WithArgs(storage.CustomersKey, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(writeErr)
	mock.ExpectRollback()

	err = store.ReplaceCustomers(context.Background(), []models.Customer{{ID: "1"}})
	assert.ErrorIs(t, err, writeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_LoadCustomersCorruptValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := newWithDB(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
		WithArgs(storage.CustomersKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("{not json")))

	_, err = store.LoadCustomers(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
