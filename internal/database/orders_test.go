package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/HavishJadav/mkonnekt-assignment/internal/models"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Open(sqlite.Open("file::memory:")))
}

func intPtr(n int) *int { return &n }

func sampleOrders() []models.Order {
	return []models.Order{
		{
			OrderID:     "ord-1",
			Total:       10000,
			CreatedTime: "2025-11-06T09:00",
			EmployeeID:  "emp-1",
			LineItems: []models.LineItem{
				{LineItemID: "li-1", Name: "Latte", Category: "Drinks", Price: 500, Quantity: intPtr(2)},
			},
			Discounts: []models.Discount{
				{LineItemID: "li-1", Amount: 100, Type: "percent"},
			},
		},
		{
			OrderID:     "ord-2",
			Total:       5000,
			CreatedTime: "2025-11-07T10:00",
			EmployeeID:  "emp-2",
		},
	}
}

func TestImportAndFetchOrders(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	imported, err := ImportOrders(ctx, sampleOrders())
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	since := time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 11, 7, 23, 59, 59, 0, time.UTC)

	orders, err := GetRecentOrders(ctx, since, until)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// Oldest first, children loaded.
	assert.Equal(t, "ord-1", orders[0].OrderID)
	require.Len(t, orders[0].LineItems, 1)
	assert.Equal(t, "Latte", orders[0].LineItems[0].Name)
	require.Len(t, orders[0].Discounts, 1)
	assert.Equal(t, 100.0, orders[0].Discounts[0].Amount)
}

func TestImportOrders_Idempotent(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	_, err := ImportOrders(ctx, sampleOrders())
	require.NoError(t, err)
	// Re-syncing the same feed must not duplicate orders or children.
	_, err = ImportOrders(ctx, sampleOrders())
	require.NoError(t, err)

	since := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	orders, err := GetRecentOrders(ctx, since, until)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].LineItems, 1)
	assert.Len(t, orders[0].Discounts, 1)
}

func TestImportOrders_SkipsMalformedTimestamps(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	orders := append(sampleOrders(), models.Order{OrderID: "ord-bad", Total: 100, CreatedTime: "garbage"})
	imported, err := ImportOrders(ctx, orders)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
}

func TestGetRecentOrders_WindowExcludes(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	_, err := ImportOrders(ctx, sampleOrders())
	require.NoError(t, err)

	since := time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 11, 7, 23, 59, 59, 0, time.UTC)
	orders, err := GetRecentOrders(ctx, since, until)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-2", orders[0].OrderID)
}

func TestStoreImplementsOrderSource(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	_, err := ImportOrders(ctx, sampleOrders())
	require.NoError(t, err)

	orders, err := Store{}.FetchOrders(ctx,
		time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
