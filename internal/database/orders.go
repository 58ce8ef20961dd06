package database

import (
	"context"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/models"

	"gorm.io/gorm/clause"
)

// ImportOrders upserts a batch of API orders into the store, keyed by
// orderId so re-syncing the same window is idempotent. Returns how many
// orders were written. Orders with malformed timestamps are skipped; they
// could never be served by a range query anyway.
func ImportOrders(ctx context.Context, orders []models.Order) (int, error) {
	imported := 0
	for _, o := range orders {
		created, ok := o.CreatedAt()
		if !ok {
			continue
		}
		o.CreatedAtUTC = created.UTC()

		// Replace children wholesale; the feed is the source of truth.
		tx := DB.WithContext(ctx)
		if err := tx.Where("order_id = ?", o.OrderID).Delete(&models.LineItem{}).Error; err != nil {
			return imported, err
		}
		if err := tx.Where("order_id = ?", o.OrderID).Delete(&models.Discount{}).Error; err != nil {
			return imported, err
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&o).Error; err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// GetRecentOrders returns the stored orders created inside [since, until],
// children included, oldest first.
func GetRecentOrders(ctx context.Context, since, until time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := DB.WithContext(ctx).
		Preload("LineItems").
		Preload("Discounts").
		Where("created_at_utc BETWEEN ? AND ?", since.UTC(), until.UTC()).
		Order("created_at_utc asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Store adapts the package to the agent's OrderSource interface, so the
// server can answer questions from synced data instead of hitting the
// sales API live.
type Store struct{}

func (Store) FetchOrders(ctx context.Context, since, until time.Time) ([]models.Order, error) {
	return GetRecentOrders(ctx, since, until)
}
