package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderCreatedAt(t *testing.T) {
	tests := []struct {
		name    string
		created string
		ok      bool
		want    time.Time
	}{
		{"rfc3339", "2025-11-06T09:00:00Z", true, time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC)},
		{"no zone with seconds", "2025-11-06T09:00:30", true, time.Date(2025, 11, 6, 9, 0, 30, 0, time.UTC)},
		{"no seconds", "2025-11-06T09:00", true, time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC)},
		{"date only", "2025-11-06", true, time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)},
		{"empty", "", false, time.Time{}},
		{"garbage", "not-a-date", false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Order{CreatedTime: tt.created}.CreatedAt()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want))
			}
		})
	}
}

func TestLineItemUnitCount(t *testing.T) {
	three, neg := 3, -2
	assert.Equal(t, 1, LineItem{}.UnitCount())
	assert.Equal(t, 3, LineItem{Quantity: &three}.UnitCount())
	assert.Equal(t, 0, LineItem{Quantity: &neg}.UnitCount())
}

func TestLineItemCategoryName(t *testing.T) {
	assert.Equal(t, "Drinks", LineItem{Category: "Drinks"}.CategoryName())
	assert.Equal(t, "Uncategorized", LineItem{}.CategoryName())
}
