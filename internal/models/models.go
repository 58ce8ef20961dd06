package models

import (
	"time"
)

// User - The person allowed to query the insight API
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'analyst'
	CreatedAt    time.Time `json:"created_at"`
}

// Order - One sales transaction as the sales API reports it.
// All monetary fields (total, line prices, discount amounts) are in cents.
type Order struct {
	OrderID     string     `gorm:"primaryKey;size:64" json:"orderId"`
	Total       float64    `json:"total"`
	CreatedTime string     `json:"createdTime"` // ISO8601, usually with a trailing Z
	EmployeeID  string     `gorm:"size:64" json:"employeeId"`
	Refunded    bool       `json:"refunded"`
	LineItems   []LineItem `gorm:"foreignKey:OrderID;references:OrderID" json:"lineItems"`
	Discounts   []Discount `gorm:"foreignKey:OrderID;references:OrderID" json:"discounts"`

	// CreatedAtUTC mirrors CreatedTime as a real timestamp so the store
	// can run range queries on it. Filled in on import, never serialized.
	CreatedAtUTC time.Time `gorm:"index" json:"-"`
}

// LineItem - One line of an order. Quantity is optional on the wire;
// a missing quantity means 1.
type LineItem struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	OrderID    string  `gorm:"size:64;index" json:"-"`
	LineItemID string  `gorm:"size:64" json:"lineItemId"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"` // unit price in cents
	Quantity   *int    `json:"quantity,omitempty"`
}

// Discount - One discount applied to an order
type Discount struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	OrderID    string  `gorm:"size:64;index" json:"-"`
	LineItemID string  `gorm:"size:64" json:"lineItemId"`
	Amount     float64 `json:"amount"` // cents
	Type       string  `json:"type"`
}

// createdTimeLayouts covers the formats the sales API has been seen using.
var createdTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// CreatedAt parses the order's raw timestamp. The second return value is
// false when the timestamp is missing or malformed; callers skip those
// orders instead of failing the whole computation.
func (o Order) CreatedAt() (time.Time, bool) {
	if o.CreatedTime == "" {
		return time.Time{}, false
	}
	for _, layout := range createdTimeLayouts {
		if t, err := time.Parse(layout, o.CreatedTime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UnitCount returns the line's quantity, defaulting to 1 when the API
// omitted it. Negative values are clamped to 0.
func (li LineItem) UnitCount() int {
	if li.Quantity == nil {
		return 1
	}
	if *li.Quantity < 0 {
		return 0
	}
	return *li.Quantity
}

// CategoryName groups uncategorized items under one bucket.
func (li LineItem) CategoryName() string {
	if li.Category == "" {
		return "Uncategorized"
	}
	return li.Category
}
