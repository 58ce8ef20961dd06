package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SingleIntent(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"total revenue today", IntentTotalRevenue},
		{"what was our total revenue yesterday", IntentTotalRevenue},
		{"how much did we make", IntentTotalRevenue},
		{"turnover last week", IntentTotalRevenue},
		{"average order value last week", IntentAverageOrderValue},
		{"what is the aov", IntentAverageOrderValue},
		{"maximum order today", IntentMaxOrder},
		{"smallest order yesterday", IntentMinOrder},
		{"how many orders did we get", IntentOrderCount},
		{"number of orders today", IntentOrderCount},
		{"best selling products", IntentTopItems},
		{"show me the best-selling items", IntentTopItems},
		{"most popular items", IntentMostFrequentItems},
		{"average items per order", IntentAvgItemsPerOrder},
		{"what was the basket size", IntentAvgItemsPerOrder},
		{"biggest discount given today", IntentMaxDiscount},
		{"coupon usage last week", IntentDiscountImpact},
		{"any refunds yesterday", IntentRefundSummary},
		{"sales by employee", IntentSalesByEmployee},
		{"sales by category last week", IntentSalesByCategory},
		{"busiest hour today", IntentHourlySales},
		{"sales trend this month", IntentSalesTrend},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, []Intent{tt.want}, Classify(tt.query))
		})
	}
}

func TestClassify_LongestPhraseWins(t *testing.T) {
	// "revenue" appears but the longer grouping phrase is the real ask.
	assert.Equal(t, []Intent{IntentSalesByEmployee}, Classify("revenue by employee"))
	// "average order" must not shadow "average order value".
	assert.Equal(t, []Intent{IntentAverageOrderValue}, Classify("average order value"))
	// "discount" inside "max discount" is consumed by the longer phrase.
	assert.Equal(t, []Intent{IntentMaxDiscount}, Classify("max discount today"))
}

func TestClassify_TokenRecovery(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		// No curated phrase matches; lone adjectives carry the intent.
		{"which items did best", IntentTopItems},
		{"who was the biggest", IntentMaxOrder},
		{"which sold most", IntentTopItems},
		{"cheapest one", IntentMinOrder},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, []Intent{tt.want}, Classify(tt.query))
		})
	}
}

func TestClassify_TwoStage(t *testing.T) {
	tests := []struct {
		query string
		want  []Intent
	}{
		{
			"what was the max order and total discount on it today",
			[]Intent{IntentMaxOrder, IntentDiscountImpact},
		},
		{
			"total discount and max order today",
			[]Intent{IntentDiscountImpact, IntentMaxOrder},
		},
		{
			"max order with the biggest discount",
			[]Intent{IntentMaxOrder, IntentMaxDiscount},
		},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestClassify_NoConnectorMeansSingle(t *testing.T) {
	// Two intent phrases but no connector: only the strongest survives.
	got := Classify("discount on refund orders")
	assert.Equal(t, []Intent{IntentDiscountImpact}, got)
}

func TestClassify_Unrecognized(t *testing.T) {
	assert.Nil(t, Classify("hello there"))
	assert.Nil(t, Classify("what is the weather like"))
}

func TestClassify_Deterministic(t *testing.T) {
	q := "max order and total discount today"
	first := Classify(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(q))
	}
}

func TestSupported(t *testing.T) {
	assert.Len(t, Supported(), 15)
}

func TestCountHint(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"top 3 selling items", 3},
		{"best 10 products", 10},
		{"3 smallest orders", 3},
		{"5 largest orders yesterday", 5},
		{"best selling products", 0},
		{"total revenue today", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, CountHint(tt.query))
		})
	}
}
