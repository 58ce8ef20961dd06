package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/analytics"
	"github.com/HavishJadav/mkonnekt-assignment/internal/database"
	"github.com/HavishJadav/mkonnekt-assignment/internal/query"

	"github.com/gin-gonic/gin"
)

// ReportData is the fixed dashboard summary: the three metrics every
// storefront asks for first, computed by the same engine the agent uses.
type ReportData struct {
	TotalRevenue float64              `json:"total_revenue"`
	TotalOrders  int                  `json:"total_orders"`
	TopSelling   []analytics.ItemStat `json:"top_selling"`
}

// GetSalesReport serves GET /api/reports?days=N over the synced store
// (default: last 2 days, same window the agent defaults to).
func GetSalesReport(c *gin.Context) {
	days := 2
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive number"})
			return
		}
		days = n
	}

	now := time.Now()
	orders, err := database.GetRecentOrders(c.Request.Context(), now.AddDate(0, 0, -days), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	var data ReportData
	revenue := analytics.Compute(query.IntentTotalRevenue, orders, 0)
	count := analytics.Compute(query.IntentOrderCount, orders, 0)
	top := analytics.Compute(query.IntentTopItems, orders, 5)
	if !revenue.NoData {
		data.TotalRevenue = revenue.Value
	}
	if !count.NoData {
		data.TotalOrders = count.Count
	}
	data.TopSelling = top.ItemsByRevenue

	c.JSON(http.StatusOK, data)
}
