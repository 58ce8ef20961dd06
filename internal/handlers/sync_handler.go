package handlers

import (
	"net/http"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/database"
	"github.com/HavishJadav/mkonnekt-assignment/internal/salesapi"

	"github.com/gin-gonic/gin"
)

// syncWindow is how far back a sync reaches. The upstream feed only holds
// recent orders anyway, so a month is already generous.
const syncWindow = 30 * 24 * time.Hour

// SyncOrders pulls the recent-order feed into the local store so /ask and
// /reports can answer without a live upstream call.
func SyncOrders(client *salesapi.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		orders, err := client.FetchOrders(c.Request.Context(), now.Add(-syncWindow), now)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch orders from the sales API"})
			return
		}

		imported, err := database.ImportOrders(c.Request.Context(), orders)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"fetched":  len(orders),
			"imported": imported,
		})
	}
}
