package salesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/analytics"
	"github.com/HavishJadav/mkonnekt-assignment/internal/models"
)

// DefaultBaseURL is the sandbox portal the agent reads from.
const DefaultBaseURL = "https://sandbox.mkonnekt.net/ch-portal/api/v1"

// DefaultTimeout bounds every fetch; a hung upstream never hangs a turn.
const DefaultTimeout = 10 * time.Second

// ErrTimeout marks a fetch that exceeded its bound, distinct from other
// transport failures and from an empty result.
var ErrTimeout = errors.New("sales api request timed out")

// Client fetches recent orders from the sales API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client. Empty baseURL and zero timeout fall back to
// the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// recentOrdersResponse is the API envelope around the order list.
type recentOrdersResponse struct {
	TotalOrders int            `json:"totalOrders"`
	MaxLimit    int            `json:"maxLimit"`
	DateRange   string         `json:"dateRange"`
	Orders      []models.Order `json:"orders"`
}

// FetchOrders pulls the recent-order feed and windows it to [since, until].
// The upstream endpoint has no range parameters, so windowing happens here.
func (c *Client) FetchOrders(ctx context.Context, since, until time.Time) ([]models.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders/recent", nil)
	if err != nil {
		return nil, fmt.Errorf("build orders request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("fetch orders: %w", ErrTimeout)
		}
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch orders: sales api returned %s", resp.Status)
	}

	var payload recentOrdersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("fetch orders: decode response: %w", err)
	}

	// The feed is capped; a full page means older orders were cut off.
	if payload.MaxLimit > 0 && payload.TotalOrders >= payload.MaxLimit {
		log.Printf("⚠️ sales api returned the max %d orders, data may be truncated", payload.MaxLimit)
	}

	return analytics.FilterByRange(payload.Orders, since, until), nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
