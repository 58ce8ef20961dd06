package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HavishJadav/mkonnekt-assignment/internal/models"
	"github.com/HavishJadav/mkonnekt-assignment/internal/query"
	"github.com/HavishJadav/mkonnekt-assignment/internal/salesapi"
)

var now = time.Date(2025, 11, 7, 15, 30, 0, 0, time.UTC)

// fakeSource records every fetch so tests can assert on call counts and on
// the window the orchestrator resolved.
type fakeSource struct {
	orders    []models.Order
	err       error
	calls     int
	lastSince time.Time
	lastUntil time.Time
}

func (f *fakeSource) FetchOrders(_ context.Context, since, until time.Time) ([]models.Order, error) {
	f.calls++
	f.lastSince, f.lastUntil = since, until
	return f.orders, f.err
}

type fakeSummarizer struct {
	calls int
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ *Answer) string {
	f.calls++
	return "canned summary"
}

func sampleOrders() []models.Order {
	return []models.Order{
		{OrderID: "ord-1", Total: 10000, CreatedTime: "2025-11-07T09:00", Discounts: []models.Discount{{Amount: 500}}},
		{OrderID: "ord-2", Total: 5000, CreatedTime: "2025-11-07T10:00", Discounts: []models.Discount{{Amount: 200}}},
	}
}

func TestAnswer_HappyPath(t *testing.T) {
	src := &fakeSource{orders: sampleOrders()}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "total revenue today", now)

	assert.Equal(t, OutcomeAnswered, ans.Outcome)
	assert.Equal(t, []query.Intent{query.IntentTotalRevenue}, ans.Intents)
	require.Len(t, ans.Results, 1)
	assert.Equal(t, 150.00, ans.Results[0].Value)
	assert.Equal(t, 1, src.calls)
	// The resolved window is stamped onto the result.
	assert.Equal(t, ans.Start, ans.Results[0].Start)
	assert.Equal(t, ans.End, ans.Results[0].End)
}

func TestAnswer_DefaultRangeWhenNoHint(t *testing.T) {
	src := &fakeSource{orders: sampleOrders()}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "total revenue", now)

	assert.Equal(t, OutcomeAnswered, ans.Outcome)
	assert.Equal(t, now.Add(-DefaultRange), src.lastSince)
	assert.Equal(t, now, src.lastUntil)
	assert.Equal(t, now.Add(-DefaultRange), ans.Start)
}

func TestAnswer_UnparseableDateAsksBeforeFetching(t *testing.T) {
	src := &fakeSource{orders: sampleOrders()}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "total revenue tomorrow", now)

	assert.Equal(t, OutcomeClarificationNeeded, ans.Outcome)
	assert.Contains(t, ans.Message, "tomorrow")
	assert.Zero(t, src.calls)
	assert.Empty(t, ans.Results)
}

func TestAnswer_UnrecognizedIntentBeforeFetching(t *testing.T) {
	src := &fakeSource{orders: sampleOrders()}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "what is the weather like", now)

	assert.Equal(t, OutcomeUnrecognizedIntent, ans.Outcome)
	assert.Contains(t, ans.Message, "total revenue")
	assert.Zero(t, src.calls)
}

func TestAnswer_EmptyWindow(t *testing.T) {
	src := &fakeSource{}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "total revenue today", now)

	assert.Equal(t, OutcomeNoData, ans.Outcome)
	assert.Contains(t, ans.Message, "No orders found")
	assert.Empty(t, ans.Results)
}

func TestAnswer_TimeoutMessage(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("fetch orders: %w", salesapi.ErrTimeout)}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "total revenue today", now)

	assert.Equal(t, OutcomeNoData, ans.Outcome)
	assert.Contains(t, ans.Message, "timed out")
}

func TestAnswer_TransportErrorMessage(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("connection refused")}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "total revenue today", now)

	assert.Equal(t, OutcomeNoData, ans.Outcome)
	assert.Contains(t, ans.Message, "Could not fetch")
}

func TestAnswer_TwoStageRunsOverSelectedOrder(t *testing.T) {
	src := &fakeSource{orders: sampleOrders()}
	a := New(src, nil, time.Second)

	ans := a.Answer(context.Background(), "what was the max order and total discount on it today", now)

	assert.Equal(t, OutcomeAnswered, ans.Outcome)
	assert.Equal(t, []query.Intent{query.IntentMaxOrder, query.IntentDiscountImpact}, ans.Intents)
	require.Len(t, ans.Results, 2)

	maxRes := ans.Results[0]
	require.NotNil(t, maxRes.Order)
	assert.Equal(t, "ord-1", maxRes.Order.OrderID)

	// Stage two sees only ord-1's discounts (5.00), not the window's 7.00.
	assert.Equal(t, 5.00, ans.Results[1].Value)
	// Still only one fetch for both stages.
	assert.Equal(t, 1, src.calls)
}

func TestAnswer_SummarizerIsOptional(t *testing.T) {
	src := &fakeSource{orders: sampleOrders()}

	a := New(src, nil, time.Second)
	ans := a.Answer(context.Background(), "total revenue today", now)
	assert.Empty(t, ans.Summary)

	sum := &fakeSummarizer{}
	a = New(src, sum, time.Second)
	ans = a.Answer(context.Background(), "total revenue today", now)
	assert.Equal(t, "canned summary", ans.Summary)
	assert.Equal(t, 1, sum.calls)
}

func TestAnswer_SummarizerSkippedOnFailure(t *testing.T) {
	sum := &fakeSummarizer{}
	a := New(&fakeSource{}, sum, time.Second)

	_ = a.Answer(context.Background(), "total revenue today", now)
	assert.Zero(t, sum.calls)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "answered", OutcomeAnswered.String())
	assert.Equal(t, "clarification_needed", OutcomeClarificationNeeded.String())
	assert.Equal(t, "unrecognized_intent", OutcomeUnrecognizedIntent.String())
	assert.Equal(t, "no_data", OutcomeNoData.String())
}
