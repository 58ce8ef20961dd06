package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/analytics"
	"github.com/HavishJadav/mkonnekt-assignment/internal/models"
	"github.com/HavishJadav/mkonnekt-assignment/internal/query"
	"github.com/HavishJadav/mkonnekt-assignment/internal/salesapi"
	"github.com/HavishJadav/mkonnekt-assignment/internal/utils"
)

// DefaultRange is the window used when the query carries no date hint.
const DefaultRange = 48 * time.Hour

// OrderSource fetches the orders for a resolved window. Implemented by the
// sales API client and by the local store.
type OrderSource interface {
	FetchOrders(ctx context.Context, since, until time.Time) ([]models.Order, error)
}

// Summarizer turns an answered turn into user-facing text. Implementations
// must degrade internally (never fail, never lose the numbers).
type Summarizer interface {
	Summarize(ctx context.Context, ans *Answer) string
}

// Outcome is what happened to one query turn.
type Outcome int

const (
	OutcomeAnswered Outcome = iota
	OutcomeClarificationNeeded
	OutcomeUnrecognizedIntent
	OutcomeNoData
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeClarificationNeeded:
		return "clarification_needed"
	case OutcomeUnrecognizedIntent:
		return "unrecognized_intent"
	case OutcomeNoData:
		return "no_data"
	default:
		return "unknown"
	}
}

// Answer is the structured result of one query turn.
type Answer struct {
	Outcome Outcome            `json:"outcome"`
	Query   string             `json:"query"`
	Start   time.Time          `json:"start,omitempty"`
	End     time.Time          `json:"end,omitempty"`
	Intents []query.Intent     `json:"intents,omitempty"`
	Results []analytics.Result `json:"results,omitempty"`
	Message string             `json:"message,omitempty"` // why the turn failed, for the user
	Summary string             `json:"summary,omitempty"` // natural-language rendering
}

// Agent wires the resolver, classifier and engine around an order source.
type Agent struct {
	source       OrderSource
	summarizer   Summarizer
	fetchTimeout time.Duration
}

// New builds an agent. summarizer may be nil (structured answers only).
func New(source OrderSource, summarizer Summarizer, fetchTimeout time.Duration) *Agent {
	if fetchTimeout <= 0 {
		fetchTimeout = salesapi.DefaultTimeout
	}
	return &Agent{source: source, summarizer: summarizer, fetchTimeout: fetchTimeout}
}

// Answer runs one full turn: resolve the date, classify the intent, fetch
// the window, compute, summarize. Every failure comes back as a value; the
// interactive loop never sees an error it has to recover from.
//
// Failures are ordered cheapest first: an unparseable date short-circuits
// before classification, an unrecognized intent before any fetch.
func (a *Agent) Answer(ctx context.Context, queryText string, now time.Time) *Answer {
	ans := &Answer{Query: queryText}

	// 1. Date range. An unparseable hint means we ask, never guess.
	hint := query.Resolve(queryText, now)
	switch hint.Kind {
	case query.UnparseableHint:
		ans.Outcome = OutcomeClarificationNeeded
		ans.Message = fmt.Sprintf("Sorry, I could not understand the date %q. Please spell out the date or range you mean.", hint.Raw)
		return ans
	case query.NoHint:
		ans.Start, ans.End = now.Add(-DefaultRange), now
	default:
		ans.Start, ans.End = hint.Start, hint.End
	}

	// 2. Intent
	ans.Intents = query.Classify(queryText)
	if len(ans.Intents) == 0 {
		ans.Outcome = OutcomeUnrecognizedIntent
		ans.Message = "I did not recognize that question. I can answer: " + supportedList() + "."
		return ans
	}

	// 3. Fetch the order window
	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()
	orders, err := a.source.FetchOrders(fetchCtx, ans.Start, ans.End)
	if err != nil {
		ans.Outcome = OutcomeNoData
		if errors.Is(err, salesapi.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			ans.Message = "The sales API timed out. Please try again later."
		} else {
			ans.Message = "Could not fetch sales data right now. Please check the connection and try again."
		}
		log.Printf("order fetch failed: %v", err)
		return ans
	}
	if len(orders) == 0 {
		ans.Outcome = OutcomeNoData
		ans.Message = fmt.Sprintf("No orders found for %s.", utils.FormatRange(ans.Start, ans.End))
		return ans
	}

	// 4. Compute. For a two-stage query the second intent runs over the
	// single order stage one selected, not over the whole window again.
	n := query.CountHint(queryText)
	first := analytics.Compute(ans.Intents[0], orders, n)
	first.Start, first.End = ans.Start, ans.End
	ans.Results = append(ans.Results, first)

	if len(ans.Intents) > 1 {
		stageOrders := orders
		if first.Order != nil {
			stageOrders = []models.Order{*first.Order}
		}
		second := analytics.Compute(ans.Intents[1], stageOrders, n)
		second.Start, second.End = ans.Start, ans.End
		ans.Results = append(ans.Results, second)
	}

	ans.Outcome = OutcomeAnswered

	// 5. Optional natural-language summary
	if a.summarizer != nil {
		ans.Summary = a.summarizer.Summarize(ctx, ans)
	}
	return ans
}

func supportedList() string {
	supported := query.Supported()
	names := make([]string, len(supported))
	for i, intent := range supported {
		names[i] = strings.ReplaceAll(string(intent), "_", " ")
	}
	return strings.Join(names, ", ")
}
