package ai

import (
	"fmt"
	"strings"

	"github.com/HavishJadav/mkonnekt-assignment/internal/agent"
	"github.com/HavishJadav/mkonnekt-assignment/internal/analytics"
	"github.com/HavishJadav/mkonnekt-assignment/internal/query"
	"github.com/HavishJadav/mkonnekt-assignment/internal/utils"
)

// Fallback renders an answered turn as plain text without any LLM. This is
// the deterministic path: same answer in, same text out.
func Fallback(ans *agent.Answer, reason string) string {
	lines := []string{
		fmt.Sprintf("Insight (%s)", reason),
		fmt.Sprintf("Date: %s", utils.FormatRange(ans.Start, ans.End)),
	}
	if len(ans.Results) == 0 {
		lines = append(lines, "No facts available.")
		return strings.Join(lines, "\n")
	}
	for _, r := range ans.Results {
		lines = append(lines, factLines(r)...)
	}
	return strings.Join(lines, "\n")
}

// factLines flattens one result into display lines, one metric per line.
func factLines(r analytics.Result) []string {
	label := strings.ReplaceAll(string(r.Intent), "_", " ")
	if r.NoData {
		return []string{fmt.Sprintf("- %s: no data in range", label)}
	}

	switch r.Intent {
	case query.IntentTotalRevenue, query.IntentDiscountImpact:
		return []string{fmt.Sprintf("- %s: %s", label, utils.USD(r.Value))}
	case query.IntentAverageOrderValue:
		return []string{fmt.Sprintf("- %s: %s over %d orders", label, utils.USD(r.Value), r.Count)}
	case query.IntentOrderCount:
		return []string{fmt.Sprintf("- %s: %d orders", label, r.Count)}
	case query.IntentMaxOrder, query.IntentMinOrder:
		line := fmt.Sprintf("- %s: %s", label, utils.USD(r.Value))
		if r.Order != nil {
			line += fmt.Sprintf(" (order %s)", r.Order.OrderID)
		}
		return []string{line}
	case query.IntentMaxDiscount:
		if r.Order == nil {
			return []string{fmt.Sprintf("- %s: no discounts found", label)}
		}
		return []string{fmt.Sprintf("- %s: %s (order %s)", label, utils.USD(r.Value), r.Order.OrderID)}
	case query.IntentRefundSummary:
		return []string{fmt.Sprintf("- %s: %d refunded orders totalling %s", label, r.Count, utils.USD(r.Value))}
	case query.IntentAvgItemsPerOrder:
		return []string{fmt.Sprintf("- %s: %.2f (%d units)", label, r.Value, r.Count)}
	case query.IntentTopItems, query.IntentMostFrequentItems:
		lines := []string{fmt.Sprintf("- %s:", label)}
		ranking := r.ItemsByRevenue
		if r.Intent == query.IntentMostFrequentItems {
			ranking = r.ItemsByUnits
		}
		for i, item := range ranking {
			lines = append(lines, fmt.Sprintf("  %d. %s: %s, %d units", i+1, item.Name, utils.USD(item.RevenueUSD), item.Units))
		}
		return lines
	case query.IntentHourlySales:
		lines := []string{fmt.Sprintf("- %s:", label)}
		for _, b := range r.Buckets {
			lines = append(lines, fmt.Sprintf("  %s: %s (%d orders)", b.Key, utils.USD(b.RevenueUSD), b.Orders))
		}
		if r.Peak != nil {
			lines = append(lines, fmt.Sprintf("  peak: %s at %s", r.Peak.Key, utils.USD(r.Peak.RevenueUSD)))
		}
		return lines
	case query.IntentSalesByEmployee, query.IntentSalesByCategory, query.IntentSalesTrend:
		lines := []string{fmt.Sprintf("- %s:", label)}
		for _, b := range r.Buckets {
			lines = append(lines, fmt.Sprintf("  %s: %s (%d orders)", b.Key, utils.USD(b.RevenueUSD), b.Orders))
		}
		return lines
	default:
		return []string{fmt.Sprintf("- %s: computed", label)}
	}
}
