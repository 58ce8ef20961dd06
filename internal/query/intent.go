package query

import (
	"sort"
	"strings"
)

// Intent is one analytic operation from the fixed catalog.
type Intent string

const (
	IntentTotalRevenue      Intent = "total_revenue"
	IntentAverageOrderValue Intent = "average_order_value"
	IntentMaxOrder          Intent = "max_order"
	IntentMinOrder          Intent = "min_order"
	IntentOrderCount        Intent = "order_count"
	IntentTopItems          Intent = "top_items"
	IntentMostFrequentItems Intent = "most_frequent_items"
	IntentAvgItemsPerOrder  Intent = "average_items_per_order"
	IntentDiscountImpact    Intent = "discount_impact"
	IntentMaxDiscount       Intent = "max_discount"
	IntentRefundSummary     Intent = "refund_summary"
	IntentSalesByEmployee   Intent = "sales_by_employee"
	IntentSalesByCategory   Intent = "sales_by_category"
	IntentHourlySales       Intent = "hourly_sales"
	IntentSalesTrend        Intent = "sales_trend"
)

// Supported lists the full catalog, used when we have to tell the user
// what this agent can actually answer.
func Supported() []Intent {
	return []Intent{
		IntentTotalRevenue, IntentAverageOrderValue, IntentMaxOrder,
		IntentMinOrder, IntentOrderCount, IntentTopItems,
		IntentMostFrequentItems, IntentAvgItemsPerOrder,
		IntentDiscountImpact, IntentMaxDiscount, IntentRefundSummary,
		IntentSalesByEmployee, IntentSalesByCategory, IntentHourlySales,
		IntentSalesTrend,
	}
}

type phraseRule struct {
	phrase string
	intent Intent
}

// phraseRules is the curated idiom table. Matching is longest-phrase-first
// so "best selling" can never be shadowed by a shorter generic phrase;
// between equally long phrases the earlier entry wins. The order below is
// therefore part of the contract.
var phraseRules = []phraseRule{
	// Revenue / value
	{"total revenue", IntentTotalRevenue},
	{"total sales", IntentTotalRevenue},
	{"gross sales", IntentTotalRevenue},
	{"how much did we make", IntentTotalRevenue},
	{"revenue", IntentTotalRevenue},
	{"turnover", IntentTotalRevenue},
	{"takings", IntentTotalRevenue},
	{"earnings", IntentTotalRevenue},
	{"income", IntentTotalRevenue},
	{"average order value", IntentAverageOrderValue},
	{"avg order value", IntentAverageOrderValue},
	{"average order", IntentAverageOrderValue},
	{"average purchase", IntentAverageOrderValue},
	{"aov", IntentAverageOrderValue},

	// Order-level
	{"maximum order", IntentMaxOrder},
	{"highest order", IntentMaxOrder},
	{"largest order", IntentMaxOrder},
	{"biggest order", IntentMaxOrder},
	{"max order", IntentMaxOrder},
	{"top order", IntentMaxOrder},
	{"minimum order", IntentMinOrder},
	{"smallest order", IntentMinOrder},
	{"cheapest order", IntentMinOrder},
	{"lowest order", IntentMinOrder},
	{"min order", IntentMinOrder},
	{"how many orders", IntentOrderCount},
	{"number of orders", IntentOrderCount},
	{"count of orders", IntentOrderCount},
	{"total orders", IntentOrderCount},
	{"order count", IntentOrderCount},

	// Items
	{"best selling", IntentTopItems},
	{"best-selling", IntentTopItems},
	{"bestselling", IntentTopItems},
	{"bestseller", IntentTopItems},
	{"top selling", IntentTopItems},
	{"top-selling", IntentTopItems},
	{"most sold", IntentTopItems},
	{"top items", IntentTopItems},
	{"top products", IntentTopItems},
	{"most frequent", IntentMostFrequentItems},
	{"most common", IntentMostFrequentItems},
	{"most popular", IntentMostFrequentItems},
	{"frequently sold", IntentMostFrequentItems},
	{"average items per order", IntentAvgItemsPerOrder},
	{"items per order", IntentAvgItemsPerOrder},
	{"average basket", IntentAvgItemsPerOrder},
	{"basket size", IntentAvgItemsPerOrder},

	// Discounts
	{"maximum discount", IntentMaxDiscount},
	{"highest discount", IntentMaxDiscount},
	{"largest discount", IntentMaxDiscount},
	{"biggest discount", IntentMaxDiscount},
	{"max discount", IntentMaxDiscount},
	{"total discount", IntentDiscountImpact},
	{"discount impact", IntentDiscountImpact},
	{"discount", IntentDiscountImpact},
	{"promo", IntentDiscountImpact},
	{"coupon", IntentDiscountImpact},

	// Refunds
	{"chargeback", IntentRefundSummary},
	{"refund", IntentRefundSummary},
	{"return", IntentRefundSummary},

	// Groupings
	{"by employee", IntentSalesByEmployee},
	{"per employee", IntentSalesByEmployee},
	{"employee", IntentSalesByEmployee},
	{"salesperson", IntentSalesByEmployee},
	{"cashier", IntentSalesByEmployee},
	{"staff", IntentSalesByEmployee},
	{"by category", IntentSalesByCategory},
	{"per category", IntentSalesByCategory},
	{"categories", IntentSalesByCategory},
	{"category", IntentSalesByCategory},
	{"department", IntentSalesByCategory},

	// Time-shaped
	{"busiest hour", IntentHourlySales},
	{"peak hour", IntentHourlySales},
	{"hourly sales", IntentHourlySales},
	{"by hour", IntentHourlySales},
	{"per hour", IntentHourlySales},
	{"hourly", IntentHourlySales},
	{"sales trend", IntentSalesTrend},
	{"over time", IntentSalesTrend},
	{"daily sales", IntentSalesTrend},
	{"by day", IntentSalesTrend},
	{"per day", IntentSalesTrend},
	{"trend", IntentSalesTrend},
}

// orderedRules is phraseRules sorted longest-first, registration order
// preserved between equal lengths.
var orderedRules = func() []phraseRule {
	rules := append([]phraseRule(nil), phraseRules...)
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].phrase) > len(rules[j].phrase)
	})
	return rules
}()

// synonyms maps adjective variants onto the canonical keyword the token
// table is keyed on (e.g. "best" behaves like "top").
var synonyms = map[string]string{
	"best":     "top",
	"greatest": "max",
	"biggest":  "max",
	"largest":  "max",
	"highest":  "max",
	"priciest": "max",
	"smallest": "min",
	"lowest":   "min",
	"cheapest": "min",
	"frequent": "most",
	"common":   "most",
	"popular":  "most",
}

// tokenIntents is the recovery layer: single keywords that only apply when
// no full phrase matched.
var tokenIntents = map[string]Intent{
	"top":        IntentTopItems,
	"sold":       IntentTopItems,
	"selling":    IntentTopItems,
	"sell":       IntentTopItems,
	"max":        IntentMaxOrder,
	"min":        IntentMinOrder,
	"most":       IntentMostFrequentItems,
	"aov":        IntentAverageOrderValue,
	"average":    IntentAverageOrderValue,
	"discount":   IntentDiscountImpact,
	"promo":      IntentDiscountImpact,
	"coupon":     IntentDiscountImpact,
	"refund":     IntentRefundSummary,
	"refunded":   IntentRefundSummary,
	"return":     IntentRefundSummary,
	"chargeback": IntentRefundSummary,
	"employee":   IntentSalesByEmployee,
	"staff":      IntentSalesByEmployee,
	"cashier":    IntentSalesByEmployee,
	"category":   IntentSalesByCategory,
	"department": IntentSalesByCategory,
	"hour":       IntentHourlySales,
	"hourly":     IntentHourlySales,
	"busiest":    IntentHourlySales,
	"peak":       IntentHourlySales,
	"trend":      IntentSalesTrend,
	"daily":      IntentSalesTrend,
	"order":      IntentOrderCount,
	"orders":     IntentOrderCount,
	"revenue":    IntentTotalRevenue,
	"sales":      IntentTotalRevenue,
	"sale":       IntentTotalRevenue,
	"turnover":   IntentTotalRevenue,
	"income":     IntentTotalRevenue,
	"earnings":   IntentTotalRevenue,
	"total":      IntentTotalRevenue,
	"amount":     IntentTotalRevenue,
}

// connectorCues flag a query as potentially two-stage.
var connectorCues = []string{" and ", " with ", " plus ", "name the"}

// Classify maps a query onto ranked intents, highest confidence first.
// Empty result means the query is unrecognized. Classification is a pure
// function of the input string.
func Classify(queryText string) []Intent {
	q := strings.ToLower(queryText)

	type phraseMatch struct {
		pos    int
		end    int
		intent Intent
	}

	// Layer 1: curated phrases, longest first. A phrase overlapping an
	// already matched span is dropped so "max discount" consumes the
	// "discount" inside it.
	var matches []phraseMatch
	for _, rule := range orderedRules {
		pos := strings.Index(q, rule.phrase)
		if pos < 0 {
			continue
		}
		end := pos + len(rule.phrase)
		overlaps := false
		for _, m := range matches {
			if pos < m.end && end > m.pos {
				overlaps = true
				break
			}
		}
		if !overlaps {
			matches = append(matches, phraseMatch{pos: pos, end: end, intent: rule.intent})
		}
	}

	if len(matches) == 0 {
		// Layer 2: token recovery for queries phrased with lone
		// adjectives ("which items did best").
		for _, token := range strings.FieldsFunc(q, func(r rune) bool {
			return (r < 'a' || r > 'z') && (r < '0' || r > '9')
		}) {
			if intent, ok := lookupToken(token); ok {
				return []Intent{intent}
			}
		}
		return nil
	}

	// matches[0] is the strongest match (longest phrase, earliest table
	// entry); that is the answer unless a connector makes this two-stage.
	primary := matches[0].intent

	// Distinct intents in order of appearance in the query.
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })
	seen := make(map[Intent]bool)
	var byAppearance []Intent
	for _, m := range matches {
		if !seen[m.intent] {
			seen[m.intent] = true
			byAppearance = append(byAppearance, m.intent)
		}
	}

	// Multi-intent only counts when a connector joins the phrases;
	// otherwise the strongest match stands alone.
	if len(byAppearance) >= 2 && hasConnector(q) {
		return byAppearance[:2]
	}
	return []Intent{primary}
}

func hasConnector(q string) bool {
	for _, cue := range connectorCues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}

func lookupToken(token string) (Intent, bool) {
	if intent, ok := tokenIntents[token]; ok {
		return intent, true
	}
	norm := normalizeToken(token)
	intent, ok := tokenIntents[norm]
	return intent, ok
}

// normalizeToken is the lightweight stand-in for lemmatization: map known
// synonyms, otherwise strip a common suffix and try the synonym table
// again ("discounts" -> "discount", "biggest" -> "max").
func normalizeToken(token string) string {
	if c, ok := synonyms[token]; ok {
		return c
	}
	for _, suffix := range []string{"ing", "est", "ers", "er", "s", "ed"} {
		if strings.HasSuffix(token, suffix) && len(token)-len(suffix) >= 3 {
			token = strings.TrimSuffix(token, suffix)
			break
		}
	}
	if c, ok := synonyms[token]; ok {
		return c
	}
	return token
}
