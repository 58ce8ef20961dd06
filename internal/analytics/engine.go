package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/models"
	"github.com/HavishJadav/mkonnekt-assignment/internal/query"
)

// Defaults for ranked results when the query did not ask for a count.
const (
	defaultOrderLimit = 1
	defaultItemLimit  = 5
)

// ItemStat is one row of an item ranking.
type ItemStat struct {
	Name       string  `json:"name"`
	RevenueUSD float64 `json:"revenue_usd"`
	Units      int     `json:"units"`
}

// Bucket is one row of a grouped metric (employee, category, hour, day).
type Bucket struct {
	Key        string  `json:"key"`
	RevenueUSD float64 `json:"revenue_usd"`
	Orders     int     `json:"orders"`
}

// Result is the computed answer for one intent. Only the fields that make
// sense for that intent are set; NoData marks an empty order window so a
// zero is never mistaken for a real answer.
type Result struct {
	Intent query.Intent `json:"intent"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	NoData bool         `json:"no_data,omitempty"`

	Value          float64        `json:"value,omitempty"` // USD for money metrics, plain number for averages
	Count          int            `json:"count,omitempty"`
	Order          *models.Order  `json:"order,omitempty"`  // selected order for max/min/max_discount
	Orders         []models.Order `json:"orders,omitempty"` // top/bottom N orders when more were asked for
	ItemsByRevenue []ItemStat     `json:"items_by_revenue,omitempty"`
	ItemsByUnits   []ItemStat     `json:"items_by_units,omitempty"`
	Buckets        []Bucket       `json:"buckets,omitempty"`
	Peak           *Bucket        `json:"peak,omitempty"`
}

// Compute runs one intent over the fetched order window. n is the requested
// result count ("top 3"); n <= 0 uses the per-intent default. The result is
// a pure function of (intent, orders, n).
func Compute(intent query.Intent, orders []models.Order, n int) Result {
	result := Result{Intent: intent}
	if len(orders) == 0 {
		result.NoData = true
		return result
	}

	switch intent {
	case query.IntentTotalRevenue:
		result.Value = usd(sumTotals(validOrders(orders)))
	case query.IntentAverageOrderValue:
		valid := validOrders(orders)
		if len(valid) == 0 {
			result.NoData = true
			return result
		}
		result.Value = usd(sumTotals(valid) / float64(len(valid)))
		result.Count = len(valid)
	case query.IntentMaxOrder:
		computeOrderExtreme(&result, orders, limit(n, defaultOrderLimit), true)
	case query.IntentMinOrder:
		computeOrderExtreme(&result, orders, limit(n, defaultOrderLimit), false)
	case query.IntentOrderCount:
		result.Count = len(validOrders(orders))
	case query.IntentTopItems, query.IntentMostFrequentItems:
		computeItemRankings(&result, orders, limit(n, defaultItemLimit))
	case query.IntentAvgItemsPerOrder:
		units := 0
		for _, o := range orders {
			for _, li := range o.LineItems {
				units += li.UnitCount()
			}
		}
		result.Value = round2(float64(units) / float64(len(orders)))
		result.Count = units
	case query.IntentDiscountImpact:
		total := 0.0
		for _, o := range orders {
			for _, d := range o.Discounts {
				total += math.Abs(d.Amount)
			}
		}
		result.Value = usd(total)
	case query.IntentMaxDiscount:
		computeMaxDiscount(&result, orders)
	case query.IntentRefundSummary:
		total := 0.0
		for _, o := range orders {
			if o.Refunded {
				result.Count++
				total += o.Total
			}
		}
		result.Value = usd(total)
	case query.IntentSalesByEmployee:
		computeSalesByEmployee(&result, orders)
	case query.IntentSalesByCategory:
		computeSalesByCategory(&result, orders)
	case query.IntentHourlySales:
		computeHourlySales(&result, orders)
	case query.IntentSalesTrend:
		computeSalesTrend(&result, orders)
	}
	return result
}

// FilterByRange keeps the orders whose createdTime falls inside the
// inclusive [start, end] window. Orders with malformed timestamps are
// silently skipped, same as the source system did.
func FilterByRange(orders []models.Order, start, end time.Time) []models.Order {
	var filtered []models.Order
	for _, o := range orders {
		created, ok := o.CreatedAt()
		if !ok {
			continue
		}
		if !created.Before(start) && !created.After(end) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// ------------------------------------------------------------------
// Order-level metrics
// ------------------------------------------------------------------

// computeOrderExtreme fills the top/bottom-N orders by total. Ties go to
// the earliest createdTime, then to order ID so the result is stable.
func computeOrderExtreme(result *Result, orders []models.Order, n int, descending bool) {
	valid := validOrders(orders)
	if len(valid) == 0 {
		result.NoData = true
		return
	}

	sorted := append([]models.Order(nil), valid...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Total != sorted[j].Total {
			if descending {
				return sorted[i].Total > sorted[j].Total
			}
			return sorted[i].Total < sorted[j].Total
		}
		ti, iOK := sorted[i].CreatedAt()
		tj, jOK := sorted[j].CreatedAt()
		if iOK && jOK && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return sorted[i].OrderID < sorted[j].OrderID
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	result.Orders = sorted[:n]
	picked := sorted[0]
	result.Order = &picked
	result.Value = usd(picked.Total)
}

// ------------------------------------------------------------------
// Item metrics
// ------------------------------------------------------------------

// computeItemRankings aggregates line items by product name and produces
// both the revenue ranking and the units ranking. Revenue per line is
// price x quantity; quantity defaults to 1 when the API omits it. Ties
// break alphabetically.
func computeItemRankings(result *Result, orders []models.Order, n int) {
	type itemAgg struct {
		revenue float64
		units   int
	}
	agg := make(map[string]*itemAgg)
	for _, o := range orders {
		for _, li := range o.LineItems {
			if li.Name == "" {
				continue
			}
			stat, ok := agg[li.Name]
			if !ok {
				stat = &itemAgg{}
				agg[li.Name] = stat
			}
			units := li.UnitCount()
			stat.units += units
			stat.revenue += li.Price * float64(units)
		}
	}
	if len(agg) == 0 {
		result.NoData = true
		return
	}

	stats := make([]ItemStat, 0, len(agg))
	for name, a := range agg {
		stats = append(stats, ItemStat{Name: name, RevenueUSD: usd(a.revenue), Units: a.units})
	}

	byRevenue := append([]ItemStat(nil), stats...)
	sort.Slice(byRevenue, func(i, j int) bool {
		if byRevenue[i].RevenueUSD != byRevenue[j].RevenueUSD {
			return byRevenue[i].RevenueUSD > byRevenue[j].RevenueUSD
		}
		return byRevenue[i].Name < byRevenue[j].Name
	})

	byUnits := append([]ItemStat(nil), stats...)
	sort.Slice(byUnits, func(i, j int) bool {
		if byUnits[i].Units != byUnits[j].Units {
			return byUnits[i].Units > byUnits[j].Units
		}
		return byUnits[i].Name < byUnits[j].Name
	})

	if n > len(stats) {
		n = len(stats)
	}
	result.ItemsByRevenue = byRevenue[:n]
	result.ItemsByUnits = byUnits[:n]
}

// ------------------------------------------------------------------
// Discount metrics
// ------------------------------------------------------------------

func computeMaxDiscount(result *Result, orders []models.Order) {
	best := 0.0
	for i, o := range orders {
		for _, d := range o.Discounts {
			amount := math.Abs(d.Amount)
			if amount > best {
				best = amount
				picked := orders[i]
				result.Order = &picked
			}
		}
	}
	result.Value = usd(best)
	// result.Order stays nil when no order carried a discount; the
	// rendering layer reports "no discounts found" off that.
}

// ------------------------------------------------------------------
// Grouped metrics
// ------------------------------------------------------------------

func computeSalesByEmployee(result *Result, orders []models.Order) {
	result.Buckets = groupOrders(orders, func(o models.Order) (string, bool) {
		if o.EmployeeID == "" {
			return "unknown", true
		}
		return o.EmployeeID, true
	})
	sortBucketsByRevenue(result.Buckets)
}

func computeSalesByCategory(result *Result, orders []models.Order) {
	agg := make(map[string]*Bucket)
	for _, o := range orders {
		counted := make(map[string]bool)
		for _, li := range o.LineItems {
			key := li.CategoryName()
			b, ok := agg[key]
			if !ok {
				b = &Bucket{Key: key}
				agg[key] = b
			}
			b.RevenueUSD += li.Price * float64(li.UnitCount())
			if !counted[key] {
				counted[key] = true
				b.Orders++
			}
		}
	}
	for _, b := range agg {
		b.RevenueUSD = usd(b.RevenueUSD)
		result.Buckets = append(result.Buckets, *b)
	}
	if len(result.Buckets) == 0 {
		result.NoData = true
		return
	}
	sortBucketsByRevenue(result.Buckets)
}

// computeHourlySales buckets orders by hour of day, ascending for display,
// and carries the peak hour explicitly.
func computeHourlySales(result *Result, orders []models.Order) {
	result.Buckets = groupOrders(orders, func(o models.Order) (string, bool) {
		created, ok := o.CreatedAt()
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%02d:00", created.Hour()), true
	})
	if len(result.Buckets) == 0 {
		result.NoData = true
		return
	}
	sort.Slice(result.Buckets, func(i, j int) bool {
		return result.Buckets[i].Key < result.Buckets[j].Key
	})
	peak := result.Buckets[0]
	for _, b := range result.Buckets[1:] {
		if b.RevenueUSD > peak.RevenueUSD {
			peak = b
		}
	}
	result.Peak = &peak
}

// computeSalesTrend buckets revenue chronologically. Granularity follows
// the spread of the data: daily up to 45 days, weekly up to 270, monthly
// beyond that.
func computeSalesTrend(result *Result, orders []models.Order) {
	var earliest, latest time.Time
	for _, o := range orders {
		created, ok := o.CreatedAt()
		if !ok {
			continue
		}
		if earliest.IsZero() || created.Before(earliest) {
			earliest = created
		}
		if latest.IsZero() || created.After(latest) {
			latest = created
		}
	}
	if earliest.IsZero() {
		result.NoData = true
		return
	}

	spanDays := int(latest.Sub(earliest).Hours()/24) + 1
	keyFor := func(t time.Time) string {
		switch {
		case spanDays <= 45:
			return t.Format("2006-01-02")
		case spanDays <= 270:
			// Key on the Monday starting each week.
			offset := (int(t.Weekday()) + 6) % 7
			return t.AddDate(0, 0, -offset).Format("2006-01-02")
		default:
			return t.Format("2006-01")
		}
	}

	result.Buckets = groupOrders(orders, func(o models.Order) (string, bool) {
		created, ok := o.CreatedAt()
		if !ok {
			return "", false
		}
		return keyFor(created), true
	})
	sort.Slice(result.Buckets, func(i, j int) bool {
		return result.Buckets[i].Key < result.Buckets[j].Key
	})
}

// ------------------------------------------------------------------
// Helpers
// ------------------------------------------------------------------

// validOrders drops orders with a missing or non-positive total, the same
// guard the source system applied before every money metric.
func validOrders(orders []models.Order) []models.Order {
	var valid []models.Order
	for _, o := range orders {
		if o.Total > 0 {
			valid = append(valid, o)
		}
	}
	return valid
}

func sumTotals(orders []models.Order) float64 {
	total := 0.0
	for _, o := range orders {
		total += o.Total
	}
	return total
}

func groupOrders(orders []models.Order, keyFn func(models.Order) (string, bool)) []Bucket {
	agg := make(map[string]*Bucket)
	for _, o := range orders {
		key, ok := keyFn(o)
		if !ok {
			continue
		}
		b, found := agg[key]
		if !found {
			b = &Bucket{Key: key}
			agg[key] = b
		}
		b.RevenueUSD += o.Total
		b.Orders++
	}
	buckets := make([]Bucket, 0, len(agg))
	for _, b := range agg {
		b.RevenueUSD = usd(b.RevenueUSD)
		buckets = append(buckets, *b)
	}
	return buckets
}

func sortBucketsByRevenue(buckets []Bucket) {
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].RevenueUSD != buckets[j].RevenueUSD {
			return buckets[i].RevenueUSD > buckets[j].RevenueUSD
		}
		return buckets[i].Key < buckets[j].Key
	})
}

func limit(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

// usd converts cents to dollars, rounded to 2 decimals.
func usd(cents float64) float64 {
	return round2(cents / 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
