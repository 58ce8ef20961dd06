package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// HintKind classifies the temporal content of a query.
type HintKind int

const (
	// NoHint means the query contains no date-shaped token at all.
	NoHint HintKind = iota
	// ParsedRange means a supported date phrase resolved to [Start, End].
	ParsedRange
	// UnparseableHint means something date-shaped was found but is not a
	// supported pattern. The caller must ask the user to clarify instead
	// of silently defaulting.
	UnparseableHint
)

// DateHint is the result of resolving a query's date phrase.
// Start and End are inclusive; Start <= End always holds for ParsedRange.
type DateHint struct {
	Kind  HintKind
	Start time.Time
	End   time.Time
	Raw   string // the offending phrase when Kind == UnparseableHint
}

const monthAlt = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20,
}

var (
	// Relative spans: "past 3 days", "last two weeks", "in the past 10 days"
	reRelSpan = regexp.MustCompile(`(?:past|last|previous|in the past|in past)\s+([a-z]+|\d+)\s+(day|week|month)s?\b`)
	// "3 days ago" style spans
	reAgoSpan   = regexp.MustCompile(`(\d+|[a-z]+)\s+(day|week|month)s?\s+ago\b`)
	reLastWeek  = regexp.MustCompile(`\b(?:last|past|previous)\s+week\b`)
	reLastMonth = regexp.MustCompile(`\b(?:last|past|previous)\s+month\b`)
	reThis      = regexp.MustCompile(`\bthis\s+(week|month|year)\b`)
	reISO       = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reNumeric   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
	reDayMonth  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlt + `)\b(?:\s+(\d{4}))?`)
	reMonthDay  = regexp.MustCompile(`\b(` + monthAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4}))?`)
)

// dateHintPatterns is the temporal-token scan: anything date-shaped that the
// supported patterns above did not catch. Matching here turns "no date" into
// "date we could not parse", which is the difference between defaulting and
// asking the user.
var dateHintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(` + monthAlt + `)\b`),
	regexp.MustCompile(`\b(mon|tues|wednes|thurs|fri|satur|sun)day\b`),
	regexp.MustCompile(`\b(today|yesterday|tomorrow)\b`),
	regexp.MustCompile(`\b(last|past|previous)\s+(day|week|month|year|\d+\s*(days?|weeks?|months?|years?))\b`),
	regexp.MustCompile(`\bnext\s+(day|week|month|year)\b`),
	regexp.MustCompile(`\bthis\s+(week|month|year|quarter)\b`),
	regexp.MustCompile(`\bquarter\s*\d\b`),
	regexp.MustCompile(`\b\d+\s*(days?|weeks?|months?|years?)\s+ago\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}([/-]\d{2,4})?\b`),
	regexp.MustCompile(`\b\d{1,2}(st|nd|rd|th)?\s+(of\s+)?(` + monthAlt + `)\b`),
}

// Resolve turns a raw query into a DateHint relative to now.
//
// Supported phrases, checked in this order (the first recognized phrase
// wins, later ones are ignored):
//
//	yesterday, today
//	past/last N days|weeks|months  (digits or number words)
//	last/past week, last/past month
//	this week|month|year
//	2025-01-01 (ISO)
//	6 nov, 7th nov, nov 6, nov 6 2024
//	6/11, 6-11-24 (day-first; swapped when the day slot can't be a day)
//
// Anything else that still looks temporal comes back as UnparseableHint.
func Resolve(query string, now time.Time) DateHint {
	q := strings.ToLower(query)

	// 1. Direct keywords. Yesterday is checked first so "since yesterday"
	// style phrasing never falls through to the hint scan.
	if strings.Contains(q, "yesterday") {
		start := dayStart(now).AddDate(0, 0, -1)
		return rangeHint(start, dayEnd(start))
	}
	if strings.Contains(q, "today") {
		return rangeHint(dayStart(now), now)
	}

	// 2. Relative spans with an explicit count
	for _, re := range []*regexp.Regexp{reRelSpan, reAgoSpan} {
		if m := re.FindStringSubmatch(q); m != nil {
			n, ok := parseCount(m[1])
			if !ok {
				return unparseable(m[0])
			}
			days := n * unitDays(m[2])
			return rangeHint(now.AddDate(0, 0, -days), now)
		}
	}

	// 3. Shorthand spans without a count
	if reLastWeek.MatchString(q) {
		return rangeHint(now.AddDate(0, 0, -7), now)
	}
	if reLastMonth.MatchString(q) {
		return rangeHint(now.AddDate(0, 0, -30), now)
	}
	if m := reThis.FindStringSubmatch(q); m != nil {
		return rangeHint(periodStart(m[1], now), now)
	}

	// 4. Absolute dates
	if m := reISO.FindStringSubmatch(q); m != nil {
		t, err := time.ParseInLocation("2006-01-02", m[0], now.Location())
		if err != nil {
			return unparseable(m[0])
		}
		return dayHint(t)
	}
	if m := reDayMonth.FindStringSubmatch(q); m != nil {
		return monthDayHint(m[2], m[1], m[3], m[0], now)
	}
	if m := reMonthDay.FindStringSubmatch(q); m != nil {
		return monthDayHint(m[1], m[2], m[3], m[0], now)
	}
	if m := reNumeric.FindStringSubmatch(q); m != nil {
		return numericHint(m, now)
	}

	// 5. Nothing supported matched. Decide between "no date at all" and
	// "date-shaped but unsupported".
	for _, re := range dateHintPatterns {
		if loc := re.FindString(q); loc != "" {
			return unparseable(loc)
		}
	}
	return DateHint{Kind: NoHint}
}

func rangeHint(start, end time.Time) DateHint {
	return DateHint{Kind: ParsedRange, Start: start, End: end}
}

func unparseable(raw string) DateHint {
	return DateHint{Kind: UnparseableHint, Raw: strings.TrimSpace(raw)}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Nanosecond)
}

// dayHint covers one full calendar day.
func dayHint(t time.Time) DateHint {
	return rangeHint(dayStart(t), dayEnd(t))
}

func parseCount(text string) (int, bool) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	n, ok := numberWords[text]
	return n, ok
}

func unitDays(unit string) int {
	switch unit {
	case "week":
		return 7
	case "month":
		return 30 // approximation, same as the span idioms it serves
	default:
		return 1
	}
}

func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "week":
		// Weeks start on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		return dayStart(now).AddDate(0, 0, -offset)
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default: // year
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	}
}

// monthDayHint resolves "6 nov" / "nov 6" style dates. Without an explicit
// year the current year is assumed, rolled back one year when that lands in
// the future.
func monthDayHint(monthText, dayText, yearText, raw string, now time.Time) DateHint {
	month, ok := monthNumbers[monthText[:3]]
	if !ok {
		return unparseable(raw)
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return unparseable(raw)
	}

	year := now.Year()
	explicitYear := yearText != ""
	if explicitYear {
		year, _ = strconv.Atoi(yearText)
	}

	t, ok := buildDate(year, month, day, now.Location())
	if !ok {
		return unparseable(raw)
	}
	if !explicitYear && t.After(now) {
		t, _ = buildDate(year-1, month, day, now.Location())
	}
	return dayHint(t)
}

// numericHint resolves "6/7" style dates as day-then-month, trying
// month-then-day only when the first slot cannot be a day of that month.
func numericHint(m []string, now time.Time) DateHint {
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])

	year := now.Year()
	explicitYear := m[3] != ""
	if explicitYear {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}

	day, month := a, b
	if month > 12 {
		day, month = b, a
	}
	if month < 1 || month > 12 {
		return unparseable(m[0])
	}

	t, ok := buildDate(year, time.Month(month), day, now.Location())
	if !ok {
		// The day slot overflowed the month; try the swapped reading.
		t, ok = buildDate(year, time.Month(day), month, now.Location())
		if !ok || day > 12 {
			return unparseable(m[0])
		}
	}
	if !explicitYear && t.After(now) {
		t, _ = buildDate(t.Year()-1, t.Month(), t.Day(), now.Location())
	}
	return dayHint(t)
}

// buildDate constructs a date and rejects values time.Date would silently
// normalize (e.g. Feb 30).
func buildDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
