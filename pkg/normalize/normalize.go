// Package normalize provides pure functions that turn raw fragments of
// scraped text into typed values. No I/O, no shared state; every function
// returns its type's neutral value instead of failing.
package normalize

import (
	"html"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	numericRe    = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	integerRe    = regexp.MustCompile(`\d+`)

	ageParensRe = regexp.MustCompile(`(?i)\(\s*age[:\s]*(\d{1,2})\s*\)`)
	ageLabelRe  = regexp.MustCompile(`(?i)\bage\s*:?\s*(\d{1,2})\b`)
	ageDaysRe   = regexp.MustCompile(`^(\d{1,2})-\d{1,3}$`)
	bareAgeRe   = regexp.MustCompile(`\b(\d{1,2})\b`)
	birthYearRe = regexp.MustCompile(`\b(19[7-9]\d|200\d|2010)\b`)

	heightCmRe   = regexp.MustCompile(`(\d{3})\s*cm`)
	feetInchesRe = regexp.MustCompile(`\b(\d)-(\d{1,2})\b`)
	weightKgRe   = regexp.MustCompile(`(\d{2,3})\s*kg`)
	weightLbRe   = regexp.MustCompile(`(\d{2,3})\s*lbs?`)

	playerIDRe = regexp.MustCompile(`/players/([a-f0-9]{8})(?:/|$)`)
	seasonRe   = regexp.MustCompile(`/(\d{4}-\d{4})/`)
)

// Plausibility windows for scraped physical attributes and ages. Values
// outside these ranges are treated as misparses, not facts.
const (
	minAge      = 15
	maxAge      = 50
	minHeightCm = 150
	maxHeightCm = 220
	minWeightKg = 50
	maxWeightKg = 150
)

// placeholder tokens that stat cells use for "no data"
var placeholderTokens = map[string]bool{
	"":    true,
	"-":   true,
	"—":   true,
	"n/a": true,
	"na":  true,
	"nan": true,
}

// CleanText decodes HTML entities, collapses runs of whitespace (including
// non-breaking spaces) to a single space and trims. Empty input stays empty.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// IsPlaceholder reports whether a raw cell text is one of the tokens pages
// use for "no data" ("", "-", em-dash, "N/A", "nan").
func IsPlaceholder(s string) bool {
	return placeholderTokens[strings.ToLower(strings.TrimSpace(s))]
}

// ParseAge extracts a player age from loose text. Accepted forms, in
// priority order: "(age 32)", "Age: 32", the age-days form "29-123", a bare
// integer in the plausible range, and finally a 4-digit birth year
// (1970-2010) converted via current-year subtraction. Returns 0 when
// nothing plausible is found.
func ParseAge(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if m := ageParensRe.FindStringSubmatch(s); m != nil {
		return clampAge(atoi(m[1]))
	}
	if m := ageLabelRe.FindStringSubmatch(s); m != nil {
		return clampAge(atoi(m[1]))
	}
	if m := ageDaysRe.FindStringSubmatch(s); m != nil {
		return clampAge(atoi(m[1]))
	}
	if m := bareAgeRe.FindStringSubmatch(s); m != nil {
		if age := atoi(m[1]); age >= minAge && age <= maxAge {
			return age
		}
	}
	if m := birthYearRe.FindStringSubmatch(s); m != nil {
		return clampAge(time.Now().Year() - atoi(m[1]))
	}
	return 0
}

func clampAge(age int) int {
	if age < minAge || age > maxAge {
		return 0
	}
	return age
}

// ParseHeight normalizes a height fragment to centimeters with a "cm"
// suffix. Accepts "180cm" directly or feet-inches ("5-11"). Implausible
// results (outside 150-220cm) yield an empty string.
func ParseHeight(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if m := heightCmRe.FindStringSubmatch(s); m != nil {
		if cm := atoi(m[1]); cm >= minHeightCm && cm <= maxHeightCm {
			return strconv.Itoa(cm) + "cm"
		}
		return ""
	}
	if m := feetInchesRe.FindStringSubmatch(s); m != nil {
		feet, inches := atoi(m[1]), atoi(m[2])
		cm := int(math.Round(float64(feet*12+inches) * 2.54))
		if cm >= minHeightCm && cm <= maxHeightCm {
			return strconv.Itoa(cm) + "cm"
		}
	}
	return ""
}

// ParseWeight normalizes a weight fragment to kilograms with a "kg" suffix.
// Accepts "75kg" directly or pounds ("165lb", converted at 0.453592).
// Implausible results (outside 50-150kg) yield an empty string.
func ParseWeight(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if m := weightKgRe.FindStringSubmatch(s); m != nil {
		if kg := atoi(m[1]); kg >= minWeightKg && kg <= maxWeightKg {
			return strconv.Itoa(kg) + "kg"
		}
		return ""
	}
	if m := weightLbRe.FindStringSubmatch(s); m != nil {
		kg := int(math.Round(float64(atoi(m[1])) * 0.453592))
		if kg >= minWeightKg && kg <= maxWeightKg {
			return strconv.Itoa(kg) + "kg"
		}
	}
	return ""
}

// ExtractNumericStat turns a stat-cell text into a number. Thousands
// separators and percent signs are stripped, a leading minus sign is
// preserved, and the first integer-or-decimal token wins. Placeholder
// tokens ("", "-", em-dash, "N/A", "nan") map to 0 so a numeric slot never
// holds null or NaN.
func ExtractNumericStat(s string) float64 {
	s = strings.TrimSpace(s)
	if IsPlaceholder(s) {
		return 0
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")

	m := numericRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// ExtractPercentile turns texts like "85th" or "99%" into an integer
// percentile. Only values in [0,100] are valid; everything else is 0.
func ExtractPercentile(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0
	}

	s = strings.TrimSuffix(strings.ToLower(s), "th")
	s = strings.ReplaceAll(s, "%", "")

	m := integerRe.FindString(s)
	if m == "" {
		return 0
	}
	v := atoi(m)
	if v < 0 || v > 100 {
		return 0
	}
	return v
}

// ExtractIDFromURL pulls the fixed-format player identifier (8 lowercase
// hex characters) out of a canonical profile URL path.
func ExtractIDFromURL(rawURL string) (string, bool) {
	m := playerIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsValidPlayerURL reports whether a URL points at a player profile page.
func IsValidPlayerURL(rawURL string) bool {
	_, ok := ExtractIDFromURL(rawURL)
	return ok
}

// SeasonFromURL extracts a "2023-2024" style season segment from a URL,
// defaulting to the current season when none is present.
func SeasonFromURL(rawURL string) string {
	if m := seasonRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	year := time.Now().Year()
	return strconv.Itoa(year) + "-" + strconv.Itoa(year+1)
}

// BuildFullURL resolves a possibly-relative href against a base URL.
func BuildFullURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(strings.ReplaceAll(ref, " ", "%20"))
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
