package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Keywords marking a sentence, paragraph or table row as contract-related.
var contractKeywords = []string{"contract", "expires", "until", "deal"}

const monthAlternation = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec`

var (
	contractAnchorRe = regexp.MustCompile(`(?i)contract[^.]{0,20}?(?:until|expires?(?:\s+in)?|runs?\s+until|through)\s*:?\s*([^.\n]{0,60})`)

	fullDateMDYRe = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
	fullDateDMYRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthAlternation + `)\.?,?\s+(\d{4})\b`)
	monthYearRe   = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\.?,?\s+(\d{4})\b`)
	numericDMYRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	numericYMDRe  = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	bareYearRe    = regexp.MustCompile(`\b(\d{4})\b`)

	sentenceSplitRe = regexp.MustCompile(`[.!?]`)
)

var canonicalMonths = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

var monthNumbers = [...]string{"", "January", "February", "March", "April", "May",
	"June", "July", "August", "September", "October", "November", "December"}

// yearContextWindow is the character window checked around a bare 4-digit
// year during the whole-page fallback scan.
const yearContextWindow = 80

// ExtractContractEnd resolves the contract expiry date through layered
// strategies: an anchored phrase in the bio block, contract-flavoured bio
// paragraphs, contract-flavoured table rows, a sentence-level scan of the
// whole page, and finally an estimate from the player's age. The second
// return value reports whether the date was estimated rather than scraped.
//
// All results are canonicalized to "Month Day, Year"; a bare year becomes
// "June 30, <year>" and a month+year gets day 30.
func (e *Extractor) ExtractContractEnd(doc *goquery.Document, age int) (string, bool) {
	strategies := []func(*goquery.Document) string{
		e.contractFromBioPhrase,
		e.contractFromParagraphs,
		e.contractFromTableRows,
		e.contractFromSentences,
	}

	for _, strategy := range strategies {
		if date := strategy(doc); date != "" {
			return date, false
		}
	}

	return e.EstimateContractFromAge(age), true
}

// contractFromBioPhrase matches "contract until/expires ..." phrases in the
// bio block and reads a date (or a validated bare year) from what follows.
func (e *Extractor) contractFromBioPhrase(doc *goquery.Document) string {
	bio := e.bioText(doc)
	m := contractAnchorRe.FindStringSubmatch(bio)
	if m == nil {
		return ""
	}
	if date := e.parseDateFragment(m[1]); date != "" {
		return date
	}
	return e.parseBareYear(m[1])
}

// contractFromParagraphs scans each bio paragraph containing a contract
// keyword for any recognized date format, including numeric D/M/Y and
// Y-M-D forms.
func (e *Extractor) contractFromParagraphs(doc *goquery.Document) string {
	var date string
	doc.Find("#meta p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := p.Text()
		if !containsContractKeyword(text) {
			return true
		}
		if date = e.parseDateFragment(text); date == "" {
			date = e.parseBareYear(text)
		}
		return date == ""
	})
	return date
}

// contractFromTableRows checks any on-page table row mentioning the
// contract for a date or bare year.
func (e *Extractor) contractFromTableRows(doc *goquery.Document) string {
	var date string
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		text := row.Text()
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "contract") && !strings.Contains(lower, "expires") {
			return true
		}
		if date = e.parseDateFragment(text); date == "" {
			date = e.parseBareYear(text)
		}
		return date == ""
	})
	return date
}

// contractFromSentences splits the full page text into sentences, keeps
// only contract-flavoured ones and takes the first validated year. When
// that fails, every 4-digit year on the page is checked against a small
// context window for contract words.
func (e *Extractor) contractFromSentences(doc *goquery.Document) string {
	text := doc.Text()

	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		if !containsContractKeyword(sentence) {
			continue
		}
		if date := e.parseBareYear(sentence); date != "" {
			return date
		}
	}

	// Windowed-context pass over every year occurrence in the page.
	for _, loc := range bareYearRe.FindAllStringIndex(text, -1) {
		year := atoi(text[loc[0]:loc[1]])
		if !e.validContractYear(year) {
			continue
		}
		start := loc[0] - yearContextWindow
		if start < 0 {
			start = 0
		}
		end := loc[1] + yearContextWindow
		if end > len(text) {
			end = len(text)
		}
		if containsContractKeyword(text[start:end]) {
			return fmt.Sprintf("June 30, %d", year)
		}
	}
	return ""
}

// EstimateContractFromAge invents a plausible expiry date from the
// player's age when no textual contract information exists at all:
// under 25 get three more years, 25-29 two, everyone older one.
func (e *Extractor) EstimateContractFromAge(age int) string {
	year := e.now().Year()
	switch {
	case age < 25:
		year += 3
	case age < 30:
		year += 2
	case age < 35:
		year += 1
	default:
		year += 1
	}
	return fmt.Sprintf("June 30, %d", year)
}

// parseDateFragment recognizes full dates (month-name day year, day
// month-name year, D/M/Y, Y-M-D) and month+year forms, canonicalized to
// "Month Day, Year". Years outside the validity window are discarded.
func (e *Extractor) parseDateFragment(s string) string {
	if m := fullDateMDYRe.FindStringSubmatch(s); m != nil {
		month, day, year := canonicalMonth(m[1]), atoi(m[2]), atoi(m[3])
		if e.validContractYear(year) && validDay(day) {
			return fmt.Sprintf("%s %d, %d", month, day, year)
		}
	}
	if m := fullDateDMYRe.FindStringSubmatch(s); m != nil {
		day, month, year := atoi(m[1]), canonicalMonth(m[2]), atoi(m[3])
		if e.validContractYear(year) && validDay(day) {
			return fmt.Sprintf("%s %d, %d", month, day, year)
		}
	}
	if m := numericDMYRe.FindStringSubmatch(s); m != nil {
		day, month, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if e.validContractYear(year) && validDay(day) && month >= 1 && month <= 12 {
			return fmt.Sprintf("%s %d, %d", monthNumbers[month], day, year)
		}
	}
	if m := numericYMDRe.FindStringSubmatch(s); m != nil {
		year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if e.validContractYear(year) && validDay(day) && month >= 1 && month <= 12 {
			return fmt.Sprintf("%s %d, %d", monthNumbers[month], day, year)
		}
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		month, year := canonicalMonth(m[1]), atoi(m[2])
		if e.validContractYear(year) {
			return fmt.Sprintf("%s 30, %d", month, year)
		}
	}
	return ""
}

// parseBareYear extracts the first 4-digit year inside the validity window
// and canonicalizes it to "June 30, <year>".
func (e *Extractor) parseBareYear(s string) string {
	for _, m := range bareYearRe.FindAllStringSubmatch(s, -1) {
		if year := atoi(m[1]); e.validContractYear(year) {
			return fmt.Sprintf("June 30, %d", year)
		}
	}
	return ""
}

func (e *Extractor) validContractYear(year int) bool {
	return year >= e.minContractYear && year <= e.maxContractYear
}

func validDay(day int) bool {
	return day >= 1 && day <= 31
}

func canonicalMonth(s string) string {
	key := strings.ToLower(s)
	if len(key) > 3 {
		key = key[:3]
	}
	return canonicalMonths[key]
}

func containsContractKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range contractKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
