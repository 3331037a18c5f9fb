package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Emirken/scout-backend/pkg/normalize"
)

var (
	ageParensRe    = regexp.MustCompile(`(?i)\(\s*age[:\s]*(\d{1,2})\s*\)`)
	ageLabelRe     = regexp.MustCompile(`(?i)\bage\s*:?\s*(\d{1,2})\b`)
	bareNumberRe   = regexp.MustCompile(`\b(\d{1,2})\b`)
	birthYearRe    = regexp.MustCompile(`\b(19[7-9]\d|200\d|2010)\b`)
	teamLabelRe    = regexp.MustCompile(`(?i)(?:current team|club|team)\s*:?\s*`)
	positionRe     = regexp.MustCompile(`(?i)position\s*:?\s*`)
	footedClauseRe = regexp.MustCompile(`(?i)[\s▪·•,]*\bfooted\b.*$`)
	footPatterns   = []*regexp.Regexp{
		regexp.MustCompile(`footed\s*:?\s*([a-z]+)`),
		regexp.MustCompile(`foot\s*:?\s*([a-z]+)`),
		regexp.MustCompile(`([a-z]+)[\s-]*footed`),
	}
	heightFragmentRe = regexp.MustCompile(`\d{3}\s*cm|\b\d-\d{1,2}\b`)
	weightFragmentRe = regexp.MustCompile(`\d{2,3}\s*(?:kg|lbs?)`)
)

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// bioText returns the raw text of the page's bio block (the #meta region).
func (e *Extractor) bioText(doc *goquery.Document) string {
	return doc.Find("#meta").Text()
}

// ExtractName reads the player's full name from the page heading.
func (e *Extractor) ExtractName(doc *goquery.Document) string {
	return normalize.CleanText(doc.Find("h1").First().Text())
}

// ExtractAge searches the bio block for age-bearing phrases: the
// age-in-parentheses form, an explicit "age:" label, then a bare number
// in plausible range — but only inside paragraphs that mention age, so a
// day-of-month or shirt number elsewhere in the bio is never read as an
// age. Birth-date inference is a separate, later pass
// (ExtractAgeFromBirthDate) applied only when everything else left 0.
func (e *Extractor) ExtractAge(doc *goquery.Document) int {
	bio := strings.ToLower(e.bioText(doc))
	if bio == "" {
		return 0
	}

	if m := ageParensRe.FindStringSubmatch(bio); m != nil {
		if age := normalize.ParseAge(m[1]); age != 0 {
			return age
		}
	}
	if m := ageLabelRe.FindStringSubmatch(bio); m != nil {
		if age := normalize.ParseAge(m[1]); age != 0 {
			return age
		}
	}

	var age int
	doc.Find("#meta p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.ToLower(p.Text())
		if !strings.Contains(text, "age") {
			return true
		}
		for _, m := range bareNumberRe.FindAllStringSubmatch(text, -1) {
			if a := normalize.ParseAge(m[1]); a != 0 {
				age = a
				return false
			}
		}
		return true
	})
	return age
}

// ExtractAgeFromBirthDate computes the age from any recognizable birth
// year in the bio block, constrained to [15,45]. Used as the final
// backfill when no explicit age phrase was found.
func (e *Extractor) ExtractAgeFromBirthDate(doc *goquery.Document) int {
	bio := e.bioText(doc)
	m := birthYearRe.FindStringSubmatch(bio)
	if m == nil {
		return 0
	}
	year := atoi(m[1])
	age := e.now().Year() - year
	if age < 15 || age > 45 {
		return 0
	}
	return age
}

// ExtractTeam finds the player's current club in the bio paragraphs. The
// anchor text of a club link is preferred; failing that the text after
// the label is used.
func (e *Extractor) ExtractTeam(doc *goquery.Document) string {
	var team string
	doc.Find("#meta p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.ToLower(p.Text())
		if !strings.Contains(text, "club") && !strings.Contains(text, "team") {
			return true
		}
		if link := p.Find("a").First(); link.Length() > 0 {
			team = normalize.CleanText(link.Text())
		} else {
			team = normalize.CleanText(teamLabelRe.ReplaceAllString(p.Text(), ""))
		}
		return team == ""
	})
	return team
}

// ExtractPosition reads the raw position string from the bio block,
// stripping the trailing "footed <side>" clause, which is a separate fact.
func (e *Extractor) ExtractPosition(doc *goquery.Document) string {
	var position string
	doc.Find("#meta p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := p.Text()
		if !strings.Contains(strings.ToLower(text), "position") {
			return true
		}
		text = positionRe.ReplaceAllString(text, "")
		text = footedClauseRe.ReplaceAllString(text, "")
		position = normalize.CleanText(text)
		return position == ""
	})
	return position
}

// NormalizePosition reduces a raw position string like "fw-mf (am-wm)" to
// one of the four coarse roles. The most specific recognized token wins:
// goalkeeper beats defender beats midfielder beats forward for hybrid
// strings. Unknown input yields an empty string.
func NormalizePosition(detailed string) string {
	s := strings.ToLower(detailed)
	switch {
	case strings.Contains(s, "gk") || strings.Contains(s, "goalkeeper"):
		return "Goalkeeper"
	case strings.Contains(s, "df") || strings.Contains(s, "defender") ||
		strings.Contains(s, "cb") || strings.Contains(s, "fb") ||
		strings.Contains(s, "lb") || strings.Contains(s, "rb"):
		return "Defender"
	case strings.Contains(s, "mf") || strings.Contains(s, "midfielder") ||
		strings.Contains(s, "dm") || strings.Contains(s, "cm") ||
		strings.Contains(s, "am"):
		return "Midfielder"
	case strings.Contains(s, "fw") || strings.Contains(s, "forward") ||
		strings.Contains(s, "st") || strings.Contains(s, "striker") ||
		strings.Contains(s, "wing"):
		return "Forward"
	}
	return ""
}

// ExtractPreferredFoot finds the preferred foot in the bio text. Only
// left/right/both are accepted, title-cased.
func (e *Extractor) ExtractPreferredFoot(doc *goquery.Document) string {
	bio := strings.ToLower(e.bioText(doc))
	for _, pattern := range footPatterns {
		m := pattern.FindStringSubmatch(bio)
		if m == nil {
			continue
		}
		switch foot := strings.TrimSpace(m[1]); foot {
		case "left":
			return "Left"
		case "right":
			return "Right"
		case "both":
			return "Both"
		}
	}
	return ""
}

// ExtractHeightWeight scans the bio text for height and weight fragments
// in any of the supported unit formats and normalizes them to cm/kg.
// Implausible values come back as empty strings.
func (e *Extractor) ExtractHeightWeight(doc *goquery.Document) (height, weight string) {
	bio := e.bioText(doc)

	if frag := heightFragmentRe.FindString(bio); frag != "" {
		height = normalize.ParseHeight(frag)
	}
	if frag := weightFragmentRe.FindString(bio); frag != "" {
		weight = normalize.ParseWeight(frag)
	}
	return height, weight
}

// photo markers a usable headshot source path must contain
var photoMarkers = []string{"headshot", "photo"}

// alternative selectors tried when the primary media container is absent
var photoSelectors = []string{
	"img.media-object",
	"img[src*='headshots']",
	".player-photo img",
	"#meta img",
}

// ExtractPhoto resolves the player's headshot URL. The primary media-item
// container wins; otherwise alternative selectors are tried in order, and
// only sources with a recognizable photo marker in the path are accepted.
func (e *Extractor) ExtractPhoto(doc *goquery.Document) string {
	if src, ok := doc.Find("div.media-item img").First().Attr("src"); ok && src != "" {
		return normalize.BuildFullURL(e.baseURL, src)
	}

	for _, selector := range photoSelectors {
		src, ok := doc.Find(selector).First().Attr("src")
		if !ok || src == "" {
			continue
		}
		for _, marker := range photoMarkers {
			if strings.Contains(src, marker) {
				return normalize.BuildFullURL(e.baseURL, src)
			}
		}
	}
	return ""
}
