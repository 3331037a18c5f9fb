package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Emirken/scout-backend/pkg/models"
	"github.com/Emirken/scout-backend/pkg/normalize"
)

var (
	squadHrefRe = regexp.MustCompile(`/squads/`)
	compHrefRe  = regexp.MustCompile(`/comps/\d+/`)
)

// ExtractLeague resolves the player's league through an ordered chain of
// strategies, stopping at the first hit:
//
//  1. follow the club link and match the team page's competition links
//  2. match the profile page's own competition links (breadcrumbs)
//  3. scan meta description/keywords content
//  4. scan the page title
//  5. full-page text scan against the league catalog
//  6. guess from a known team-name keyword
//  7. the "Unknown League" placeholder
//
// teamName feeds strategy 6 and may be empty.
func (e *Extractor) ExtractLeague(ctx context.Context, doc *goquery.Document, teamName string) string {
	if league := e.leagueFromTeamPage(ctx, doc); league != "" {
		e.log.Debugw("league resolved from team page", "league", league)
		return league
	}
	if league := e.leagueFromCompetitionLinks(doc); league != "" {
		e.log.Debugw("league resolved from competition links", "league", league)
		return league
	}
	if league := e.leagueFromMetaTags(doc); league != "" {
		e.log.Debugw("league resolved from meta tags", "league", league)
		return league
	}
	if league := e.leagueFromTitle(doc); league != "" {
		e.log.Debugw("league resolved from page title", "league", league)
		return league
	}
	if league := e.leagueFromPageText(doc); league != "" {
		e.log.Debugw("league resolved from page text scan", "league", league)
		return league
	}
	if teamName != "" {
		if league := e.GuessLeagueFromTeam(teamName); league != models.UnknownLeague {
			e.log.Debugw("league guessed from team name", "team", teamName, "league", league)
			return league
		}
	}
	return models.UnknownLeague
}

// leagueFromTeamPage follows the first club link in the bio block and
// matches the competition links found on that team page against the
// catalog. A fetch failure just means the strategy passes.
func (e *Extractor) leagueFromTeamPage(ctx context.Context, doc *goquery.Document) string {
	if e.fetcher == nil {
		return ""
	}

	var league string
	doc.Find("#meta a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if !ok || !squadHrefRe.MatchString(href) {
			return true
		}

		teamURL := normalize.BuildFullURL(e.baseURL, href)
		teamDoc, err := e.fetcher.Fetch(ctx, teamURL)
		if err != nil {
			e.log.Debugw("team page fetch failed during league resolution", "url", teamURL, "error", err)
			return true
		}

		teamDoc.Find("a").EachWithBreak(func(_ int, comp *goquery.Selection) bool {
			compHref, ok := comp.Attr("href")
			if !ok || !compHrefRe.MatchString(compHref) {
				return true
			}
			league = e.matchKnownLeague(comp.Text())
			return league == ""
		})
		return league == ""
	})
	return league
}

// leagueFromCompetitionLinks checks every competition link on the profile
// page itself: first against the catalog, then against the alias table.
func (e *Extractor) leagueFromCompetitionLinks(doc *goquery.Document) string {
	var league string
	doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if !ok || !compHrefRe.MatchString(href) {
			return true
		}
		league = e.MatchLeagueName(link.Text())
		return league == ""
	})
	return league
}

func (e *Extractor) leagueFromMetaTags(doc *goquery.Document) string {
	var league string
	doc.Find("meta").EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		content, ok := meta.Attr("content")
		if !ok || content == "" {
			return true
		}
		league = e.MatchLeagueName(content)
		return league == ""
	})
	return league
}

func (e *Extractor) leagueFromTitle(doc *goquery.Document) string {
	return e.MatchLeagueName(doc.Find("title").Text())
}

func (e *Extractor) leagueFromPageText(doc *goquery.Document) string {
	text := strings.ToLower(doc.Text())
	for _, name := range e.leagueNames {
		if strings.Contains(text, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}

// matchKnownLeague matches free text against catalogued league names only,
// accepting a substring match in either direction.
func (e *Extractor) matchKnownLeague(text string) string {
	text = strings.ToLower(normalize.CleanText(text))
	if text == "" {
		return ""
	}
	for _, name := range e.leagueNames {
		lower := strings.ToLower(name)
		if strings.Contains(text, lower) || strings.Contains(lower, text) {
			return name
		}
	}
	return ""
}

// MatchLeagueName matches free text against the catalog first, then the
// curated keyword alias table (abbreviations, alternate spellings,
// localized names).
func (e *Extractor) MatchLeagueName(text string) string {
	lower := strings.ToLower(text)
	if lower == "" {
		return ""
	}

	for _, name := range e.leagueNames {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}
	for _, alias := range e.leagueAliases {
		if strings.Contains(lower, alias.Keyword) {
			return alias.League
		}
	}
	return ""
}

// GuessLeagueFromTeam maps a team name to a league through the curated
// team-keyword table. Covers a handful of well-known clubs per major
// league; everything else is Unknown League.
func (e *Extractor) GuessLeagueFromTeam(teamName string) string {
	lower := strings.ToLower(teamName)
	for _, kw := range e.teamKeywords {
		if strings.Contains(lower, kw.Keyword) {
			return kw.League
		}
	}
	return models.UnknownLeague
}

// CountryForLeague looks up the league's country in the static table;
// unknown leagues map to an empty string.
func (e *Extractor) CountryForLeague(league string) string {
	return e.leagueCountries[league]
}
