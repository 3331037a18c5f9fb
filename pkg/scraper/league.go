package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Emirken/scout-backend/pkg/extract"
	"github.com/Emirken/scout-backend/pkg/models"
	"github.com/Emirken/scout-backend/pkg/normalize"
)

// listing-table columns carried over as headline numbers
var listingStatColumns = []string{"games", "games_starts", "minutes", "goals", "assists"}

// LeagueScraper turns a league's standard-stats listing page into the set
// of players to visit, each carrying the basic info the listing exposes.
type LeagueScraper struct {
	fetcher     extract.Fetcher
	baseURL     string
	listingURLs map[string]string
	countries   map[string]string
	log         *zap.SugaredLogger
}

// NewLeagueScraper builds a listing scraper over the given league
// directory (canonical league name -> listing URL, league name -> country).
func NewLeagueScraper(fetcher extract.Fetcher, baseURL string, listingURLs, countries map[string]string, log *zap.SugaredLogger) *LeagueScraper {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &LeagueScraper{
		fetcher:     fetcher,
		baseURL:     baseURL,
		listingURLs: listingURLs,
		countries:   countries,
		log:         log,
	}
}

// Leagues returns the canonical names of every league the scraper knows.
func (s *LeagueScraper) Leagues() []string {
	names := make([]string, 0, len(s.listingURLs))
	for name := range s.listingURLs {
		names = append(names, name)
	}
	return names
}

// GetLeaguePlayers scrapes the league's listing page and returns one
// BasicInfo per player row. Rows without a usable player link are skipped;
// duplicate ids (players listed for two clubs after a transfer) keep the
// first row only.
func (s *LeagueScraper) GetLeaguePlayers(ctx context.Context, league string) ([]models.BasicInfo, error) {
	url, ok := s.listingURLs[league]
	if !ok {
		return nil, errors.Newf("unknown league %q", league)
	}

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching listing for %s", league)
	}

	var players []models.BasicInfo
	seen := map[string]bool{}
	doc.Find("table#stats_standard tbody tr").Each(func(_ int, row *goquery.Selection) {
		info, ok := s.parseListingRow(row, league)
		if !ok || seen[info.FbrefID] {
			return
		}
		seen[info.FbrefID] = true
		players = append(players, info)
	})

	s.log.Infow("league listing scraped", "league", league, "players", len(players))
	return players, nil
}

func (s *LeagueScraper) parseListingRow(row *goquery.Selection, league string) (models.BasicInfo, bool) {
	playerCell := row.Find("[data-stat='player']").First()
	link := playerCell.Find("a").First()
	href, ok := link.Attr("href")
	if !ok {
		return models.BasicInfo{}, false
	}
	id, ok := normalize.ExtractIDFromURL(href)
	if !ok {
		return models.BasicInfo{}, false
	}
	name := normalize.CleanText(link.Text())
	if name == "" {
		return models.BasicInfo{}, false
	}

	info := models.BasicInfo{
		Name:       name,
		FbrefID:    id,
		PlayerURL:  normalize.BuildFullURL(s.baseURL, href),
		Team:       normalize.CleanText(row.Find("[data-stat='team']").First().Text()),
		League:     league,
		Country:    s.countries[league],
		Position:   normalize.CleanText(row.Find("[data-stat='position']").First().Text()),
		Age:        normalize.ParseAge(row.Find("[data-stat='age']").First().Text()),
		BasicStats: map[string]float64{},
	}
	for _, col := range listingStatColumns {
		cell := row.Find("[data-stat='" + col + "']").First()
		if cell.Length() > 0 {
			info.BasicStats[col] = normalize.ExtractNumericStat(cell.Text())
		}
	}
	return info, true
}
