// Package pipeline orchestrates bulk scraping runs: league listings fan
// out to a bounded worker pool, each worker assembles and stores one
// player record.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/Emirken/scout-backend/pkg/extract"
	"github.com/Emirken/scout-backend/pkg/models"
	"github.com/Emirken/scout-backend/pkg/scraper"
)

// progressEvery controls how often bulk progress is logged.
const progressEvery = 10

// Store is the persistence surface the pipeline needs.
type Store interface {
	HasPlayer(ctx context.Context, fbrefID string) (bool, error)
	UpsertPlayer(ctx context.Context, record *models.PlayerRecord) error
}

// Listings is the league listing surface (implemented by the HTML listing
// scraper).
type Listings interface {
	Leagues() []string
	GetLeaguePlayers(ctx context.Context, league string) ([]models.BasicInfo, error)
}

// Summary reports the outcome of one bulk run.
type Summary struct {
	Total   int
	Scraped int
	Skipped int
	Failed  int
}

func (s Summary) String() string {
	return fmt.Sprintf("total=%d scraped=%d skipped=%d failed=%d", s.Total, s.Scraped, s.Skipped, s.Failed)
}

func (s *Summary) add(other Summary) {
	s.Total += other.Total
	s.Scraped += other.Scraped
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Config assembles a Pipeline.
type Config struct {
	Extractor *extract.Extractor
	Listings  Listings
	Squads    *scraper.SquadSheetReader
	Store     Store

	// SquadSheetURLs maps league name -> PDF listing fallback URL.
	SquadSheetURLs map[string]string

	Workers int
	// SkipExisting leaves already-stored players untouched; update runs
	// clear it to refresh everything.
	SkipExisting bool

	Logger *zap.SugaredLogger
}

// Pipeline runs bulk scrapes over a bounded worker pool.
type Pipeline struct {
	extractor      *extract.Extractor
	listings       Listings
	squads         *scraper.SquadSheetReader
	store          Store
	squadSheetURLs map[string]string
	workers        int
	skipExisting   bool
	log            *zap.SugaredLogger
}

// New builds a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Pipeline{
		extractor:      cfg.Extractor,
		listings:       cfg.Listings,
		squads:         cfg.Squads,
		store:          cfg.Store,
		squadSheetURLs: cfg.SquadSheetURLs,
		workers:        cfg.Workers,
		skipExisting:   cfg.SkipExisting,
		log:            cfg.Logger,
	}
}

// ScrapeAll runs every catalogued league in alphabetical order. Per-league
// failures are logged and counted, not fatal.
func (p *Pipeline) ScrapeAll(ctx context.Context) (Summary, error) {
	leagues := p.listings.Leagues()
	sort.Strings(leagues)

	var total Summary
	for _, league := range leagues {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		summary, err := p.ScrapeLeague(ctx, league)
		if err != nil {
			p.log.Errorw("league scrape failed", "league", league, "error", err)
			continue
		}
		total.add(summary)
	}
	p.log.Infow("full scrape finished", "summary", total.String())
	return total, nil
}

// ScrapeLeague scrapes every player listed for one league. When the
// listing page cannot be fetched and a squad-sheet PDF is configured for
// the league, the PDF supplies the player set instead.
func (p *Pipeline) ScrapeLeague(ctx context.Context, league string) (Summary, error) {
	players, err := p.listings.GetLeaguePlayers(ctx, league)
	if err != nil {
		players, err = p.squadFallback(ctx, league, err)
		if err != nil {
			return Summary{}, err
		}
	}

	p.log.Infow("scraping league", "league", league, "players", len(players))
	return p.scrapePlayers(ctx, players)
}

// squadFallback tries the configured squad-sheet PDF after a listing
// failure.
func (p *Pipeline) squadFallback(ctx context.Context, league string, listingErr error) ([]models.BasicInfo, error) {
	pdfURL, ok := p.squadSheetURLs[league]
	if !ok || p.squads == nil {
		return nil, listingErr
	}
	p.log.Warnw("listing failed, falling back to squad sheet", "league", league, "error", listingErr)

	players, err := p.squads.GetLeaguePlayers(ctx, league, pdfURL)
	if err != nil {
		return nil, errors.CombineErrors(listingErr, err)
	}
	return players, nil
}

// scrapePlayers fans the player set out to the worker pool. Listing
// entries without a profile URL (squad-sheet players whose ids were never
// resolved) are counted as failures since no record can be keyed for them.
func (p *Pipeline) scrapePlayers(ctx context.Context, players []models.BasicInfo) (Summary, error) {
	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return Summary{}, errors.Wrap(err, "creating worker pool")
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		scraped   atomic.Int64
		skipped   atomic.Int64
		failed    atomic.Int64
		processed atomic.Int64
	)

	total := len(players)
	for i := range players {
		info := players[i]

		if info.PlayerURL == "" {
			p.log.Warnw("player has no profile url, skipping", "name", info.Name, "team", info.Team)
			failed.Add(1)
			processed.Add(1)
			continue
		}

		if p.skipExisting && info.FbrefID != "" {
			exists, err := p.store.HasPlayer(ctx, info.FbrefID)
			if err != nil {
				p.log.Warnw("existence check failed", "id", info.FbrefID, "error", err)
			} else if exists {
				skipped.Add(1)
				p.reportProgress(processed.Add(1), int64(total))
				continue
			}
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := p.scrapeOne(ctx, info); err != nil {
				p.log.Errorw("player scrape failed", "name", info.Name, "url", info.PlayerURL, "error", err)
				failed.Add(1)
			} else {
				scraped.Add(1)
			}
			p.reportProgress(processed.Add(1), int64(total))
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			processed.Add(1)
		}
	}
	wg.Wait()

	return Summary{
		Total:   total,
		Scraped: int(scraped.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}, ctx.Err()
}

func (p *Pipeline) scrapeOne(ctx context.Context, info models.BasicInfo) error {
	record, err := p.extractor.ScrapePlayer(ctx, info.PlayerURL, &info)
	if err != nil {
		return err
	}
	return p.store.UpsertPlayer(ctx, record)
}

func (p *Pipeline) reportProgress(done, total int64) {
	if done%progressEvery == 0 || done == total {
		p.log.Infow("progress", "done", done, "total", total)
	}
}

// ScrapePlayerURL scrapes and stores a single player by profile URL.
func (p *Pipeline) ScrapePlayerURL(ctx context.Context, playerURL string) (*models.PlayerRecord, error) {
	record, err := p.extractor.ScrapePlayer(ctx, playerURL, nil)
	if err != nil {
		return nil, err
	}
	if err := p.store.UpsertPlayer(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
