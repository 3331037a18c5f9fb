// Package extract implements the HTML-to-record extraction core: per-fact
// field extractors with ordered fallback strategies, generic statistics
// table parsers, and the assembler that merges everything into one
// PlayerRecord.
//
// Every extractor follows the same contract: strategies are tried in
// priority order, the first non-empty plausible result wins, and when all
// of them fail the type's neutral value is returned. Extraction failures
// never propagate as errors; only "could not fetch the profile page" and
// "record failed validation" surface to the caller.
package extract

import (
	"context"
	"sort"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Fetcher is the page-fetching collaborator. Implementations own retries,
// backoff and rate limiting; the extraction core only sees a parsed
// document or a failure it must degrade around.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Alias pairs a lowercase keyword with the canonical league name it
// indicates.
type Alias struct {
	Keyword string
	League  string
}

// Config carries the collaborators and immutable lookup tables an
// Extractor needs. Tables are injected at construction and never mutated.
type Config struct {
	Fetcher Fetcher
	BaseURL string

	// Known league catalog.
	LeagueNames     []string
	LeagueCountries map[string]string
	LeagueAliases   []Alias
	TeamKeywords    []Alias

	// Validity window for bare contract years found in page text.
	MinContractYear int
	MaxContractYear int

	Logger *zap.SugaredLogger

	// Now is overridable for deterministic tests of age/contract logic.
	Now func() time.Time
}

// Extractor runs all field extraction strategies against parsed pages.
type Extractor struct {
	fetcher Fetcher
	baseURL string

	leagueNames     []string
	leagueCountries map[string]string
	leagueAliases   []Alias
	teamKeywords    []Alias

	minContractYear int
	maxContractYear int

	log       *zap.SugaredLogger
	now       func() time.Time
	validator *Validator
}

// New builds an Extractor from cfg, applying defaults for anything unset.
func New(cfg Config) *Extractor {
	e := &Extractor{
		fetcher:         cfg.Fetcher,
		baseURL:         cfg.BaseURL,
		leagueNames:     append([]string(nil), cfg.LeagueNames...),
		leagueCountries: cfg.LeagueCountries,
		leagueAliases:   cfg.LeagueAliases,
		teamKeywords:    cfg.TeamKeywords,
		minContractYear: cfg.MinContractYear,
		maxContractYear: cfg.MaxContractYear,
		log:             cfg.Logger,
		now:             cfg.Now,
	}
	if e.baseURL == "" {
		e.baseURL = "https://fbref.com"
	}
	if e.minContractYear == 0 {
		e.minContractYear = 2024
	}
	if e.maxContractYear == 0 {
		e.maxContractYear = 2035
	}
	if e.log == nil {
		e.log = zap.NewNop().Sugar()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.leagueCountries == nil {
		e.leagueCountries = map[string]string{}
	}
	e.validator = NewValidator(e.log)
	// Deterministic scan order for the full-text catalog strategy.
	sort.Strings(e.leagueNames)
	return e
}
