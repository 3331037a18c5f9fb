package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emirken/scout-backend/pkg/extract"
	"github.com/Emirken/scout-backend/pkg/models"
)

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	html, ok := f.pages[url]
	if !ok {
		return nil, errors.Newf("no page for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

type fakeStore struct {
	mu       sync.Mutex
	existing map[string]bool
	upserted []string
}

func (s *fakeStore) HasPlayer(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing[id], nil
}

func (s *fakeStore) UpsertPlayer(_ context.Context, record *models.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, record.FbrefID)
	return nil
}

type fakeListings struct {
	players map[string][]models.BasicInfo
	err     error
}

func (l *fakeListings) Leagues() []string {
	names := make([]string, 0, len(l.players))
	for name := range l.players {
		names = append(names, name)
	}
	return names
}

func (l *fakeListings) GetLeaguePlayers(_ context.Context, league string) ([]models.BasicInfo, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.players[league], nil
}

func profilePage(name string) string {
	return `<div id="meta"><h1>` + name + `</h1><p>Club: Liverpool</p></div>`
}

func playerInfo(id, name string) models.BasicInfo {
	return models.BasicInfo{
		Name:      name,
		FbrefID:   id,
		PlayerURL: "https://fbref.com/en/players/" + id + "/" + strings.ReplaceAll(name, " ", "-"),
		Team:      "Liverpool",
		League:    "Premier League",
	}
}

func newTestPipeline(store *fakeStore, listings *fakeListings, fetcher extract.Fetcher, skipExisting bool) *Pipeline {
	return New(Config{
		Extractor:    extract.New(extract.Config{Fetcher: fetcher}),
		Listings:     listings,
		Store:        store,
		Workers:      2,
		SkipExisting: skipExisting,
	})
}

func TestScrapeLeague(t *testing.T) {
	one := playerInfo("aaaa1111", "Player One")
	two := playerInfo("bbbb2222", "Player Two")

	fetcher := &fakeFetcher{pages: map[string]string{
		one.PlayerURL: profilePage("Player One"),
		two.PlayerURL: profilePage("Player Two"),
	}}
	store := &fakeStore{existing: map[string]bool{}}
	listings := &fakeListings{players: map[string][]models.BasicInfo{
		"Premier League": {one, two},
	}}

	summary, err := newTestPipeline(store, listings, fetcher, true).ScrapeLeague(context.Background(), "Premier League")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Scraped)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.ElementsMatch(t, []string{"aaaa1111", "bbbb2222"}, store.upserted)
}

func TestScrapeLeagueSkipsExisting(t *testing.T) {
	one := playerInfo("aaaa1111", "Player One")
	two := playerInfo("bbbb2222", "Player Two")

	fetcher := &fakeFetcher{pages: map[string]string{
		two.PlayerURL: profilePage("Player Two"),
	}}
	store := &fakeStore{existing: map[string]bool{"aaaa1111": true}}
	listings := &fakeListings{players: map[string][]models.BasicInfo{
		"Premier League": {one, two},
	}}

	summary, err := newTestPipeline(store, listings, fetcher, true).ScrapeLeague(context.Background(), "Premier League")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Scraped)
	assert.Equal(t, []string{"bbbb2222"}, store.upserted)
}

func TestScrapeLeagueCountsFailures(t *testing.T) {
	one := playerInfo("aaaa1111", "Player One")
	unreachable := playerInfo("bbbb2222", "Player Two")
	noURL := models.BasicInfo{Name: "Sheet Player", Team: "Liverpool"}

	fetcher := &fakeFetcher{pages: map[string]string{
		one.PlayerURL: profilePage("Player One"),
	}}
	store := &fakeStore{existing: map[string]bool{}}
	listings := &fakeListings{players: map[string][]models.BasicInfo{
		"Premier League": {one, unreachable, noURL},
	}}

	summary, err := newTestPipeline(store, listings, fetcher, false).ScrapeLeague(context.Background(), "Premier League")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Scraped)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, []string{"aaaa1111"}, store.upserted)
}

func TestScrapeAllAggregates(t *testing.T) {
	one := playerInfo("aaaa1111", "Player One")
	two := playerInfo("bbbb2222", "Player Two")

	fetcher := &fakeFetcher{pages: map[string]string{
		one.PlayerURL: profilePage("Player One"),
		two.PlayerURL: profilePage("Player Two"),
	}}
	store := &fakeStore{existing: map[string]bool{}}
	listings := &fakeListings{players: map[string][]models.BasicInfo{
		"Premier League": {one},
		"La Liga":        {two},
	}}

	summary, err := newTestPipeline(store, listings, fetcher, false).ScrapeAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Scraped)
}

func TestScrapePlayerURL(t *testing.T) {
	info := playerInfo("aaaa1111", "Player One")
	fetcher := &fakeFetcher{pages: map[string]string{
		info.PlayerURL: profilePage("Player One"),
	}}
	store := &fakeStore{existing: map[string]bool{}}

	pipe := newTestPipeline(store, &fakeListings{}, fetcher, false)
	record, err := pipe.ScrapePlayerURL(context.Background(), info.PlayerURL)
	require.NoError(t, err)

	assert.Equal(t, "aaaa1111", record.FbrefID)
	assert.Equal(t, []string{"aaaa1111"}, store.upserted)
}

func TestScrapeLeagueListingFailureWithoutFallback(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{}}
	listings := &fakeListings{err: errors.New("listing down")}

	_, err := newTestPipeline(store, listings, &fakeFetcher{}, false).ScrapeLeague(context.Background(), "Premier League")
	assert.Error(t, err)
}
