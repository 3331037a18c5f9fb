package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017/", cfg.MongoURI)
	assert.Equal(t, "ScoutDatabase", cfg.MongoDBName)
	assert.Equal(t, "players", cfg.MongoCollection)
	assert.Equal(t, "https://fbref.com", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.ScrapeDelay)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20, cfg.RequestsPerMin)
	assert.Equal(t, 2024, cfg.MinContractYear)
	assert.Equal(t, 2035, cfg.MaxContractYear)
	assert.Equal(t, 3, cfg.Workers)
	assert.NotEmpty(t, cfg.UserAgents)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGODB_DB_NAME", "TestDB")
	t.Setenv("REQUESTS_PER_MINUTE", "5")
	t.Setenv("USER_AGENTS", "agent-a, agent-b")
	t.Setenv("SQUAD_SHEET_URLS", "Premier League=https://example.com/pl.pdf;La Liga=https://example.com/ll.pdf")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	assert.Equal(t, "TestDB", cfg.MongoDBName)
	assert.Equal(t, 5, cfg.RequestsPerMin)
	assert.Equal(t, []string{"agent-a", "agent-b"}, cfg.UserAgents)
	assert.Equal(t, "https://example.com/pl.pdf", cfg.SquadSheetURLs["Premier League"])
	assert.Equal(t, "https://example.com/ll.pdf", cfg.SquadSheetURLs["La Liga"])
	assert.True(t, cfg.Debug)
}

func TestDefaultCatalogConsistency(t *testing.T) {
	catalog := DefaultCatalog()

	names := catalog.LeagueNames()
	require.NotEmpty(t, names)

	// Every catalogued league has a country, and vice versa.
	for name := range catalog.ListingURLs {
		assert.Contains(t, catalog.Countries, name, "league %q has no country", name)
	}
	for name := range catalog.Countries {
		assert.Contains(t, catalog.ListingURLs, name, "country entry %q has no listing", name)
	}

	// Aliases and team keywords point at catalogued leagues only.
	for _, alias := range catalog.Aliases {
		assert.Contains(t, catalog.ListingURLs, alias.League, "alias %q targets unknown league", alias.Keyword)
	}
	for _, kw := range catalog.TeamKeywords {
		assert.Contains(t, catalog.ListingURLs, kw.League, "team keyword %q targets unknown league", kw.Keyword)
	}
}
