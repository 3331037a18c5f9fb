package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoutingURL(t *testing.T) {
	e := newTestExtractor(nil)
	assert.Equal(t,
		"https://fbref.com/en/players/e342ad68/scout/365_m1/Mohamed-Salah-Scouting-Report",
		e.ScoutingURL("e342ad68", "Mohamed Salah"))
}

func TestExtractScoutingReportFetchFailureIsEmpty(t *testing.T) {
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{}})

	report := e.ExtractScoutingReport(context.Background(), "e342ad68", "Mohamed Salah")
	assert.Empty(t, report)
}

func TestExtractScoutingReportMergesScoutTables(t *testing.T) {
	page := `
		<table class="stats_table" id="scout_summary_FW">
		  <tbody><tr><th>Goals</th><td>0.55</td><td>92</td></tr></tbody>
		</table>
		<table class="stats_table" id="scout_full_FW">
		  <tbody><tr><th>Tackles</th><td>0.81</td><td>34</td></tr></tbody>
		</table>
		<table class="stats_table" id="stats_standard_dom_lg">
		  <tbody><tr><th>Goals</th><td>999</td><td>999</td></tr></tbody>
		</table>`
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{
		"https://fbref.com/en/players/e342ad68/scout/365_m1/Mohamed-Salah-Scouting-Report": page,
	}})

	report := e.ExtractScoutingReport(context.Background(), "e342ad68", "Mohamed Salah")
	require.Len(t, report, 2)
	assert.Equal(t, 0.55, report["Goals"].Per90)
	assert.Equal(t, 34, report["Tackles"].Percentile)
}

func TestExtractSimilarPlayersCapAndDedupe(t *testing.T) {
	e := newTestExtractor(nil)
	doc := testDoc(t, `
		<div id="all_similar">
		  <a href="/en/players/1f44ac21/Son-Heung-min">Son Heung-min</a>
		  <a href="/en/players/1f44ac21/Son-Heung-min">Son Heung-min</a>
		  <a href="/en/players/8d78e732/Bukayo-Saka">Bukayo Saka</a>
		  <a href="/en/squads/822bd0ba/Liverpool-Stats">Liverpool</a>
		</div>`)

	players := e.ExtractSimilarPlayers(doc)
	require.Len(t, players, 2)
	assert.Equal(t, "Son Heung-min", players[0].Name)
	assert.Equal(t, "8d78e732", players[1].FbrefID)
	assert.Equal(t, "https://fbref.com/en/players/8d78e732/Bukayo-Saka", players[1].URL)
}

func TestExtractSimilarPlayersFromHeading(t *testing.T) {
	e := newTestExtractor(nil)
	doc := testDoc(t, `
		<div>
		  <h2>Similar Players</h2>
		  <a href="/en/players/1f44ac21/Son-Heung-min">Son Heung-min</a>
		</div>`)

	players := e.ExtractSimilarPlayers(doc)
	require.Len(t, players, 1)
	assert.Equal(t, "1f44ac21", players[0].FbrefID)
}

func TestExtractSimilarPlayersAbsent(t *testing.T) {
	e := newTestExtractor(nil)
	doc := testDoc(t, `<body><p>nothing here</p></body>`)
	assert.Empty(t, e.ExtractSimilarPlayers(doc))
}

func TestExtractTransfers(t *testing.T) {
	e := newTestExtractor(nil)
	doc := testDoc(t, `
		<table id="transfers">
		  <tbody>
		    <tr><td>2017-2018</td><td>June 22, 2017</td><td>Roma</td><td>Liverpool</td><td>€42m</td></tr>
		    <tr><td>2015-2016</td><td>August 6, 2015</td><td>Chelsea</td><td>Roma</td></tr>
		    <tr><td>short</td><td>row</td></tr>
		  </tbody>
		</table>`)

	transfers := e.ExtractTransfers(doc)
	require.Len(t, transfers, 2)
	assert.Equal(t, "€42m", transfers[0].Fee)
	assert.Equal(t, "", transfers[1].Fee)
	assert.Equal(t, "Chelsea", transfers[1].FromTeam)
}
