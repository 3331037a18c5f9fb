package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emirken/scout-backend/pkg/models"
)

const salahProfileURL = "https://fbref.com/en/players/e342ad68/Mohamed-Salah"

const salahProfilePage = `
<html><head><title>Mohamed Salah Stats</title></head><body>
<div id="meta">
  <div class="media-item"><img src="/req/media/headshots/e342ad68.jpg"></div>
  <h1>Mohamed Salah</h1>
  <p>Position: FW (WM) &#9642; Footed: Left</p>
  <p>180cm, 75kg</p>
  <p>Born: June 15, 1992 (age 32)</p>
  <p>Club: <a href="/en/squads/822bd0ba/Liverpool-Stats">Liverpool</a></p>
  <p>Contract expires: June 30, 2027</p>
</div>
<a href="/en/comps/9/Premier-League-Stats">Premier League</a>
` + standardStatsTable + `
<table id="transfers">
  <tbody>
    <tr><td>2017-2018</td><td>June 22, 2017</td><td>Roma</td><td>Liverpool</td><td>€42m</td></tr>
  </tbody>
</table>
<div id="all_similar">
  <a href="/en/players/1f44ac21/Son-Heung-min">Son Heung-min</a>
</div>
</body></html>`

const salahScoutingPage = `
<html><body>` + scoutingTable + `</body></html>`

func newAssemblerExtractor() *Extractor {
	fetcher := &fakeFetcher{pages: map[string]string{
		salahProfileURL: salahProfilePage,
		"https://fbref.com/en/players/e342ad68/scout/365_m1/Mohamed-Salah-Scouting-Report": salahScoutingPage,
	}}
	return newTestExtractor(fetcher)
}

func TestAssembleFullProfile(t *testing.T) {
	e := newAssemblerExtractor()
	doc := testDoc(t, salahProfilePage)

	record, err := e.Assemble(context.Background(), doc, salahProfileURL, nil)
	require.NoError(t, err)

	assert.Equal(t, "e342ad68", record.FbrefID)
	assert.Equal(t, "Mohamed Salah", record.FullName)
	assert.Equal(t, "Mohamed", record.FirstName)
	assert.Equal(t, "Salah", record.LastName)
	assert.Equal(t, 32, record.Age)
	assert.Equal(t, "Liverpool", record.Team)
	assert.Equal(t, "Premier League", record.League)
	assert.Equal(t, "England", record.Country)
	assert.Equal(t, "FW (WM)", record.DetailedPosition)
	assert.Equal(t, "Forward", record.Position)
	assert.Equal(t, "Left", record.PreferredFoot)
	assert.Equal(t, "180cm", record.Height)
	assert.Equal(t, "75kg", record.Weight)
	assert.Equal(t, "June 30, 2027", record.ContractEnd)
	assert.False(t, record.ContractEstimated)
	assert.Equal(t, "https://fbref.com/req/media/headshots/e342ad68.jpg", record.Photo)

	require.Contains(t, record.SeasonStats, models.CategoryStandard)
	assert.Equal(t, 25.0, record.SeasonStats[models.CategoryStandard]["goals"])

	require.Contains(t, record.ScoutingReport, "Goals")
	assert.Equal(t, 92, record.ScoutingReport["Goals"].Percentile)

	require.Len(t, record.SimilarPlayers, 1)
	assert.Equal(t, "Son Heung-min", record.SimilarPlayers[0].Name)
	assert.Equal(t, "1f44ac21", record.SimilarPlayers[0].FbrefID)

	require.Len(t, record.TransferHistory, 1)
	assert.Equal(t, "Roma", record.TransferHistory[0].FromTeam)
	assert.Equal(t, "Liverpool", record.TransferHistory[0].ToTeam)
	assert.Equal(t, "€42m", record.TransferHistory[0].Fee)
}

func TestAssemblePageValuesBeatListingValues(t *testing.T) {
	e := newAssemblerExtractor()
	doc := testDoc(t, salahProfilePage)

	basic := &models.BasicInfo{
		Name:     "Listing Name",
		Team:     "Listing FC",
		League:   "Serie A",
		Position: "GK",
		Age:      19,
	}
	record, err := e.Assemble(context.Background(), doc, salahProfileURL, basic)
	require.NoError(t, err)

	assert.Equal(t, "Mohamed Salah", record.FullName)
	assert.Equal(t, "Liverpool", record.Team)
	assert.Equal(t, "Premier League", record.League)
	assert.Equal(t, "FW (WM)", record.DetailedPosition)
	assert.Equal(t, 32, record.Age)
}

func TestAssembleListingFillsBlanks(t *testing.T) {
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{}})
	doc := testDoc(t, `<div id="meta"><h1>Joe Nobody</h1></div>`)

	basic := &models.BasicInfo{
		Team:     "Listing FC",
		League:   "Serie A",
		Position: "DF",
		Age:      24,
	}
	record, err := e.Assemble(context.Background(), doc, "https://fbref.com/en/players/abcd1234/Joe-Nobody", basic)
	require.NoError(t, err)

	assert.Equal(t, "Joe Nobody", record.FullName)
	assert.Equal(t, "Listing FC", record.Team)
	assert.Equal(t, "Serie A", record.League)
	assert.Equal(t, "Italy", record.Country)
	assert.Equal(t, "DF", record.DetailedPosition)
	assert.Equal(t, "Defender", record.Position)
	assert.Equal(t, 24, record.Age)
	// Age 24 at the fixed 2025 clock: estimate lands three years out.
	assert.Equal(t, "June 30, 2028", record.ContractEnd)
	assert.True(t, record.ContractEstimated)
}

func TestAssembleUnknownBackfills(t *testing.T) {
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{}})
	doc := testDoc(t, `<div id="meta"><h1>Joe Nobody</h1></div>`)

	record, err := e.Assemble(context.Background(), doc, "https://fbref.com/en/players/abcd1234/Joe-Nobody", nil)
	require.NoError(t, err)

	assert.Equal(t, models.UnknownTeam, record.Team)
	assert.Equal(t, models.UnknownLeague, record.League)
	assert.Equal(t, "", record.Country)
	assert.Equal(t, 0, record.Age)
}

func TestAssembleListingStatsBackfillStandardCategory(t *testing.T) {
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{}})
	doc := testDoc(t, `<div id="meta"><h1>Joe Nobody</h1></div>`)

	basic := &models.BasicInfo{
		BasicStats: map[string]float64{"goals": 7, "minutes": 900},
	}
	record, err := e.Assemble(context.Background(), doc, "https://fbref.com/en/players/abcd1234/Joe-Nobody", basic)
	require.NoError(t, err)

	require.Contains(t, record.SeasonStats, models.CategoryStandard)
	assert.Equal(t, 7.0, record.SeasonStats[models.CategoryStandard]["goals"])
}

func TestAssembleAgeBackfillsFromBirthDate(t *testing.T) {
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{}})
	doc := testDoc(t, `<div id="meta">
		<h1>Joe Nobody</h1>
		<p>Born: June 15, 1992 in Cairo, Egypt</p>
	</div>`)

	record, err := e.Assemble(context.Background(), doc, "https://fbref.com/en/players/abcd1234/Joe-Nobody", nil)
	require.NoError(t, err)

	// No explicit age phrase anywhere: the birth year drives the age
	// (fixed 2025 clock), not the day-of-month.
	assert.Equal(t, 33, record.Age)
}

func TestAssembleRejectsURLWithoutID(t *testing.T) {
	e := newTestExtractor(nil)
	doc := testDoc(t, `<div id="meta"><h1>Joe Nobody</h1></div>`)

	_, err := e.Assemble(context.Background(), doc, "https://fbref.com/en/comps/9/stats", nil)
	assert.Error(t, err)
}

func TestAssembleFallsBackToListingID(t *testing.T) {
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{}})
	doc := testDoc(t, `<div id="meta"><h1>Joe Nobody</h1></div>`)

	basic := &models.BasicInfo{FbrefID: "abcd1234"}
	record, err := e.Assemble(context.Background(), doc, "https://example.com/not-a-profile", basic)
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", record.FbrefID)
}

func TestScrapePlayer(t *testing.T) {
	e := newAssemblerExtractor()

	record, err := e.ScrapePlayer(context.Background(), salahProfileURL, nil)
	require.NoError(t, err)
	assert.Equal(t, "e342ad68", record.FbrefID)
	assert.Equal(t, "Mohamed Salah", record.FullName)
}

func TestScrapePlayerFetchFailure(t *testing.T) {
	e := newTestExtractor(&fakeFetcher{pages: map[string]string{}})

	_, err := e.ScrapePlayer(context.Background(), "https://fbref.com/en/players/e342ad68/Gone", nil)
	assert.Error(t, err)
}
