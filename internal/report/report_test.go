package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emirken/scout-backend/pkg/models"
)

func TestSavePlayersToCSV(t *testing.T) {
	salah := models.NewPlayerRecord()
	salah.FbrefID = "e342ad68"
	salah.SetName("Mohamed Salah")
	salah.Age = 32
	salah.Team = "Liverpool"
	salah.League = "Premier League"
	salah.Country = "England"
	salah.Position = "Forward"
	salah.ContractEnd = "June 30, 2027"

	estimated := models.NewPlayerRecord()
	estimated.FbrefID = "8d78e732"
	estimated.SetName("Bukayo Saka")
	estimated.ContractEnd = "June 30, 2028"
	estimated.ContractEstimated = true

	path := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, SavePlayersToCSV([]models.PlayerRecord{*salah, *estimated}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "fbrefId", rows[0][0])
	assert.Equal(t, "e342ad68", rows[1][0])
	assert.Equal(t, "Mohamed Salah", rows[1][1])
	assert.Equal(t, "Premier League", rows[1][4])
	assert.Equal(t, "false", rows[1][12])
	assert.Equal(t, "true", rows[2][12])
}

func TestSavePlayersToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, SavePlayersToCSV(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
