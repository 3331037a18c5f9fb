// Package models contains data structures for scraped football player records
package models

import (
	"strings"
	"time"
)

// Placeholder values written into a record when the corresponding fact
// could not be resolved from any source.
const (
	UnknownTeam   = "Unknown Team"
	UnknownLeague = "Unknown League"
)

// Season statistic category keys used in PlayerRecord.SeasonStats.
const (
	CategoryStandard         = "standardStats"
	CategoryShooting         = "shooting"
	CategoryPassing          = "passing"
	CategoryPassTypes        = "passTypes"
	CategoryGoalShotCreation = "goalShotCreation"
	CategoryDefensiveActions = "defensiveActions"
	CategoryPossession       = "possession"
	CategoryMiscellaneous    = "miscellaneous"
)

// ScoutingStat holds one scouting-report entry: the per-90 value and the
// percentile rank (0-100) relative to positional peers.
type ScoutingStat struct {
	Per90      float64 `bson:"per90" json:"per90"`
	Percentile int     `bson:"percentile" json:"percentile"`
}

// SimilarPlayer is one entry of the "similar players" comparison section.
type SimilarPlayer struct {
	Name    string `bson:"name" json:"name"`
	FbrefID string `bson:"fbrefId" json:"fbrefId"`
	URL     string `bson:"url" json:"url"`
}

// Transfer is one row of a player's transfer history.
type Transfer struct {
	Season   string `bson:"season" json:"season"`
	Date     string `bson:"date" json:"date"`
	FromTeam string `bson:"fromTeam" json:"fromTeam"`
	ToTeam   string `bson:"toTeam" json:"toTeam"`
	Fee      string `bson:"fee" json:"fee"`
}

// PlayerRecord is the unit of output: one fully assembled player document,
// keyed by the fbref id and rebuilt from scratch on every scrape pass.
type PlayerRecord struct {
	FbrefID   string `bson:"fbrefId" json:"fbrefId" validate:"required,len=8,hexadecimal"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	FullName  string `bson:"fullName" json:"fullName" validate:"required"`

	Age              int    `bson:"age" json:"age"`
	Team             string `bson:"team" json:"team"`
	League           string `bson:"league" json:"league"`
	Country          string `bson:"country" json:"country"`
	DetailedPosition string `bson:"detailedPosition" json:"detailedPosition"`
	Position         string `bson:"position" json:"position"`

	Height        string `bson:"height" json:"height"`
	Weight        string `bson:"weight" json:"weight"`
	PreferredFoot string `bson:"preferredFoot" json:"preferredFoot"`

	// ContractEnd is a canonical "Month Day, Year" string. When no textual
	// contract information existed and the date was estimated from the
	// player's age, ContractEstimated is set so the guess stays
	// distinguishable from scraped fact.
	ContractEnd       string `bson:"contractEnd" json:"contractEnd"`
	ContractEstimated bool   `bson:"contractEstimated" json:"contractEstimated"`

	Photo string `bson:"photo" json:"photo"`

	SeasonStats     map[string]map[string]float64 `bson:"seasonStats" json:"seasonStats"`
	ScoutingReport  map[string]ScoutingStat       `bson:"scoutingReport" json:"scoutingReport"`
	SimilarPlayers  []SimilarPlayer               `bson:"similarPlayers" json:"similarPlayers"`
	TransferHistory []Transfer                    `bson:"transferHistory" json:"transferHistory"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewPlayerRecord returns an empty record with all collections initialized
// and both timestamps set to now.
func NewPlayerRecord() *PlayerRecord {
	now := time.Now().UTC()
	return &PlayerRecord{
		SeasonStats:     make(map[string]map[string]float64),
		ScoutingReport:  make(map[string]ScoutingStat),
		SimilarPlayers:  []SimilarPlayer{},
		TransferHistory: []Transfer{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SetName stores the full name and derives first/last name by splitting on
// whitespace: first token vs. remainder.
func (p *PlayerRecord) SetName(fullName string) {
	p.FullName = fullName
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		p.FirstName = ""
		p.LastName = ""
		return
	}
	p.FirstName = parts[0]
	p.LastName = strings.Join(parts[1:], " ")
}

// Touch refreshes the update timestamp. Called once per re-extraction.
func (p *PlayerRecord) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// BasicInfo is a partial record harvested from a league listing page (or a
// squad-sheet PDF) before the player's profile page is visited. Non-empty
// fields only fill blanks during assembly; profile-page values win.
type BasicInfo struct {
	Name      string
	FbrefID   string
	PlayerURL string
	Team      string
	League    string
	Country   string
	Position  string
	Age       int

	// Headline listing-table numbers (matches, starts, minutes, goals,
	// assists), kept for listing-level consumers.
	BasicStats map[string]float64
}
