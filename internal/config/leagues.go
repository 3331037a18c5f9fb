package config

// LeagueAlias maps a keyword found in loose page text to a canonical
// league name. Aliases are checked in order, so more specific keywords
// must come before shorter ones.
type LeagueAlias struct {
	Keyword string
	League  string
}

// TeamKeyword associates a well-known club-name fragment with the league
// it plays in. Used as a last-resort league guess when the page itself
// gave nothing away.
type TeamKeyword struct {
	Keyword string
	League  string
}

// Catalog is the static league directory consulted by the extractors and
// the listing scraper. It is built once and never mutated.
type Catalog struct {
	// ListingURLs maps canonical league name -> standard-stats listing URL.
	ListingURLs map[string]string

	// Countries maps canonical league name -> country.
	Countries map[string]string

	// Aliases handles abbreviations, alternate spellings and localized
	// names during league detection.
	Aliases []LeagueAlias

	// TeamKeywords covers a small set of well-known clubs per major league.
	TeamKeywords []TeamKeyword
}

// LeagueNames returns the canonical names of every catalogued league.
func (c *Catalog) LeagueNames() []string {
	names := make([]string, 0, len(c.ListingURLs))
	for name := range c.ListingURLs {
		names = append(names, name)
	}
	return names
}

// DefaultCatalog returns the built-in league directory.
func DefaultCatalog() *Catalog {
	return &Catalog{
		ListingURLs: map[string]string{
			// England
			"Premier League": "https://fbref.com/en/comps/9/stats/Premier-League-Stats",
			"Championship":   "https://fbref.com/en/comps/10/stats/Championship-Stats",
			"League One":     "https://fbref.com/en/comps/15/stats/League-One-Stats",
			"League Two":     "https://fbref.com/en/comps/16/stats/League-Two-Stats",

			// Italy
			"Serie A": "https://fbref.com/en/comps/11/stats/Serie-A-Stats",
			"Serie B": "https://fbref.com/en/comps/18/stats/Serie-B-Stats",

			// Spain
			"La Liga":   "https://fbref.com/en/comps/12/stats/La-Liga-Stats",
			"La Liga 2": "https://fbref.com/en/comps/17/stats/La-Liga-2-Stats",

			// Germany
			"Bundesliga":    "https://fbref.com/en/comps/20/stats/Bundesliga-Stats",
			"2. Bundesliga": "https://fbref.com/en/comps/33/stats/2-Bundesliga-Stats",
			"3. Liga":       "https://fbref.com/en/comps/59/stats/3-Liga-Stats",

			// France
			"Ligue 1": "https://fbref.com/en/comps/13/stats/Ligue-1-Stats",
			"Ligue 2": "https://fbref.com/en/comps/60/stats/Ligue-2-Stats",

			// Netherlands
			"Eredivisie":     "https://fbref.com/en/comps/23/stats/Eredivisie-Stats",
			"Eerste Divisie": "https://fbref.com/en/comps/36/stats/Eerste-Divisie-Stats",

			// Portugal
			"Liga Portugal Betclic": "https://fbref.com/en/comps/32/stats/Liga-Portugal-Betclic-Stats",
			"Liga Portugal 2":       "https://fbref.com/en/comps/63/stats/Liga-Portugal-2-Stats",

			// Turkey
			"Trendyol Süper Lig": "https://fbref.com/en/comps/26/stats/Super-Lig-Stats",
			"Trendyol 1. Lig":    "https://fbref.com/en/comps/64/stats/1-Lig-Stats",

			// Others
			"MLS":              "https://fbref.com/en/comps/22/stats/Major-League-Soccer-Stats",
			"Saudi Pro League": "https://fbref.com/en/comps/70/stats/Saudi-Pro-League-Stats",
		},

		Countries: map[string]string{
			"Premier League":        "England",
			"Championship":          "England",
			"League One":            "England",
			"League Two":            "England",
			"Serie A":               "Italy",
			"Serie B":               "Italy",
			"La Liga":               "Spain",
			"La Liga 2":             "Spain",
			"Bundesliga":            "Germany",
			"2. Bundesliga":         "Germany",
			"3. Liga":               "Germany",
			"Ligue 1":               "France",
			"Ligue 2":               "France",
			"Eredivisie":            "Netherlands",
			"Eerste Divisie":        "Netherlands",
			"Liga Portugal Betclic": "Portugal",
			"Liga Portugal 2":       "Portugal",
			"Trendyol Süper Lig":    "Turkey",
			"Trendyol 1. Lig":       "Turkey",
			"MLS":                   "United States",
			"Saudi Pro League":      "Saudi Arabia",
		},

		Aliases: []LeagueAlias{
			{"premier league", "Premier League"},
			{"premier", "Premier League"},
			{"epl", "Premier League"},
			{"la liga", "La Liga"},
			{"serie a", "Serie A"},
			{"bundesliga", "Bundesliga"},
			{"ligue 1", "Ligue 1"},
			{"süper lig", "Trendyol Süper Lig"},
			{"super lig", "Trendyol Süper Lig"},
			{"eredivisie", "Eredivisie"},
			{"championship", "Championship"},
			{"liga portugal", "Liga Portugal Betclic"},
			{"major league soccer", "MLS"},
		},

		TeamKeywords: []TeamKeyword{
			// Premier League
			{"liverpool", "Premier League"},
			{"manchester", "Premier League"},
			{"arsenal", "Premier League"},
			{"chelsea", "Premier League"},
			{"tottenham", "Premier League"},
			{"newcastle", "Premier League"},
			{"west ham", "Premier League"},
			{"brighton", "Premier League"},
			// La Liga
			{"barcelona", "La Liga"},
			{"real madrid", "La Liga"},
			{"atletico", "La Liga"},
			{"valencia", "La Liga"},
			{"sevilla", "La Liga"},
			{"athletic", "La Liga"},
			{"real sociedad", "La Liga"},
			// Serie A
			{"juventus", "Serie A"},
			{"milan", "Serie A"},
			{"inter", "Serie A"},
			{"napoli", "Serie A"},
			{"roma", "Serie A"},
			{"lazio", "Serie A"},
			{"atalanta", "Serie A"},
			{"fiorentina", "Serie A"},
			// Bundesliga
			{"bayern", "Bundesliga"},
			{"dortmund", "Bundesliga"},
			{"leipzig", "Bundesliga"},
			{"leverkusen", "Bundesliga"},
			{"frankfurt", "Bundesliga"},
			{"wolfsburg", "Bundesliga"},
			// Ligue 1
			{"psg", "Ligue 1"},
			{"paris saint-germain", "Ligue 1"},
			{"marseille", "Ligue 1"},
			{"lyon", "Ligue 1"},
			{"monaco", "Ligue 1"},
			{"lille", "Ligue 1"},
			{"rennes", "Ligue 1"},
		},
	}
}
