// scout-scraper is the command-line entry point: it scrapes football
// player profiles into MongoDB, league by league or one player at a time.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Emirken/scout-backend/internal/config"
	"github.com/Emirken/scout-backend/internal/pipeline"
	"github.com/Emirken/scout-backend/internal/report"
	"github.com/Emirken/scout-backend/internal/store"
	"github.com/Emirken/scout-backend/pkg/extract"
	"github.com/Emirken/scout-backend/pkg/scraper"
)

var bareIDRe = regexp.MustCompile(`^[a-f0-9]{8}$`)

// app bundles the wired components shared by the subcommands.
type app struct {
	cfg       *config.Settings
	catalog   *config.Catalog
	log       *zap.SugaredLogger
	extractor *extract.Extractor
	listings  *scraper.LeagueScraper
	store     *store.PlayerStore
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scout-scraper",
		Short:         "Scrape football player profiles into MongoDB",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAllCmd(),
		newLeagueCmd(),
		newPlayerCmd(),
		newUpdateCmd(),
		newStatsCmd(),
		newTestCmd(),
	)
	return root
}

// newApp loads settings and wires every component. withStore controls
// whether a MongoDB connection is established; the test subcommand runs
// without one.
func newApp(ctx context.Context, withStore bool) (*app, func(), error) {
	cfg := config.Load()
	catalog := config.DefaultCatalog()

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building logger")
	}
	log := logger.Sugar()

	fetcher := scraper.NewClient(scraper.ClientConfig{
		Timeout:        cfg.RequestTimeout,
		RequestsPerMin: cfg.RequestsPerMin,
		RetryDelay:     cfg.ScrapeDelay,
		UserAgents:     cfg.UserAgents,
		Logger:         log,
	})

	extractor := extract.New(extract.Config{
		Fetcher:         fetcher,
		BaseURL:         cfg.BaseURL,
		LeagueNames:     catalog.LeagueNames(),
		LeagueCountries: catalog.Countries,
		LeagueAliases:   toAliases(catalog.Aliases),
		TeamKeywords:    teamAliases(catalog.TeamKeywords),
		MinContractYear: cfg.MinContractYear,
		MaxContractYear: cfg.MaxContractYear,
		Logger:          log,
	})

	a := &app{
		cfg:       cfg,
		catalog:   catalog,
		log:       log,
		extractor: extractor,
		listings:  scraper.NewLeagueScraper(fetcher, cfg.BaseURL, catalog.ListingURLs, catalog.Countries, log),
	}

	cleanup := func() { _ = logger.Sync() }
	if !withStore {
		return a, cleanup, nil
	}

	playerStore, err := store.New(ctx, cfg.MongoURI, cfg.MongoDBName, cfg.MongoCollection, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	a.store = playerStore
	return a, func() {
		_ = playerStore.Close(context.Background())
		_ = logger.Sync()
	}, nil
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func toAliases(aliases []config.LeagueAlias) []extract.Alias {
	out := make([]extract.Alias, len(aliases))
	for i, a := range aliases {
		out[i] = extract.Alias{Keyword: a.Keyword, League: a.League}
	}
	return out
}

func teamAliases(keywords []config.TeamKeyword) []extract.Alias {
	out := make([]extract.Alias, len(keywords))
	for i, k := range keywords {
		out[i] = extract.Alias{Keyword: k.Keyword, League: k.League}
	}
	return out
}

func (a *app) newPipeline(skipExisting bool) *pipeline.Pipeline {
	return pipeline.New(pipeline.Config{
		Extractor:      a.extractor,
		Listings:       a.listings,
		Squads:         scraper.NewSquadSheetReader(a.cfg.RequestTimeout, a.log),
		Store:          a.store,
		SquadSheetURLs: a.cfg.SquadSheetURLs,
		Workers:        a.cfg.Workers,
		SkipExisting:   skipExisting,
		Logger:         a.log,
	})
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Scrape every catalogued league, skipping already-stored players",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, cleanup, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := a.newPipeline(true).ScrapeAll(ctx)
			if err != nil {
				return err
			}
			fmt.Println("Done:", summary)
			return nil
		},
	}
}

func newLeagueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "league <name>",
		Short: "Scrape a single league (name or alias, e.g. \"Premier League\" or \"epl\")",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, cleanup, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			league := a.extractor.MatchLeagueName(strings.Join(args, " "))
			if league == "" {
				return errors.Newf("unknown league %q", strings.Join(args, " "))
			}

			summary, err := a.newPipeline(true).ScrapeLeague(ctx, league)
			if err != nil {
				return err
			}
			fmt.Printf("Done scraping %s: %s\n", league, summary)
			return nil
		},
	}
}

func newPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <url-or-id>",
		Short: "Scrape a single player by profile URL or 8-character id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, cleanup, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			record, err := a.newPipeline(false).ScrapePlayerURL(ctx, a.playerURL(args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("Stored %s (%s), %s at %s\n", record.FullName, record.FbrefID, record.Position, record.Team)
			return nil
		},
	}
}

func newUpdateCmd() *cobra.Command {
	var league string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Re-scrape players already in the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, cleanup, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := a.store.ListPlayers(ctx, "", league)
			if err != nil {
				return err
			}

			pipe := a.newPipeline(false)
			updated, failed := 0, 0
			for _, record := range records {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				url := a.profileURL(record.FbrefID, record.FullName)
				if _, err := pipe.ScrapePlayerURL(ctx, url); err != nil {
					a.log.Errorw("update failed", "id", record.FbrefID, "name", record.FullName, "error", err)
					failed++
					continue
				}
				updated++
			}
			fmt.Printf("Updated %d players, %d failed\n", updated, failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&league, "league", "", "only update players from this league")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, cleanup, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			total, err := a.store.CountPlayers(ctx)
			if err != nil {
				return err
			}
			byLeague, err := a.store.CountByLeague(ctx)
			if err != nil {
				return err
			}
			report.PrintDatabaseStats(total, byLeague)

			if csvPath != "" {
				records, err := a.store.ListPlayers(ctx, "", "")
				if err != nil {
					return err
				}
				if err := report.SavePlayersToCSV(records, csvPath); err != nil {
					return err
				}
				fmt.Println("Exported", len(records), "players to", csvPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "also export all players to this CSV file")
	return cmd
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <url-or-id>",
		Short: "Scrape a single player and print the record without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, cleanup, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			record, err := a.extractor.ScrapePlayer(ctx, a.playerURL(args[0]), nil)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encoding record")
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

// playerURL accepts either a full profile URL or a bare 8-character id.
func (a *app) playerURL(arg string) string {
	if bareIDRe.MatchString(arg) {
		return fmt.Sprintf("%s/en/players/%s/", a.cfg.BaseURL, arg)
	}
	return arg
}

func (a *app) profileURL(fbrefID, fullName string) string {
	slug := strings.ReplaceAll(fullName, " ", "-")
	return fmt.Sprintf("%s/en/players/%s/%s", a.cfg.BaseURL, fbrefID, slug)
}
