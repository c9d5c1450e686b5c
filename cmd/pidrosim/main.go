// Command pidrosim plays bot-only Pidro games and reports the results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"pidro/internal/bot"
	"pidro/internal/config"
)

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not load .env", "error", err)
	}

	gamesFlag := flag.Int("games", 100, "number of games to play")
	workersFlag := flag.Int("workers", 4, "games played in parallel")
	seedFlag := flag.Int64("seed", time.Now().UnixNano(), "seed of the first game")
	configFlag := flag.String("config", os.Getenv("PIDRO_CONFIG"), "path to a game config JSON file")
	brainFlag := flag.String("brain", "random", "bot brain: random or first")
	verifyFlag := flag.Bool("verify", true, "replay every finished game from its event log")
	verboseFlag := flag.Bool("v", false, "print one row per game")
	flag.Parse()

	cfg := config.GetGameConfig()
	if *configFlag != "" {
		if err := config.LoadGameConfig(*configFlag); err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
		cfg = config.GetGameConfig()
	}
	overrides, err := cfg.ApplyEnv(environ("pidro_winning_score", "pidro_auto_rob"))
	if err != nil {
		logger.Warn("ignoring overrides", "error", err)
	}
	rules := overrides.Rules()
	if err := rules.Validate(); err != nil {
		logger.Error("invalid rules", "error", err)
		os.Exit(1)
	}

	opts := simOptions{
		Games:   *gamesFlag,
		Workers: *workersFlag,
		Seed:    *seedFlag,
		Level:   bot.ParseBotLevel(*brainFlag),
		Verify:  *verifyFlag,
		Rules:   rules,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "games", opts.Games, "workers", opts.Workers, "seed", opts.Seed, "brain", *brainFlag)
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d games", opts.Games))
	started := time.Now()
	results, err := runGames(ctx, opts)
	if err != nil {
		spinner.Fail(err.Error())
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
	spinner.Success(fmt.Sprintf("Played %d games in %s", len(results), time.Since(started).Round(time.Millisecond)))

	if *verboseFlag {
		if err := renderGames(results); err != nil {
			logger.Error("render", "error", err)
		}
	}
	if err := renderSummary(summarize(results)); err != nil {
		logger.Error("render", "error", err)
	}
}

// environ collects the named environment variables that are set.
func environ(keys ...string) map[string]string {
	env := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env
}

func renderGames(results []gameResult) error {
	data := pterm.TableData{{"Seed", "Winner", "North/South", "East/West", "Hands", "Sets", "Actions"}}
	for _, r := range results {
		data = append(data, []string{
			strconv.FormatInt(r.Seed, 10),
			r.Winner.String(),
			strconv.Itoa(r.Scores[0]),
			strconv.Itoa(r.Scores[1]),
			strconv.Itoa(r.Hands),
			strconv.Itoa(r.Sets),
			strconv.Itoa(r.Actions),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderSummary(s summary) error {
	if s.Games == 0 {
		pterm.Warning.Println("No games played")
		return nil
	}
	avg := func(n int) string { return strconv.FormatFloat(float64(n)/float64(s.Games), 'f', 1, 64) }
	data := pterm.TableData{
		{"Games", strconv.Itoa(s.Games)},
		{"North/South wins", strconv.Itoa(s.Wins[0])},
		{"East/West wins", strconv.Itoa(s.Wins[1])},
		{"Hands per game", avg(s.Hands)},
		{"Longest game (hands)", strconv.Itoa(s.MaxHands)},
		{"Bids set per game", avg(s.Sets)},
		{"Actions per game", avg(s.Actions)},
	}
	return pterm.DefaultTable.WithData(data).WithBoxed().Render()
}
