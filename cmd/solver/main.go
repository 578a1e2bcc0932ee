// Command solver drives the planner headlessly against a fresh game: it
// plays the role the relay's connected players would, but as a single
// offline search rather than a socket session (spec §4.9, §6 Solver CLI).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/efreeman/polite-betrayal/api/internal/planner"
	"github.com/efreeman/polite-betrayal/api/internal/scorer"
	"github.com/efreeman/polite-betrayal/api/pkg/hullbreach"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		players   int
		seed      int64
		beamWidth int
		steps     int
		timeLimit float64
		strategy  string
		output    string
	)

	flag.IntVar(&players, "players", 2, "Number of players to seat before the game starts")
	flag.Int64Var(&seed, "seed", 0, "Game seed (0 = derived from the current time)")
	flag.IntVar(&beamWidth, "beam-width", 8, "Beam search width (rollout count for rhea)")
	flag.IntVar(&steps, "steps", 50, "Maximum search steps (search horizon for rhea)")
	flag.Float64Var(&timeLimit, "time-limit", 10, "Wall-clock search budget in seconds")
	flag.StringVar(&strategy, "strategy", "beam", "Search strategy: beam or rhea")
	flag.StringVar(&output, "output", "", "Write the result as JSON to this path (default: stdout)")
	flag.Parse()

	if strategy != "beam" && strategy != "rhea" {
		log.Fatal().Str("strategy", strategy).Msg("unknown strategy, expected beam or rhea")
	}

	gameSeed := uint64(seed)
	if seed == 0 {
		gameSeed = uint64(time.Now().UnixNano())
	}

	state := hullbreach.NewGame(gameSeed, hullbreach.LayoutStar)
	for i := 0; i < players; i++ {
		id := hullbreach.PlayerID(fmt.Sprintf("p%d", i+1))
		next, err := hullbreach.Apply(state, id, hullbreach.Action{Type: hullbreach.ActionJoin, Name: string(id)})
		if err != nil {
			log.Fatal().Err(err).Str("player", string(id)).Msg("failed to seat player")
		}
		state = next
	}
	state, err := hullbreach.Stabilize(state)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to stabilize initial state")
	}

	cfg := planner.Config{
		BeamWidth: beamWidth,
		MaxSteps:  steps,
		TimeLimit: time.Duration(timeLimit * float64(time.Second)),
		Weights:   scorer.DefaultWeights(),
	}

	log.Info().
		Int("players", players).
		Uint64("seed", gameSeed).
		Str("strategy", strategy).
		Int("beamWidth", beamWidth).
		Int("steps", steps).
		Msg("starting search")

	start := time.Now()
	var result planner.Result
	if strategy == "rhea" {
		result = planner.RunRHEA(state, cfg, gameSeed)
	} else {
		result = planner.Run(state, cfg)
	}
	elapsed := time.Since(start)

	log.Info().
		Bool("victory", result.Victory).
		Int("stepsTaken", result.StepsTaken).
		Dur("elapsed", elapsed).
		Float64("score", result.Best.Score).
		Msg("search finished")

	out := struct {
		Seed       uint64                `json:"seed"`
		Strategy   string                `json:"strategy"`
		Victory    bool                  `json:"victory"`
		StepsTaken int                   `json:"stepsTaken"`
		ElapsedMs  int64                 `json:"elapsedMs"`
		Score      float64               `json:"score"`
		Details    scorer.Details        `json:"details"`
		FinalState *hullbreach.GameState `json:"finalState"`
	}{
		Seed:       gameSeed,
		Strategy:   strategy,
		Victory:    result.Victory,
		StepsTaken: result.StepsTaken,
		ElapsedMs:  elapsed.Milliseconds(),
		Score:      result.Best.Score,
		Details:    result.Best.Details,
		FinalState: result.Best.State,
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			log.Fatal().Err(err).Str("path", output).Msg("failed to create output file")
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("failed to write output")
	}

	if !result.Victory {
		os.Exit(1)
	}
}
