package planner

import (
	"time"

	"github.com/efreeman/polite-betrayal/api/pkg/hullbreach"
)

// RunRHEA is the rolling-horizon evolutionary alternative to Run's beam
// search (spec §6 `--strategy rhea`): instead of carrying a deduplicated
// frontier forward, it repeatedly rolls out a random legal-action sequence
// to the horizon and keeps the best rollout seen (deepest turn first, then
// highest score, by the same better() ordering Run uses), in the spirit of
// the teacher's HeuristicStrategy greedy-candidate scoring but applied to
// whole sequences rather than one order at a time.
func RunRHEA(initial *hullbreach.GameState, cfg Config, seed uint64) Result {
	rng := hullbreach.NewRNG(seed)
	m := initial.Map
	root := &Node{State: initial, Signature: initial.Signature()}
	best := root

	deadline := time.Now().Add(cfg.TimeLimit)
	horizon := cfg.MaxSteps
	if horizon <= 0 {
		horizon = 1
	}

	rollouts := cfg.BeamWidth
	if rollouts <= 0 {
		rollouts = 1
	}

	for r := 0; r < rollouts; r++ {
		if cfg.TimeLimit > 0 && time.Now().After(deadline) {
			break
		}

		cur := root
		for step := 0; step < horizon; step++ {
			if cur.State.Phase == hullbreach.PhaseVictory {
				break
			}
			player, ok := nextActingPlayer(cur.State)
			if !ok {
				break
			}
			actions, err := hullbreach.GetValidActions(cur.State, player)
			if err != nil || len(actions) == 0 {
				break
			}

			var candidates []hullbreach.Action
			for _, a := range actions {
				if !skip(a.Type) {
					candidates = append(candidates, a)
				}
			}
			if len(candidates) == 0 {
				break
			}
			action := candidates[rng.Intn(len(candidates))]

			child := buildChild(cur, player, action, cfg, m)
			if child == nil {
				break
			}
			cur = child

			if better(cur, best) {
				best = cur
			}
			if cur.State.Phase == hullbreach.PhaseVictory {
				return Result{Best: cur, Victory: true, StepsTaken: step + 1}
			}
		}
	}

	return Result{Best: best, StepsTaken: horizon}
}
