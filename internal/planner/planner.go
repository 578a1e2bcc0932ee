// Package planner implements the beam-search planner (spec §4.9): a
// frontier of immutable node handles expanded data-parallel across
// workers, deduplicated by canonical signature, and truncated to a fixed
// beam width each step.
package planner

import (
	"sort"
	"sync"
	"time"

	"github.com/efreeman/polite-betrayal/api/internal/scorer"
	"github.com/efreeman/polite-betrayal/api/pkg/hullbreach"
)

// Node is one search frontier member. Parent is an immutable handle so the
// recent-action window the scorer needs can be reconstructed lazily by
// walking back, rather than threading a growing history slice through every
// child (spec §4.9 "history_len").
type Node struct {
	State      *hullbreach.GameState
	Parent     *Node
	LastPlayer hullbreach.PlayerID
	LastAction hullbreach.Action
	Score      float64
	Details    scorer.Details
	Signature  string
	HistoryLen int
}

// RecentHistory walks back up to k ancestors and returns their actions in
// chronological order, the input scorer.antiOscillation needs.
func (n *Node) RecentHistory(k int) []scorer.HistoryEntry {
	var rev []scorer.HistoryEntry
	cur := n
	for cur != nil && cur.Parent != nil && len(rev) < k {
		rev = append(rev, scorer.HistoryEntry{Player: cur.LastPlayer, Action: cur.LastAction.Type, Room: cur.LastAction.TargetRoom})
		cur = cur.Parent
	}
	out := make([]scorer.HistoryEntry, len(rev))
	for i, h := range rev {
		out[len(rev)-1-i] = h
	}
	return out
}

// Config tunes the search (spec §6 Solver CLI flags map onto these).
type Config struct {
	BeamWidth int
	MaxSteps  int
	TimeLimit time.Duration
	Weights   scorer.Weights
}

// Result is what Run returns: the best node found, which may or may not be
// Victory if the step or time budget ran out first (spec §4.9 step 5).
type Result struct {
	Best       *Node
	Victory    bool
	StepsTaken int
}

// Run drives the beam search from an initial, already-stabilized state.
func Run(initial *hullbreach.GameState, cfg Config) Result {
	if cfg.BeamWidth <= 0 {
		cfg.BeamWidth = 1
	}
	m := initial.Map
	root := &Node{State: initial, Signature: initial.Signature()}
	bestPartial := root

	beam := []*Node{root}
	deadline := time.Now().Add(cfg.TimeLimit)

	for step := 0; cfg.MaxSteps <= 0 || step < cfg.MaxSteps; step++ {
		for _, n := range beam {
			if n.State.Phase == hullbreach.PhaseVictory {
				return Result{Best: n, Victory: true, StepsTaken: step}
			}
		}
		if cfg.TimeLimit > 0 && time.Now().After(deadline) {
			return Result{Best: bestPartial, StepsTaken: step}
		}

		children := expand(beam, cfg, m)
		if len(children) == 0 {
			return Result{Best: bestPartial, StepsTaken: step}
		}

		deduped := dedupe(children)
		sort.Slice(deduped, func(i, j int) bool {
			if deduped[i].Score != deduped[j].Score {
				return deduped[i].Score > deduped[j].Score
			}
			return deduped[i].Signature < deduped[j].Signature
		})
		if len(deduped) > cfg.BeamWidth {
			deduped = deduped[:cfg.BeamWidth]
		}
		beam = deduped

		for _, n := range beam {
			if better(n, bestPartial) {
				bestPartial = n
			}
		}
	}

	return Result{Best: bestPartial, StepsTaken: cfg.MaxSteps}
}

// better implements the "deepest-turn, highest-score" best-partial update
// rule (spec §4.9 step 5).
func better(n, cur *Node) bool {
	if n.State.TurnCount != cur.State.TurnCount {
		return n.State.TurnCount > cur.State.TurnCount
	}
	return n.Score > cur.Score
}

// expand fans every node's legal-action set out across worker goroutines,
// one goroutine per (node, action) pair, and collects results through a
// buffered channel (spec §5 "data-parallel... merged via deterministic
// sort").
func expand(beam []*Node, cfg Config, m *hullbreach.ShipMap) []*Node {
	type job struct {
		node   *Node
		player hullbreach.PlayerID
		action hullbreach.Action
	}

	var jobs []job
	for _, n := range beam {
		player, ok := nextActingPlayer(n.State)
		if !ok {
			continue
		}
		actions, err := hullbreach.GetValidActions(n.State, player)
		if err != nil {
			continue
		}
		for _, a := range actions {
			if skip(a.Type) {
				continue
			}
			jobs = append(jobs, job{node: n, player: player, action: a})
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	results := make(chan *Node, len(jobs))
	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			child := buildChild(j.node, j.player, j.action, cfg, m)
			if child != nil {
				results <- child
			}
		}(j)
	}
	wg.Wait()
	close(results)

	out := make([]*Node, 0, len(jobs))
	for n := range results {
		out = append(out, n)
	}
	return out
}

// skip excludes the action types the spec says never generate a planner
// child directly (spec §4.9 step 2): Undo and Chat are not plans, VoteReady
// is implicit in the driver's auto-ready behavior.
func skip(t hullbreach.ActionType) bool {
	return t == hullbreach.ActionUndo || t == hullbreach.ActionChat || t == hullbreach.ActionVoteReady
}

// nextActingPlayer finds the next unready player with AP > 0 by sorted id
// (spec §4.9 step 2).
func nextActingPlayer(s *hullbreach.GameState) (hullbreach.PlayerID, bool) {
	if s.Phase != hullbreach.PhaseTacticalPlanning {
		return "", false
	}
	for _, id := range s.SortedPlayerIDs() {
		p := s.Players[id]
		if !p.IsReady && p.AP > 0 {
			return id, true
		}
	}
	return "", false
}

// buildChild applies action, runs it through the driver to reach the next
// decision point, and scores the result. A child whose action turns out to
// be illegal (a stale projection) is simply not generated (spec §7).
func buildChild(parent *Node, player hullbreach.PlayerID, action hullbreach.Action, cfg Config, m *hullbreach.ShipMap) *Node {
	next, err := hullbreach.Apply(parent.State, player, action)
	if err != nil {
		return nil
	}
	next, err = hullbreach.Stabilize(next)
	if err != nil {
		return nil
	}

	child := &Node{
		State:      next,
		Parent:     parent,
		LastPlayer: player,
		LastAction: action,
		Signature:  next.Signature(),
		HistoryLen: parent.HistoryLen + 1,
	}
	recent := child.RecentHistory(cfg.Weights.OscillationWindow)
	score, details := scorer.Score(parent.State, next, recent, cfg.Weights, m)
	child.Score = score
	child.Details = details
	return child
}

// dedupe collapses children sharing a signature, keeping the one with
// strictly more total AP, and on tie the one with strictly higher score
// (spec §4.9 step 3).
func dedupe(children []*Node) []*Node {
	best := make(map[string]*Node, len(children))
	for _, n := range children {
		cur, ok := best[n.Signature]
		if !ok {
			best[n.Signature] = n
			continue
		}
		if n.State.TotalAP() > cur.State.TotalAP() {
			best[n.Signature] = n
			continue
		}
		if n.State.TotalAP() == cur.State.TotalAP() && n.Score > cur.Score {
			best[n.Signature] = n
		}
	}
	out := make([]*Node, 0, len(best))
	for _, n := range best {
		out = append(out, n)
	}
	return out
}
