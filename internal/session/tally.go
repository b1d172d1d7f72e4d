// Package session holds per-session quiz state.
package session

import (
	"sync"

	"github.com/ppiankov/trustbuddy/internal/model"
)

// SuccessProbability is the chance a simulated quiz run succeeds
const SuccessProbability = 0.7

const (
	successMessage = "TARGET ELIMINATED - Defensive maneuver successful!"
	failureMessage = "THREAT EVASION - Review protocols and try again"
)

// Tally counts quiz simulations for one session
type Tally struct {
	mu      sync.Mutex
	correct int
	total   int
}

// NewTally returns a tally in its initial {0, 0} state
func NewTally() *Tally {
	return &Tally{}
}

// Run records one simulated quiz attempt
func (t *Tally) Run(rng model.Rand) model.QuizOutcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	success := rng.Float64() < SuccessProbability
	msg := failureMessage
	if success {
		t.correct++
		msg = successMessage
	}

	return model.QuizOutcome{
		Success: success,
		Message: msg,
		Tally:   t.snapshotLocked(),
	}
}

// Accuracy returns correct/total; ok is false before the first run
func (t *Tally) Accuracy() (accuracy float64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.total == 0 {
		return 0, false
	}
	return float64(t.correct) / float64(t.total), true
}

// Snapshot returns a read-only copy of the tally
func (t *Tally) Snapshot() model.TallySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tally) snapshotLocked() model.TallySnapshot {
	snap := model.TallySnapshot{Correct: t.correct, Total: t.total}
	if t.total > 0 {
		acc := float64(t.correct) / float64(t.total)
		snap.Accuracy = &acc
	}
	return snap
}
