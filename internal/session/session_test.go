package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/trustbuddy/internal/model"
)

// seqRand replays Float64 draws in order
type seqRand struct {
	draws []float64
	i     int
}

func (s *seqRand) IntN(n int) int { return 0 }

func (s *seqRand) Float64() float64 {
	v := s.draws[s.i%len(s.draws)]
	s.i++
	return v
}

func TestTally_Initial(t *testing.T) {
	tally := NewTally()
	_, ok := tally.Accuracy()
	assert.False(t, ok, "accuracy is undefined before the first run")

	snap := tally.Snapshot()
	assert.Equal(t, 0, snap.Total)
	assert.Equal(t, 0, snap.Correct)
	assert.Nil(t, snap.Accuracy)
}

func TestTally_Run(t *testing.T) {
	tally := NewTally()
	rng := &seqRand{draws: []float64{0.1, 0.69, 0.7, 0.99}}

	outcomes := []model.QuizOutcome{
		tally.Run(rng), tally.Run(rng), tally.Run(rng), tally.Run(rng),
	}

	assert.True(t, outcomes[0].Success)
	assert.Equal(t, successMessage, outcomes[0].Message)
	assert.True(t, outcomes[1].Success)
	assert.False(t, outcomes[2].Success, "0.7 is not below the success probability")
	assert.Equal(t, failureMessage, outcomes[2].Message)
	assert.False(t, outcomes[3].Success)

	last := outcomes[3].Tally
	assert.Equal(t, 4, last.Total)
	assert.Equal(t, 2, last.Correct)
	require.NotNil(t, last.Accuracy)
	assert.InDelta(t, 0.5, *last.Accuracy, 1e-9)

	acc, ok := tally.Accuracy()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, acc, 1e-9)
}

func TestTally_Invariants(t *testing.T) {
	tally := NewTally()
	rng := model.NewRand(5)

	prev := tally.Snapshot()
	for i := 1; i <= 200; i++ {
		out := tally.Run(rng)
		require.Equal(t, i, out.Tally.Total)
		require.LessOrEqual(t, out.Tally.Correct, out.Tally.Total)
		require.GreaterOrEqual(t, out.Tally.Correct, prev.Correct)
		require.LessOrEqual(t, out.Tally.Correct-prev.Correct, 1)
		if out.Success {
			require.Equal(t, prev.Correct+1, out.Tally.Correct)
		}
		prev = out.Tally
	}
}

func TestTally_Concurrent(t *testing.T) {
	tally := NewTally()
	rng := model.NewRand(9)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tally.Run(rng)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, tally.Snapshot().Total)
}

func TestStore_Isolation(t *testing.T) {
	store := NewStore(time.Hour, time.Minute)
	rng := model.NewRand(3)

	a, b := NewID(), NewID()
	require.NotEqual(t, a, b)

	store.Get(a).Run(rng)
	store.Get(a).Run(rng)
	store.Get(b).Run(rng)

	assert.Equal(t, 2, store.Get(a).Snapshot().Total)
	assert.Equal(t, 1, store.Get(b).Snapshot().Total)
	assert.Equal(t, 2, store.Len())

	store.End(a)
	assert.Equal(t, 0, store.Get(a).Snapshot().Total, "ended session starts over")
}

func TestStore_IdleExpiry(t *testing.T) {
	store := NewStore(30*time.Millisecond, 0)
	id := NewID()
	store.Get(id).Run(model.NewRand(1))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, store.Get(id).Snapshot().Total)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("not-a-uuid"))
}
