package track

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/alfa-eta/dashboard/internal/geo"
)

// CheckpointRadiusM is the capture radius around each checkpoint.
const CheckpointRadiusM = 5.0

// CheckpointCount is fixed: start/finish plus two intermediates.
const CheckpointCount = 3

// Lap tracker states and events.
const (
	lapNotStarted = "not_started"
	lapStarted    = "started"

	eventStart  = "start"
	eventFinish = "finish"
)

type checkpoint struct {
	pos     geo.Position
	reached bool
}

// LapTracker counts completed laps around a closed course of three
// checkpoints, where checkpoint 0 is the start/finish line. A lap increments
// only when the line is crossed with every checkpoint already reached, so
// crossing the line cold counts nothing.
//
// Checkpoints may be hit in any order once a lap has started; only the
// complete-set condition gates the increment. The source track never allows
// skipping a checkpoint without leaving the course, so no sequential
// ordering is enforced.
type LapTracker struct {
	machine *fsm.FSM
	cps     [CheckpointCount]checkpoint
	laps    uint
}

// NewLapTracker builds a tracker for the given checkpoint positions,
// positions[0] being the start/finish line.
func NewLapTracker(positions [CheckpointCount]geo.Position) *LapTracker {
	t := &LapTracker{}
	for i, p := range positions {
		t.cps[i] = checkpoint{pos: p}
	}
	t.machine = fsm.NewFSM(
		lapNotStarted,
		fsm.Events{
			{Name: eventStart, Src: []string{lapNotStarted}, Dst: lapStarted},
			{Name: eventFinish, Src: []string{lapStarted}, Dst: lapNotStarted},
		},
		fsm.Callbacks{},
	)
	return t
}

// Update feeds the current filtered position into the tracker and returns
// the lap count. The checkpoints are scanned in index order and only the
// first one within the capture radius is acted on.
func (t *LapTracker) Update(p geo.Position) uint {
	idx := -1
	for i := range t.cps {
		if geo.Distance(p, t.cps[i].pos) < CheckpointRadiusM {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t.laps
	}

	if idx == 0 {
		if t.machine.Current() == lapStarted {
			t.cps[0].reached = true
			if t.allReached() {
				t.laps++
			}
			_ = t.machine.Event(context.Background(), eventFinish)
		}
		// Either way the flags reset: crossing the line always arms a
		// fresh lap attempt.
		t.clearReached()
		return t.laps
	}

	t.cps[idx].reached = true
	if t.machine.Can(eventStart) {
		_ = t.machine.Event(context.Background(), eventStart)
	}
	return t.laps
}

// Laps returns the completed lap count.
func (t *LapTracker) Laps() uint {
	return t.laps
}

func (t *LapTracker) allReached() bool {
	for i := range t.cps {
		if !t.cps[i].reached {
			return false
		}
	}
	return true
}

func (t *LapTracker) clearReached() {
	for i := range t.cps {
		t.cps[i].reached = false
	}
}
