package track

import (
	"testing"

	"github.com/alfa-eta/dashboard/internal/geo"
)

func testCheckpoints() [CheckpointCount]geo.Position {
	return [CheckpointCount]geo.Position{
		{Lat: 40.8240, Lon: 29.4185}, // start/finish
		{Lat: 40.8235, Lon: 29.4200},
		{Lat: 40.8230, Lon: 29.4190},
	}
}

// awayFromCheckpoints is a position on the course well outside every capture
// radius.
var awayFromCheckpoints = geo.Position{Lat: 40.82375, Lon: 29.41925}

func TestLapCompletesAfterAllCheckpoints(t *testing.T) {
	cps := testCheckpoints()
	tr := NewLapTracker(cps)

	tr.Update(cps[1])
	tr.Update(awayFromCheckpoints)
	tr.Update(cps[2])
	tr.Update(awayFromCheckpoints)
	got := tr.Update(cps[0])

	if got != 1 {
		t.Fatalf("expected 1 lap, got %d", got)
	}

	// Flags were cleared: crossing the line again without re-visiting the
	// intermediates must not count.
	tr.Update(awayFromCheckpoints)
	tr.Update(cps[1])
	if got := tr.Update(cps[0]); got != 1 {
		t.Fatalf("incomplete second lap counted: got %d", got)
	}
}

func TestStartFinishFirstCountsNothing(t *testing.T) {
	cps := testCheckpoints()
	tr := NewLapTracker(cps)

	if got := tr.Update(cps[0]); got != 0 {
		t.Fatalf("cold start/finish crossing counted a lap: %d", got)
	}

	// A full circuit afterwards still counts exactly one.
	tr.Update(cps[1])
	tr.Update(cps[2])
	if got := tr.Update(cps[0]); got != 1 {
		t.Fatalf("expected 1 lap after full circuit, got %d", got)
	}
}

func TestCheckpointsOrderIndependent(t *testing.T) {
	cps := testCheckpoints()
	tr := NewLapTracker(cps)

	// Reverse intermediate order: only the complete set gates the lap.
	tr.Update(cps[2])
	tr.Update(cps[1])
	if got := tr.Update(cps[0]); got != 1 {
		t.Fatalf("expected 1 lap, got %d", got)
	}
}

func TestPositionsOffCourseAreIgnored(t *testing.T) {
	tr := NewLapTracker(testCheckpoints())

	for i := 0; i < 10; i++ {
		if got := tr.Update(awayFromCheckpoints); got != 0 {
			t.Fatalf("off-course position changed lap count: %d", got)
		}
	}
	if tr.Laps() != 0 {
		t.Fatalf("expected 0 laps, got %d", tr.Laps())
	}
}
