package track

import (
	"testing"

	"github.com/alfa-eta/dashboard/internal/geo"
)

// Test geometry taken from the real track map asset.
func testViewportConfig() ViewportConfig {
	return ViewportConfig{
		NorthWest:   geo.Position{Lat: 40.824772493, Lon: 29.417859918},
		SouthEast:   geo.Position{Lat: 40.822593887, Lon: 29.420935394},
		MapWidthPx:  800,
		MapHeightPx: 480,
		IconX:       400,
		IconY:       240,
		IconWidth:   32,
		IconHeight:  32,
		MinOffsetX:  0,
		MaxOffsetX:  450,
		MinOffsetY:  -270,
		MaxOffsetY:  0,
	}
}

func TestProjectNorthWestCorner(t *testing.T) {
	v, err := NewViewport(testViewportConfig())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	x, y := v.Project(testViewportConfig().NorthWest)
	if x != 0 || y != 0 {
		t.Fatalf("NW corner: expected (0,0), got (%d,%d)", x, y)
	}
}

func TestProjectSouthEastCorner(t *testing.T) {
	cfg := testViewportConfig()
	v, err := NewViewport(cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	x, y := v.Project(cfg.SouthEast)
	if x != cfg.MapWidthPx || y != cfg.MapHeightPx {
		t.Fatalf("SE corner: expected (%d,%d), got (%d,%d)", cfg.MapWidthPx, cfg.MapHeightPx, x, y)
	}
}

func TestOffsetClampsToWindow(t *testing.T) {
	cfg := testViewportConfig()
	v, err := NewViewport(cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Positions far outside the bounding box must saturate, not wrap.
	cases := []geo.Position{
		{Lat: 41.5, Lon: 28.0},  // far northwest
		{Lat: 40.0, Lon: 31.0},  // far southeast
		{Lat: -40.8, Lon: 29.4}, // wrong hemisphere entirely
		cfg.NorthWest,
		cfg.SouthEast,
	}
	for _, p := range cases {
		x, y := v.Offset(v.Project(p))
		if x < cfg.MinOffsetX || x > cfg.MaxOffsetX {
			t.Fatalf("position %+v: x=%d outside [%d,%d]", p, x, cfg.MinOffsetX, cfg.MaxOffsetX)
		}
		if y < cfg.MinOffsetY || y > cfg.MaxOffsetY {
			t.Fatalf("position %+v: y=%d outside [%d,%d]", p, y, cfg.MinOffsetY, cfg.MaxOffsetY)
		}
	}
}

func TestOffsetCentersIcon(t *testing.T) {
	cfg := testViewportConfig()
	v, err := NewViewport(cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// An in-window raw pixel maps to icon anchor + half size - raw.
	x, y := v.Offset(200, 300)
	if want := 400 + 16 - 200; x != want {
		t.Fatalf("x: expected %d, got %d", want, x)
	}
	if want := 240 + 16 - 300; y != want {
		t.Fatalf("y: expected %d, got %d", want, y)
	}
}

func TestNewViewportRejectsDegenerateBounds(t *testing.T) {
	cfg := testViewportConfig()
	cfg.SouthEast.Lon = cfg.NorthWest.Lon
	if _, err := NewViewport(cfg); err == nil {
		t.Fatalf("expected error for degenerate longitude bounds")
	}

	cfg = testViewportConfig()
	cfg.SouthEast.Lat = cfg.NorthWest.Lat
	if _, err := NewViewport(cfg); err == nil {
		t.Fatalf("expected error for degenerate latitude bounds")
	}
}
