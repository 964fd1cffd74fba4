package track

import (
	"fmt"

	"github.com/alfa-eta/dashboard/internal/geo"
	"github.com/alfa-eta/dashboard/internal/scale"
)

// ViewportConfig describes the fixed map image and its screen placement.
type ViewportConfig struct {
	// Geographic corners of the map image.
	NorthWest geo.Position
	SouthEast geo.Position

	// Map image size in pixels.
	MapWidthPx  int
	MapHeightPx int

	// Vehicle icon anchor and size on the display page.
	IconX      int
	IconY      int
	IconWidth  int
	IconHeight int

	// Legal offset window for the scrollable background image.
	MinOffsetX int
	MaxOffsetX int
	MinOffsetY int
	MaxOffsetY int
}

// Viewport converts filtered decimal-degree positions into clamped pixel
// offsets for the background image.
type Viewport struct {
	cfg ViewportConfig
}

// NewViewport validates the geographic bounds so the projection can never
// divide by a zero-width interval.
func NewViewport(cfg ViewportConfig) (*Viewport, error) {
	if cfg.NorthWest.Lon == cfg.SouthEast.Lon {
		return nil, fmt.Errorf("viewport: degenerate longitude bounds %v", cfg.NorthWest.Lon)
	}
	if cfg.NorthWest.Lat == cfg.SouthEast.Lat {
		return nil, fmt.Errorf("viewport: degenerate latitude bounds %v", cfg.NorthWest.Lat)
	}
	return &Viewport{cfg: cfg}, nil
}

// Project maps a position linearly into raw map-image pixels: the northwest
// corner lands on (0,0), the southeast corner on (MapWidthPx, MapHeightPx).
// The result is unclamped; positions outside the bounding box project
// outside the image.
func (v *Viewport) Project(p geo.Position) (x, y int) {
	// Bounds are validated in NewViewport, so MapFloat cannot fail here.
	fx, _ := scale.MapFloat(p.Lon, v.cfg.NorthWest.Lon, v.cfg.SouthEast.Lon, 0, float64(v.cfg.MapWidthPx))
	fy, _ := scale.MapFloat(p.Lat, v.cfg.NorthWest.Lat, v.cfg.SouthEast.Lat, 0, float64(v.cfg.MapHeightPx))
	return int(fx), int(fy)
}

// Offset translates a raw map pixel into the background image offset that
// centers the icon over it, then saturates at the window edges. Out-of-window
// positions clamp rather than wrap, so a vehicle leaving the mapped area
// pins the map at its edge.
func (v *Viewport) Offset(rawX, rawY int) (x, y int) {
	x = v.cfg.IconX + v.cfg.IconWidth/2 - rawX
	if x < v.cfg.MinOffsetX {
		x = v.cfg.MinOffsetX
	} else if x > v.cfg.MaxOffsetX {
		x = v.cfg.MaxOffsetX
	}

	y = v.cfg.IconY + v.cfg.IconHeight/2 - rawY
	if y < v.cfg.MinOffsetY {
		y = v.cfg.MinOffsetY
	} else if y > v.cfg.MaxOffsetY {
		y = v.cfg.MaxOffsetY
	}
	return x, y
}
