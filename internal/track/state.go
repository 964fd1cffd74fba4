// Package track turns filtered GPS positions into map-screen state: pixel
// offsets for the scrolling background, the icon rotation angle, and the lap
// counter.
package track

// MapState is the shared per-tick output of the geo pipeline. It has a
// single writer (the pipeline) and is read by the display sync engine.
// PixelX/PixelY always lie inside the configured clamp window and Heading is
// always in [0,360).
type MapState struct {
	PixelX  int  `json:"x"`
	PixelY  int  `json:"y"`
	Heading int  `json:"heading"`
	Lap     uint `json:"lap"`
}
