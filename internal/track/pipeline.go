package track

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/alfa-eta/dashboard/internal/geo"
	"github.com/alfa-eta/dashboard/internal/gps"
	"github.com/alfa-eta/dashboard/internal/serialio"
)

// DefaultReceiveBufSize matches the raw GPS receive window: large enough for
// a full NMEA burst, small enough to drain within one tick at 9600 baud.
const DefaultReceiveBufSize = 512

// ErrNotBound is returned when a pipeline is constructed without its serial
// port or one of its stages.
var ErrNotBound = errors.New("track: pipeline missing port or stage")

// Pipeline sequences decode → filter → project → heading → lap once per
// invocation and owns the shared MapState. It is the single writer of that
// record.
type Pipeline struct {
	port     serialio.Port
	filter   *geo.Filter
	viewport *Viewport
	lap      *LapTracker
	state    *MapState
	log      *zap.Logger

	buf     []byte
	timeout time.Duration

	// Previous offset pixel, used both as the heading guard and as the
	// atan2 reference. Updated only when the pixel actually moves.
	prevX, prevY int
}

// NewPipeline binds the pipeline stages. All arguments are required; a nil
// port, viewport, tracker or state fails fast rather than producing a
// partially bound pipeline.
func NewPipeline(port serialio.Port, viewport *Viewport, lap *LapTracker, state *MapState, timeout time.Duration, logger *zap.Logger) (*Pipeline, error) {
	if port == nil || viewport == nil || lap == nil || state == nil {
		return nil, ErrNotBound
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		port:     port,
		filter:   geo.NewFilter(geo.Position{}),
		viewport: viewport,
		lap:      lap,
		state:    state,
		log:      logger,
		buf:      make([]byte, DefaultReceiveBufSize),
		timeout:  timeout,
	}, nil
}

// Run executes one pipeline pass. It returns false when no fix was decoded
// this cycle, in which case the map state is left exactly as it was.
func (p *Pipeline) Run() bool {
	for i := range p.buf {
		p.buf[i] = 0
	}
	n, err := p.port.Receive(p.buf, p.timeout)
	if err != nil {
		p.log.Warn("gps receive failed", zap.Error(err))
		return false
	}

	fix, err := gps.DecodeRMC(p.buf[:n])
	if err != nil {
		// Expected between satellite locks; not worth logging per tick.
		return false
	}

	pos := p.filter.Update(geo.Position{Lat: fix.Latitude, Lon: fix.Longitude})
	rawX, rawY := p.viewport.Project(pos)
	x, y := p.viewport.Offset(rawX, rawY)
	p.state.PixelX = x
	p.state.PixelY = y

	if x != p.prevX || y != p.prevY {
		p.state.Heading = Heading(p.prevX, p.prevY, x, y)
		p.prevX = x
		p.prevY = y
	}

	p.state.Lap = p.lap.Update(pos)

	p.log.Debug("pipeline tick",
		zap.Float64("lat", pos.Lat),
		zap.Float64("lon", pos.Lon),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Int("heading", p.state.Heading),
		zap.Uint("lap", p.state.Lap),
	)
	return true
}

// State returns the shared map record the pipeline writes into.
func (p *Pipeline) State() *MapState {
	return p.state
}
