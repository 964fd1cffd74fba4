package nextion

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alfa-eta/dashboard/internal/scale"
	"github.com/alfa-eta/dashboard/internal/serialio"
	"github.com/alfa-eta/dashboard/internal/track"
)

var (
	// ErrNotBound is returned when the dashboard is constructed without a
	// serial port or a value source.
	ErrNotBound = errors.New("nextion: missing port or source")

	// ErrHandshakeFailed is returned when the display never answers "OK"
	// within the configured attempts.
	ErrHandshakeFailed = errors.New("nextion: display handshake failed")

	// ErrOutOfRange is returned when a progress-bar value lies outside its
	// configured domain.
	ErrOutOfRange = errors.New("nextion: value outside display range")
)

// Source exposes the live telemetry values the dashboard mirrors onto the
// display. The sync engine depends on this capability rather than on
// pointers into caller memory, so tests can bind synthetic sources.
type Source interface {
	Speed() int       // km/h
	Battery() int     // percent
	PowerKW() int     // kW
	PackVoltage() int // 0.01 V units
	MaxVoltage() int  // 0.01 V units
	MinVoltage() int  // 0.01 V units
	BatteryTemp() int // 0.01 °C units
	Gear() Gear
	Handbrake() bool
	SignalLeft() bool
	SignalRight() bool
	ConnWarning() bool
	BattWarning() bool
	Lights() bool
	Map() track.MapState
}

// BarDomain is the accepted input range of a progress-bar field. Reverse
// inverts the fill so the bar drains as the value rises.
type BarDomain struct {
	Min     int
	Max     int
	Reverse bool
}

// Config carries the tunable parts of the display protocol.
type Config struct {
	HandshakeAttempts int
	HandshakeTimeout  time.Duration
	BatteryBar        BarDomain
	PowerBar          BarDomain
}

// DefaultConfig mirrors the display page: battery bar over the full percent
// range, power bar over the 0-6 kW drivetrain limit with a reversed fill.
func DefaultConfig() Config {
	return Config{
		HandshakeAttempts: 10,
		HandshakeTimeout:  2 * time.Second,
		BatteryBar:        BarDomain{Min: 0, Max: 100},
		PowerBar:          BarDomain{Min: 0, Max: 6, Reverse: true},
	}
}

// cachedValues shadows every bound field with the last value transmitted for
// it. The zero value matches the display's power-on page, so nothing is sent
// until a field actually diverges.
type cachedValues struct {
	speed       int
	battery     int
	powerKW     int
	packVoltage int
	maxVoltage  int
	minVoltage  int
	batteryTemp int
	mapState    track.MapState
	gear        Gear
	handbrake   bool
	signalLeft  bool
	signalRight bool
	connWarning bool
	battWarning bool
	lights      bool
}

// Dashboard diffs a bound Source against its cache and emits only the
// changed fields as display commands.
type Dashboard struct {
	port serialio.Port
	src  Source
	cfg  Config
	log  *zap.Logger
	prev cachedValues
}

// New binds the dashboard to a serial channel and a value source. Both are
// required; binding never proceeds partially.
func New(port serialio.Port, src Source, cfg Config, logger *zap.Logger) (*Dashboard, error) {
	if port == nil || src == nil {
		return nil, ErrNotBound
	}
	def := DefaultConfig()
	if cfg.HandshakeAttempts <= 0 {
		cfg.HandshakeAttempts = def.HandshakeAttempts
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = def.HandshakeTimeout
	}
	if cfg.BatteryBar == (BarDomain{}) {
		cfg.BatteryBar = def.BatteryBar
	}
	if cfg.PowerBar == (BarDomain{}) {
		cfg.PowerBar = def.PowerBar
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{port: port, src: src, cfg: cfg, log: logger}, nil
}

// Handshake confirms the display is listening: it sends the connection
// command and waits for the literal "OK" reply, retrying up to the
// configured attempt count.
func (d *Dashboard) Handshake() error {
	reply := make([]byte, 2)
	for i := 0; i < d.cfg.HandshakeAttempts; i++ {
		if err := d.sendCommand(CmdConnectionOK); err != nil {
			return err
		}
		reply[0], reply[1] = 0, 0
		if _, err := d.port.Receive(reply, d.cfg.HandshakeTimeout); err != nil {
			return err
		}
		if bytes.Equal(reply, []byte("OK")) {
			d.log.Info("display connected", zap.Int("attempt", i+1))
			return nil
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrHandshakeFailed, d.cfg.HandshakeAttempts)
}

// Refresh sends every field whose current value differs from the last value
// transmitted, then updates the cache. A progress-bar value outside its
// domain aborts the refresh immediately, so fields later in the order are
// not updated that tick; the caller retries next tick with state intact.
func (d *Dashboard) Refresh() error {
	if v := d.src.Speed(); v != d.prev.speed {
		if err := d.sendInt(CmdSpeed, v); err != nil {
			return err
		}
		d.prev.speed = v
	}

	if v := d.src.Battery(); v != d.prev.battery {
		if err := d.cfg.BatteryBar.check(v); err != nil {
			return err
		}
		if err := d.sendInt(CmdBatteryNumber, v); err != nil {
			return err
		}
		if err := d.sendBar(CmdBatteryBar, v, d.cfg.BatteryBar); err != nil {
			return err
		}
		d.prev.battery = v
	}

	if v := d.src.PowerKW(); v != d.prev.powerKW {
		if err := d.cfg.PowerBar.check(v); err != nil {
			return err
		}
		if err := d.sendInt(CmdPowerNumber, v); err != nil {
			return err
		}
		if err := d.sendBar(CmdPowerBar, v, d.cfg.PowerBar); err != nil {
			return err
		}
		d.prev.powerKW = v
	}

	if v := d.src.PackVoltage(); v != d.prev.packVoltage {
		if err := d.sendInt(CmdPackVoltage, v); err != nil {
			return err
		}
		d.prev.packVoltage = v
	}

	if v := d.src.MaxVoltage(); v != d.prev.maxVoltage {
		if err := d.sendInt(CmdMaxVoltage, v); err != nil {
			return err
		}
		d.prev.maxVoltage = v
	}

	if v := d.src.MinVoltage(); v != d.prev.minVoltage {
		if err := d.sendInt(CmdMinVoltage, v); err != nil {
			return err
		}
		d.prev.minVoltage = v
	}

	if v := d.src.BatteryTemp(); v != d.prev.batteryTemp {
		if err := d.sendInt(CmdBatteryTemp, v); err != nil {
			return err
		}
		d.prev.batteryTemp = v
	}

	m := d.src.Map()
	if m.PixelX != d.prev.mapState.PixelX {
		if err := d.sendInt(CmdMapX, m.PixelX); err != nil {
			return err
		}
		d.prev.mapState.PixelX = m.PixelX
	}
	if m.PixelY != d.prev.mapState.PixelY {
		if err := d.sendInt(CmdMapY, m.PixelY); err != nil {
			return err
		}
		d.prev.mapState.PixelY = m.PixelY
	}
	if m.Heading != d.prev.mapState.Heading {
		if err := d.sendInt(CmdMapIcon, m.Heading); err != nil {
			return err
		}
		d.prev.mapState.Heading = m.Heading
	}
	if m.Lap != d.prev.mapState.Lap {
		if err := d.sendInt(CmdMapLap, int(m.Lap)); err != nil {
			return err
		}
		d.prev.mapState.Lap = m.Lap
	}

	if v := d.src.Gear(); v != d.prev.gear {
		var cmd Command
		switch v {
		case GearDrive:
			cmd = CmdGearDrive
		case GearReverse:
			cmd = CmdGearReverse
		default:
			cmd = CmdGearNeutral
		}
		if err := d.sendCommand(cmd); err != nil {
			return err
		}
		d.prev.gear = v
	}

	if v := d.src.Handbrake(); v != d.prev.handbrake {
		if err := d.sendToggle(v, CmdHandbrakeOn, CmdHandbrakeOff); err != nil {
			return err
		}
		d.prev.handbrake = v
	}

	if v := d.src.SignalLeft(); v != d.prev.signalLeft {
		if err := d.sendToggle(v, CmdSignalLeftOn, CmdSignalLeftOff); err != nil {
			return err
		}
		d.prev.signalLeft = v
	}

	if v := d.src.SignalRight(); v != d.prev.signalRight {
		if err := d.sendToggle(v, CmdSignalRightOn, CmdSignalRightOff); err != nil {
			return err
		}
		d.prev.signalRight = v
	}

	if v := d.src.ConnWarning(); v != d.prev.connWarning {
		if err := d.sendToggle(v, CmdConnWarningOn, CmdConnWarningOff); err != nil {
			return err
		}
		d.prev.connWarning = v
	}

	if v := d.src.BattWarning(); v != d.prev.battWarning {
		if err := d.sendToggle(v, CmdBattWarningOn, CmdBattWarningOff); err != nil {
			return err
		}
		d.prev.battWarning = v
	}

	if v := d.src.Lights(); v != d.prev.lights {
		if err := d.sendToggle(v, CmdLightsOn, CmdLightsOff); err != nil {
			return err
		}
		d.prev.lights = v
	}

	return nil
}

func (d *Dashboard) sendToggle(on bool, onCmd, offCmd Command) error {
	if on {
		return d.sendCommand(onCmd)
	}
	return d.sendCommand(offCmd)
}

func (d *Dashboard) sendCommand(c Command) error {
	return d.send(commandText[c])
}

func (d *Dashboard) sendInt(c IntCommand, v int) error {
	return d.send(fmt.Sprintf(intCommandText[c], v))
}

func (dom BarDomain) check(val int) error {
	if val < dom.Min || val > dom.Max {
		return fmt.Errorf("%w: %d outside [%d,%d]", ErrOutOfRange, val, dom.Min, dom.Max)
	}
	return nil
}

// sendBar validates the raw value against its domain, rescales it to the
// display's 0-100 bar range, and transmits it.
func (d *Dashboard) sendBar(c IntCommand, val int, dom BarDomain) error {
	if err := dom.check(val); err != nil {
		return err
	}
	mapped, err := scale.MapInt(val, dom.Min, dom.Max, 0, 100)
	if err != nil {
		return err
	}
	if dom.Reverse {
		mapped = 100 - mapped
	}
	return d.sendInt(c, mapped)
}

func (d *Dashboard) send(cmd string) error {
	frame := make([]byte, 0, len(cmd)+len(terminator))
	frame = append(frame, cmd...)
	frame = append(frame, terminator...)
	if err := d.port.Transmit(frame); err != nil {
		return err
	}
	d.log.Debug("nextion command", zap.String("cmd", cmd))
	return nil
}
