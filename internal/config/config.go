// Package config loads the dashboard configuration from a YAML file. All
// values are fixed at startup; nothing here is runtime state.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alfa-eta/dashboard/internal/geo"
)

// Duration wraps time.Duration so YAML values can use the usual Go duration
// syntax ("300ms", "2s").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	Tick    Duration      `yaml:"tick_interval"`
	GPS     GPSConfig     `yaml:"gps"`
	Display DisplayConfig `yaml:"display"`
	Map     MapConfig     `yaml:"map"`
	Track   TrackConfig   `yaml:"track"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Web     WebConfig     `yaml:"web"`
}

type GPSConfig struct {
	Device         string   `yaml:"device"`
	BaudRate       int      `yaml:"baud_rate"`
	ReceiveTimeout Duration `yaml:"receive_timeout"`
}

type DisplayConfig struct {
	Device            string    `yaml:"device"`
	BaudRate          int       `yaml:"baud_rate"`
	HandshakeAttempts int       `yaml:"handshake_attempts"`
	HandshakeTimeout  Duration  `yaml:"handshake_timeout"`
	BatteryBar        BarConfig `yaml:"battery_bar"`
	PowerBar          BarConfig `yaml:"power_bar"`
}

type BarConfig struct {
	Min     int  `yaml:"min"`
	Max     int  `yaml:"max"`
	Reverse bool `yaml:"reverse"`
}

type MapConfig struct {
	NorthWest  geo.Position `yaml:"north_west"`
	SouthEast  geo.Position `yaml:"south_east"`
	WidthPx    int          `yaml:"width_px"`
	HeightPx   int          `yaml:"height_px"`
	IconX      int          `yaml:"icon_x"`
	IconY      int          `yaml:"icon_y"`
	IconWidth  int          `yaml:"icon_width"`
	IconHeight int          `yaml:"icon_height"`
	MinOffsetX int          `yaml:"min_offset_x"`
	MaxOffsetX int          `yaml:"max_offset_x"`
	MinOffsetY int          `yaml:"min_offset_y"`
	MaxOffsetY int          `yaml:"max_offset_y"`
}

type TrackConfig struct {
	// Exactly three checkpoints; the first is the start/finish line.
	Checkpoints []geo.Position `yaml:"checkpoints"`
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration matching the current vehicle and track.
func Default() Config {
	return Config{
		Tick: Duration(300 * time.Millisecond),
		GPS: GPSConfig{
			Device:         "/dev/ttyAMA1",
			BaudRate:       9600,
			ReceiveTimeout: Duration(time.Second),
		},
		Display: DisplayConfig{
			Device:            "/dev/ttyAMA2",
			BaudRate:          115200,
			HandshakeAttempts: 10,
			HandshakeTimeout:  Duration(2 * time.Second),
			BatteryBar:        BarConfig{Min: 0, Max: 100},
			PowerBar:          BarConfig{Min: 0, Max: 6, Reverse: true},
		},
		Map: MapConfig{
			NorthWest:  geo.Position{Lat: 40.824772493, Lon: 29.417859918},
			SouthEast:  geo.Position{Lat: 40.822593887, Lon: 29.420935394},
			WidthPx:    800,
			HeightPx:   480,
			IconX:      400,
			IconY:      240,
			IconWidth:  32,
			IconHeight: 32,
			MinOffsetX: 0,
			MaxOffsetX: 450,
			MinOffsetY: -270,
			MaxOffsetY: 0,
		},
		Track: TrackConfig{
			Checkpoints: []geo.Position{
				{Lat: 40.824050, Lon: 29.418500},
				{Lat: 40.823500, Lon: 29.420000},
				{Lat: 40.823000, Lon: 29.419000},
			},
		},
		MQTT: MQTTConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "dashboard",
			Topic:    "dashboard/telemetry",
		},
		Web: WebConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.GPS.Device == "" {
		return fmt.Errorf("gps.device is required")
	}
	if c.GPS.BaudRate <= 0 {
		return fmt.Errorf("gps.baud_rate must be positive")
	}
	if c.Display.Device == "" {
		return fmt.Errorf("display.device is required")
	}
	if c.Display.BaudRate <= 0 {
		return fmt.Errorf("display.baud_rate must be positive")
	}
	if c.Map.NorthWest.Lon == c.Map.SouthEast.Lon || c.Map.NorthWest.Lat == c.Map.SouthEast.Lat {
		return fmt.Errorf("map bounds are degenerate")
	}
	if len(c.Track.Checkpoints) != 3 {
		return fmt.Errorf("track.checkpoints must list exactly 3 entries, got %d", len(c.Track.Checkpoints))
	}
	if c.Display.BatteryBar.Min >= c.Display.BatteryBar.Max {
		return fmt.Errorf("display.battery_bar range is empty")
	}
	if c.Display.PowerBar.Min >= c.Display.PowerBar.Max {
		return fmt.Errorf("display.power_bar range is empty")
	}
	return nil
}
