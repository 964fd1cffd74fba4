// Copyright (c) 2026 Alfa Eta Electromobile Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	serial "github.com/jacobsa/go-serial/serial"
	"go.uber.org/zap"

	"github.com/alfa-eta/dashboard/internal/config"
	"github.com/alfa-eta/dashboard/internal/geo"
	"github.com/alfa-eta/dashboard/internal/nextion"
	"github.com/alfa-eta/dashboard/internal/serialio"
	"github.com/alfa-eta/dashboard/internal/track"
)

// Snapshot is the per-tick telemetry record published to MQTT for off-vehicle
// consumers (web view, pit logging).
type Snapshot struct {
	Speed       int            `json:"speed"`
	Battery     int            `json:"battery"`
	PowerKW     int            `json:"power_kw"`
	PackVoltage int            `json:"pack_voltage"`
	MaxVoltage  int            `json:"max_voltage"`
	MinVoltage  int            `json:"min_voltage"`
	BatteryTemp int            `json:"battery_temp"`
	Map         track.MapState `json:"map"`
}

// RunDashboard opens both serial links, runs the geo pipeline and the
// display sync engine once per tick, and publishes each tick's snapshot to
// MQTT.
func RunDashboard(cfg config.Config, logger *zap.Logger) error {
	// ---- 1) Open GPS serial port ----
	gpsOpts := serial.OpenOptions{
		PortName:              cfg.GPS.Device,
		BaudRate:              uint(cfg.GPS.BaudRate),
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 100,
	}
	gpsPort, err := serial.Open(gpsOpts)
	if err != nil {
		return fmt.Errorf("failed to open GPS port: %w", err)
	}
	defer gpsPort.Close()
	logger.Info("GPS serial port opened",
		zap.String("device", cfg.GPS.Device),
		zap.Int("baud", cfg.GPS.BaudRate))

	// ---- 2) Open display serial port ----
	dispOpts := serial.OpenOptions{
		PortName:              cfg.Display.Device,
		BaudRate:              uint(cfg.Display.BaudRate),
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 100,
	}
	dispPort, err := serial.Open(dispOpts)
	if err != nil {
		return fmt.Errorf("failed to open display port: %w", err)
	}
	defer dispPort.Close()
	logger.Info("display serial port opened",
		zap.String("device", cfg.Display.Device),
		zap.Int("baud", cfg.Display.BaudRate))

	// ---- 3) Build the pipeline ----
	viewport, err := track.NewViewport(track.ViewportConfig{
		NorthWest:   cfg.Map.NorthWest,
		SouthEast:   cfg.Map.SouthEast,
		MapWidthPx:  cfg.Map.WidthPx,
		MapHeightPx: cfg.Map.HeightPx,
		IconX:       cfg.Map.IconX,
		IconY:       cfg.Map.IconY,
		IconWidth:   cfg.Map.IconWidth,
		IconHeight:  cfg.Map.IconHeight,
		MinOffsetX:  cfg.Map.MinOffsetX,
		MaxOffsetX:  cfg.Map.MaxOffsetX,
		MinOffsetY:  cfg.Map.MinOffsetY,
		MaxOffsetY:  cfg.Map.MaxOffsetY,
	})
	if err != nil {
		return err
	}

	var checkpoints [track.CheckpointCount]geo.Position
	copy(checkpoints[:], cfg.Track.Checkpoints)
	lapTracker := track.NewLapTracker(checkpoints)

	state := &track.MapState{}
	pipeline, err := track.NewPipeline(serialio.New(gpsPort), viewport, lapTracker, state, time.Duration(cfg.GPS.ReceiveTimeout), logger)
	if err != nil {
		return err
	}

	// ---- 4) Bind the display sync engine ----
	src := NewSimSource(state)
	dash, err := nextion.New(serialio.New(dispPort), src, nextion.Config{
		HandshakeAttempts: cfg.Display.HandshakeAttempts,
		HandshakeTimeout:  time.Duration(cfg.Display.HandshakeTimeout),
		BatteryBar:        barDomain(cfg.Display.BatteryBar),
		PowerBar:          barDomain(cfg.Display.PowerBar),
	}, logger)
	if err != nil {
		return err
	}
	if err := dash.Handshake(); err != nil {
		return err
	}

	// ---- 5) Connect to MQTT broker ----
	// The vehicle must keep driving without a broker, so a connect failure
	// only disables publishing.
	var client mqtt.Client
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.ClientID)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		logger.Warn("MQTT broker unavailable, telemetry publishing disabled",
			zap.String("broker", cfg.MQTT.Broker),
			zap.Error(token.Error()))
	} else {
		client = c
		logger.Info("connected to MQTT broker", zap.String("broker", cfg.MQTT.Broker))
	}

	// ---- 6) Tick loop ----
	ticker := time.NewTicker(time.Duration(cfg.Tick))
	defer ticker.Stop()
	logger.Info("dashboard loop started", zap.Duration("tick", time.Duration(cfg.Tick)))

	for range ticker.C {
		src.Advance()

		if !pipeline.Run() {
			logger.Debug("no GPS fix this tick")
		}

		if err := dash.Refresh(); err != nil {
			// The cache is intact; the starved fields go out next tick.
			logger.Warn("display refresh incomplete", zap.Error(err))
		}

		if client != nil {
			publishSnapshot(client, cfg.MQTT.Topic, src, state, logger)
		}
	}
	return nil
}

func publishSnapshot(client mqtt.Client, topic string, src *SimSource, state *track.MapState, logger *zap.Logger) {
	snap := Snapshot{
		Speed:       src.Speed(),
		Battery:     src.Battery(),
		PowerKW:     src.PowerKW(),
		PackVoltage: src.PackVoltage(),
		MaxVoltage:  src.MaxVoltage(),
		MinVoltage:  src.MinVoltage(),
		BatteryTemp: src.BatteryTemp(),
		Map:         *state,
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		logger.Error("snapshot marshal failed", zap.Error(err))
		return
	}
	token := client.Publish(topic, 0, true, payload)
	token.Wait()
	if token.Error() != nil {
		logger.Warn("snapshot publish failed", zap.Error(token.Error()))
	}
}

func barDomain(b config.BarConfig) nextion.BarDomain {
	return nextion.BarDomain{Min: b.Min, Max: b.Max, Reverse: b.Reverse}
}
