package app

import (
	"github.com/alfa-eta/dashboard/internal/nextion"
	"github.com/alfa-eta/dashboard/internal/track"
)

// SimSource feeds the display with synthetic vehicle readings until the CAN
// feed is integrated: a ramping speed, blinking signals, and fixed battery
// electrics. The map fields are live, read from the geo pipeline's shared
// state.
//
// TODO: replace with the CAN bus reader once the BMS frames are finalized.
type SimSource struct {
	state *track.MapState
	count int
}

// NewSimSource binds the simulated readings to the pipeline's map state.
func NewSimSource(state *track.MapState) *SimSource {
	return &SimSource{state: state}
}

// Advance steps the simulation one tick.
func (s *SimSource) Advance() {
	s.count++
	if s.count > 50 {
		s.count = 0
	}
}

func (s *SimSource) Speed() int       { return s.count }
func (s *SimSource) Battery() int     { return 10 }
func (s *SimSource) PowerKW() int     { return 3 }
func (s *SimSource) PackVoltage() int { return 5220 } // 52.20 V
func (s *SimSource) MaxVoltage() int  { return 375 }  // 3.75 V
func (s *SimSource) MinVoltage() int  { return 370 }  // 3.70 V
func (s *SimSource) BatteryTemp() int { return 2750 } // 27.50 °C

func (s *SimSource) Gear() nextion.Gear { return nextion.GearDrive }
func (s *SimSource) Handbrake() bool    { return true }
func (s *SimSource) SignalLeft() bool   { return s.count%2 == 0 }
func (s *SimSource) SignalRight() bool  { return s.count%2 == 0 }
func (s *SimSource) ConnWarning() bool  { return true }
func (s *SimSource) BattWarning() bool  { return true }
func (s *SimSource) Lights() bool       { return true }

func (s *SimSource) Map() track.MapState { return *s.state }
