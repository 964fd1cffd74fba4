// Package nextion implements the cached-state diffing protocol for the
// remote Nextion display: a value is transmitted only when it differs from
// the last value sent for that field, and every command is closed with the
// protocol's 3-byte terminator.
package nextion

// Gear selects the gear icon shown on the display.
type Gear int

const (
	GearNeutral Gear = iota
	GearDrive
	GearReverse
)

// Command identifies a literal display command with no runtime formatting.
type Command int

const (
	CmdConnectionOK Command = iota
	CmdGearDrive
	CmdGearNeutral
	CmdGearReverse
	CmdHandbrakeOn
	CmdHandbrakeOff
	CmdSignalLeftOn
	CmdSignalLeftOff
	CmdSignalRightOn
	CmdSignalRightOff
	CmdConnWarningOn
	CmdConnWarningOff
	CmdBattWarningOn
	CmdBattWarningOff
	CmdLightsOn
	CmdLightsOff
)

// IntCommand identifies a command template carrying one %d placeholder.
type IntCommand int

const (
	CmdSpeed IntCommand = iota
	CmdBatteryNumber
	CmdBatteryBar
	CmdPowerNumber
	CmdPowerBar
	CmdPackVoltage
	CmdMaxVoltage
	CmdMinVoltage
	CmdBatteryTemp
	CmdMapX
	CmdMapY
	CmdMapIcon
	CmdMapLap
)

// The literal command strings are part of the wire protocol shared with the
// display firmware; they must not be reworded.
var commandText = map[Command]string{
	CmdConnectionOK: "con=1",

	CmdGearDrive:   "pGr.pic=19",
	CmdGearNeutral: "pGr.pic=20",
	CmdGearReverse: "pGr.pic=21",

	CmdHandbrakeOn:  "pHb.aph=127",
	CmdHandbrakeOff: "pHb.aph=0",

	CmdSignalLeftOn:   "pSL.aph=127",
	CmdSignalLeftOff:  "pSL.aph=0",
	CmdSignalRightOn:  "pSR.aph=127",
	CmdSignalRightOff: "pSR.aph=0",

	CmdConnWarningOn:  "pCW.aph=127",
	CmdConnWarningOff: "pCW.aph=0",
	CmdBattWarningOn:  "pBW.aph=127",
	CmdBattWarningOff: "pBW.aph=0",

	CmdLightsOn:  "pLt.aph=127",
	CmdLightsOff: "pLt.aph=0",
}

var intCommandText = map[IntCommand]string{
	CmdSpeed: "nSd.val=%d",

	CmdBatteryNumber: "nBt.val=%d",
	CmdBatteryBar:    "jBt.val=%d",

	CmdPowerNumber: "nKW.val=%d",
	CmdPowerBar:    "jKW.val=%d",

	CmdPackVoltage: "xBV.val=%d",
	CmdMaxVoltage:  "xBMa.val=%d",
	CmdMinVoltage:  "xBMi.val=%d",

	CmdBatteryTemp: "xBtT.val=%d",

	CmdMapX:    "pMap.x=%d",
	CmdMapY:    "pMap.y=%d",
	CmdMapIcon: "zIc.val=%d",
	CmdMapLap:  "nLap.val=%d",
}

// terminator closes every Nextion command, whatever its content.
var terminator = []byte{0xFF, 0xFF, 0xFF}
