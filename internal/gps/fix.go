package gps

// Fix represents a single decoded GPS fix suitable for JSON and MQTT.
type Fix struct {
	Latitude  float64 `json:"lat"`       // decimal degrees
	Longitude float64 `json:"lon"`       // decimal degrees
	SpeedKMH  float64 `json:"speed_kmh"` // ground speed
	Valid     bool    `json:"valid"`
}
