package gps

import (
	"errors"
	"math"
	"testing"
)

const rmcSentence = "$GNRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"

func TestDecodeRMC(t *testing.T) {
	buf := []byte("garbage$GNGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n" + rmcSentence + "\r\n")

	fix, err := DecodeRMC(buf)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !fix.Valid {
		t.Fatalf("expected valid fix")
	}
	if math.Abs(fix.Latitude-48.1173) > 1e-3 {
		t.Fatalf("latitude: expected ~48.1173, got %v", fix.Latitude)
	}
	if math.Abs(fix.Longitude-11.5167) > 1e-3 {
		t.Fatalf("longitude: expected ~11.5167, got %v", fix.Longitude)
	}
	if math.Abs(fix.SpeedKMH-41.4848) > 1e-2 {
		t.Fatalf("speed: expected ~41.5 km/h, got %v", fix.SpeedKMH)
	}
}

func TestDecodeRMCSouthWestHemispheres(t *testing.T) {
	buf := []byte("$GNRMC,123519,A,4807.038,S,01131.000,W,000.0,084.4,230394,003.1,W\r\n")

	fix, err := DecodeRMC(buf)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fix.Latitude >= 0 || fix.Longitude >= 0 {
		t.Fatalf("expected negative lat/lon, got %v, %v", fix.Latitude, fix.Longitude)
	}
}

func TestDecodeRMCVoidStatus(t *testing.T) {
	buf := []byte("$GNRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W\r\n")

	if _, err := DecodeRMC(buf); !errors.Is(err, ErrNoFix) {
		t.Fatalf("expected ErrNoFix for void status, got %v", err)
	}
}

func TestDecodeRMCAbsent(t *testing.T) {
	if _, err := DecodeRMC([]byte("$GNGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,,")); !errors.Is(err, ErrNoFix) {
		t.Fatalf("expected ErrNoFix, got %v", err)
	}
	if _, err := DecodeRMC(make([]byte, 256)); !errors.Is(err, ErrNoFix) {
		t.Fatalf("expected ErrNoFix on zero-filled buffer, got %v", err)
	}
}

func TestDecodeRMCSkipsBrokenOccurrence(t *testing.T) {
	// First occurrence is truncated mid-sentence; the decoder must advance
	// to the complete one that follows.
	buf := []byte("$GNRMC,1235" + rmcSentence + "\r\n")

	fix, err := DecodeRMC(buf)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(fix.Latitude-48.1173) > 1e-3 {
		t.Fatalf("latitude: expected ~48.1173, got %v", fix.Latitude)
	}
}

func TestDecodeRMCMissingPositionFields(t *testing.T) {
	buf := []byte("$GNRMC,123519,A,,,,,022.4,084.4,230394,003.1,W\r\n")

	if _, err := DecodeRMC(buf); !errors.Is(err, ErrNoFix) {
		t.Fatalf("expected ErrNoFix for missing position, got %v", err)
	}
}
