package gps

import (
	"bytes"
	"errors"

	nmea "github.com/adrianmo/go-nmea"
)

// ErrNoFix is returned when the receive buffer holds no usable $GNRMC
// sentence: nothing arrived, the sentence is malformed, or the receiver
// reported a void fix. All of these are expected between satellite locks.
var ErrNoFix = errors.New("gps: no valid $GNRMC sentence in buffer")

const (
	sentencePrefix = "$GNRMC"
	knotsToKMH     = 1.852
)

// The receive buffer is filled by a timed serial read and can cut a sentence
// off before its checksum, so CRC verification is disabled. Void or garbled
// sentences are rejected by the validity check below instead.
var parser = nmea.SentenceParser{
	CheckCRC: func(nmea.BaseSentence, string) error { return nil },
}

// DecodeRMC scans a raw receive buffer for the first usable $GNRMC sentence
// and returns its fix. If an occurrence fails to parse, the scan advances
// past it and tries any later occurrence before giving up with ErrNoFix.
func DecodeRMC(buf []byte) (Fix, error) {
	rest := buf
	for {
		i := bytes.Index(rest, []byte(sentencePrefix))
		if i < 0 {
			return Fix{}, ErrNoFix
		}
		raw := rest[i:]
		if fix, ok := decodeSentence(string(raw[:sentenceEnd(raw)])); ok {
			return fix, nil
		}
		rest = rest[i+len(sentencePrefix):]
	}
}

// sentenceEnd returns the index just past the sentence body: NMEA line
// terminators, a NUL from a stale zero-filled buffer, or the start of the
// next sentence.
func sentenceEnd(b []byte) int {
	for i := 1; i < len(b); i++ {
		switch b[i] {
		case '\r', '\n', 0, '$':
			return i
		}
	}
	return len(b)
}

func decodeSentence(line string) (Fix, bool) {
	s, err := parser.Parse(line)
	if err != nil {
		return Fix{}, false
	}
	if s.DataType() != nmea.TypeRMC {
		return Fix{}, false
	}
	m, ok := s.(nmea.RMC)
	if !ok || m.Validity != nmea.ValidRMC {
		return Fix{}, false
	}
	return Fix{
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		SpeedKMH:  m.Speed * knotsToKMH,
		Valid:     true,
	}, true
}
