// Package serialio defines the serial channel contract the telemetry core
// depends on. The core never opens or configures a port; cmd wiring hands it
// an already-open channel (a jacobsa/go-serial port in production, an
// in-memory fake in tests).
package serialio

import (
	"fmt"
	"io"
	"time"
)

// Port is a bidirectional serial channel with bounded-time reads.
type Port interface {
	// Receive reads into buf until it is full or the timeout elapses and
	// returns the number of bytes read. A timeout is not an error: the
	// caller gets a partially filled (or untouched) buffer and must treat
	// it as "no data".
	Receive(buf []byte, timeout time.Duration) (int, error)

	// Transmit writes the whole buffer to the channel.
	Transmit(data []byte) error
}

// rwPort adapts a raw io.ReadWriter (such as a go-serial port opened with an
// inter-character timeout) to the Port contract.
type rwPort struct {
	rw io.ReadWriter
}

// New wraps an open serial channel.
func New(rw io.ReadWriter) Port {
	return &rwPort{rw: rw}
}

func (p *rwPort) Receive(buf []byte, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	total := 0
	for total < len(buf) {
		n, err := p.rw.Read(buf[total:])
		total += n
		if err != nil {
			// go-serial reports an expired inter-character timeout as EOF;
			// hand back whatever arrived.
			if err == io.EOF {
				return total, nil
			}
			return total, fmt.Errorf("serial receive: %w", err)
		}
		if n == 0 || !time.Now().Before(deadline) {
			return total, nil
		}
	}
	return total, nil
}

func (p *rwPort) Transmit(data []byte) error {
	if _, err := p.rw.Write(data); err != nil {
		return fmt.Errorf("serial transmit: %w", err)
	}
	return nil
}
