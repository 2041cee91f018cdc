// Package serialsource adapts a physical serial port into the plain
// io.ReadCloser byte source the thinkgear.Device core consumes. Serial
// port discovery, opening, and configuration are explicitly an external
// collaborator to the core: nothing in thinkgear imports this package.
package serialsource

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Open opens port at baud bits/second, 8 data bits, no parity, one stop
// bit (8N1), with a short read timeout so the caller's read loop can
// observe context cancellation between bytes rather than blocking
// indefinitely on an idle line.
func Open(port string, baud int) (io.ReadCloser, error) {
	cfg := &serial.Config{
		Name:        port,
		Baud:        baud,
		ReadTimeout: 100 * time.Millisecond,
	}

	conn, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("serialsource: opening %s at %d baud: %w", port, baud, err)
	}
	return conn, nil
}
