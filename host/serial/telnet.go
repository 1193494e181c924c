package serial

import (
	"fmt"
	"net"
	"time"

	"github.com/ziutek/telnet"
)

// DefaultDialTimeout applies when the config has no read timeout
const DefaultDialTimeout = 5 * time.Second

// TelnetPort is a terminal reached through a telnet serial bridge (ser2net,
// a console server). Telnet option negotiation is handled by the connection.
type TelnetPort struct {
	conn *telnet.Conn
	addr string
}

func openTelnet(addr string, cfg *Config) (Port, error) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("invalid telnet address %q: %w", addr, err)
	}

	timeout := DefaultDialTimeout
	if cfg.ReadTimeout > 0 && time.Duration(cfg.ReadTimeout)*time.Millisecond > timeout {
		timeout = time.Duration(cfg.ReadTimeout) * time.Millisecond
	}

	conn, err := telnet.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	return &TelnetPort{conn: conn, addr: addr}, nil
}

// Read reads data from the bridge
func (p *TelnetPort) Read(b []byte) (int, error) {
	return p.conn.Read(b)
}

// Write writes data to the bridge
func (p *TelnetPort) Write(b []byte) (int, error) {
	return p.conn.Write(b)
}

// Close closes the connection
func (p *TelnetPort) Close() error {
	return p.conn.Close()
}

// Flush is a no-op, writes go straight to the connection
func (p *TelnetPort) Flush() error {
	return nil
}

// Addr returns the bridge address
func (p *TelnetPort) Addr() string {
	return p.addr
}
