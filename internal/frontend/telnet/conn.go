package telnet

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Protocol bytes from RFC 854 and the option numbers the arena uses.
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	GA   byte = 249
	NOP  byte = 241
	SE   byte = 240

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// Conn is a line-oriented telnet connection. Reads are expected from a
// single goroutine; writes may come from any.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader
	mu     sync.Mutex

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps raw. Zero timeouts disable the matching deadline.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate asks the client to suppress go-ahead.
func (c *Conn) Negotiate() error {
	return c.Write([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine returns the next line of input without its terminator. Telnet
// commands and control characters other than tab are dropped.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return line.String(), err
		}
		switch {
		case b == IAC:
			if err := c.skipCommand(); err != nil {
				return line.String(), err
			}
		case b == '\n':
			return line.String(), nil
		case b == '\r':
			if next, err := c.reader.Peek(1); err == nil && (next[0] == '\n' || next[0] == 0) {
				_, _ = c.reader.ReadByte()
			}
			return line.String(), nil
		case b < 32 && b != '\t':
		default:
			line.WriteByte(b)
		}
	}
}

// skipCommand consumes the rest of a command whose IAC was already read.
func (c *Conn) skipCommand() error {
	cmd, err := c.reader.ReadByte()
	if err != nil {
		return err
	}
	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err = c.reader.ReadByte()
		return err
	case SB:
		var prev byte
		for {
			b, err := c.reader.ReadByte()
			if err != nil {
				return err
			}
			if prev == IAC && b == SE {
				return nil
			}
			prev = b
		}
	}
	return nil
}

// Prompt writes question without a newline and reads the answer, trimmed.
func (c *Conn) Prompt(question string) (string, error) {
	if err := c.Write([]byte(question)); err != nil {
		return "", err
	}
	line, err := c.ReadLine()
	return strings.TrimSpace(line), err
}

// WriteLine writes text followed by CRLF. Bare newlines inside text are
// converted so multi-line blocks render on every client.
func (c *Conn) WriteLine(text string) error {
	text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "\r\n")
	return c.Write([]byte(text + "\r\n"))
}

// Write sends data as is.
func (c *Conn) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(data)
	if err != nil {
		return fmt.Errorf("telnet write: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr returns the client's address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}

// FilterIAC strips telnet commands from input, keeping an escaped IAC as a
// single 0xFF byte.
func FilterIAC(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); {
		if input[i] != IAC || i+1 >= len(input) {
			out = append(out, input[i])
			i++
			continue
		}
		switch input[i+1] {
		case WILL, WONT, DO, DONT:
			i += 3
		case SB:
			j := i + 2
			for j < len(input)-1 && !(input[j] == IAC && input[j+1] == SE) {
				j++
			}
			i = j + 2
		case IAC:
			out = append(out, IAC)
			i += 2
		default:
			i += 2
		}
	}
	return out
}
