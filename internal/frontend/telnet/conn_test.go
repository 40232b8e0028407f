package telnet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFilterIAC(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"plain", []byte("hello"), []byte("hello")},
		{"will", []byte{IAC, WILL, OptEcho, 'h', 'i'}, []byte("hi")},
		{"do inside text", []byte{'a', IAC, DO, OptLinemode, 'b'}, []byte("ab")},
		{"only command", []byte{IAC, DONT, OptEcho}, []byte{}},
		{"subnegotiation", []byte{IAC, SB, 24, 0, 'x', 't', IAC, SE, 'z'}, []byte("z")},
		{"escaped", []byte{'a', IAC, IAC, 'b'}, []byte{'a', IAC, 'b'}},
		{"nop", []byte{'x', IAC, NOP, 'y'}, []byte("xy")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterIAC(tc.input))
		})
	}
}

func TestPropertyFilterIAC_PassesPlainBytes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOf(rapid.ByteRange(0, IAC-1)).Draw(t, "input")
		assert.Equal(t, append([]byte{}, input...), FilterIAC(input))
	})
}

func TestPropertyFilterIAC_NeverGrows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOf(rapid.Byte()).Draw(t, "input")
		assert.LessOrEqual(t, len(FilterIAC(input)), len(input))
	})
}

// Text framed by negotiation commands comes through untouched.
func TestPropertyFilterIAC_StripsNegotiation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.SliceOf(rapid.ByteRange(0, IAC-1)).Draw(t, "text")
		verb := rapid.SampledFrom([]byte{WILL, WONT, DO, DONT}).Draw(t, "verb")
		opt := rapid.Byte().Draw(t, "option")
		input := append([]byte{IAC, verb, opt}, text...)
		input = append(input, IAC, NOP)
		assert.Equal(t, append([]byte{}, text...), FilterIAC(input))
	})
}

func pipe(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return NewConn(server, 2*time.Second, 2*time.Second), client
}

func TestConn_ReadLine(t *testing.T) {
	conn, client := pipe(t)
	go func() {
		_, _ = client.Write([]byte{'m', 'o', IAC, WILL, OptEcho, 'v', 'e', '\x07', ' ', '1', '\r', '\n'})
		_, _ = client.Write([]byte("switch 2\n"))
		_, _ = client.Write([]byte{'q', '\r', 0})
	}()

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "move 1", line)

	line, err = conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "switch 2", line)

	line, err = conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "q", line)
}

func TestConn_ReadLineSkipsSubnegotiation(t *testing.T) {
	conn, client := pipe(t)
	go func() {
		_, _ = client.Write([]byte{IAC, SB, 24, 0, 'v', 't', IAC, SE, 'o', 'k', '\n'})
	}()
	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ok", line)
}

func TestConn_Prompt(t *testing.T) {
	conn, client := pipe(t)
	go func() {
		buf := make([]byte, 32)
		n, _ := client.Read(buf)
		if string(buf[:n]) == "> " {
			_, _ = client.Write([]byte("  greedy  \r\n"))
		}
	}()
	answer, err := conn.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "greedy", answer)
}

func TestConn_WriteLineNormalisesNewlines(t *testing.T) {
	conn, client := pipe(t)
	got := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := client.Read(buf)
		got <- string(buf[:n])
	}()
	require.NoError(t, conn.WriteLine("a\nb\r\nc"))
	assert.Equal(t, "a\r\nb\r\nc\r\n", <-got)
}

func TestConn_ReadTimeout(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := NewConn(server, 20*time.Millisecond, 0)
	defer conn.Close()

	_, err := conn.ReadLine()
	var ne net.Error
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())
}
