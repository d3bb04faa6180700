package protocol

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
)

// Conn reads and writes newline-terminated lines on a network connection.
type Conn struct {
	conn net.Conn
	r    *bufio.Reader
}

func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

// ReadLine returns the next line without its terminator. A final line without a
// terminator is returned as-is; after that ReadLine returns io.EOF.
func (c *Conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine writes s followed by a newline in a single write.
func (c *Conn) WriteLine(s string) error {
	_, err := io.WriteString(c.conn, s+"\n")
	return err
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
