package osc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// OSC over stream transports. Datagrams have natural packet boundaries, a
// TCP stream does not, so every packet is preceded by a 4-byte big-endian
// length.

// StreamConn wraps a stream connection and sends and receives length-framed
// OSC packets over it.
type StreamConn struct {
	conn net.Conn
	r    *bufio.Reader
}

// NewStreamConn returns a StreamConn reading and writing framed OSC packets
// on conn.
func NewStreamConn(conn net.Conn) *StreamConn {
	return &StreamConn{conn: conn, r: bufio.NewReader(conn)}
}

// DialTCP creates a new StreamConn with a TCP connection to the specified
// server.
func DialTCP(addr string) (*StreamConn, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewStreamConn(conn), nil
}

// Send sends an OSC Packet over the connection.
func (c *StreamConn) Send(packet Packet) error {
	data, err := packet.MarshalBinary()
	if err != nil {
		return err
	}

	// Frame and payload go out in a single write to avoid interleaving
	// frames from concurrent senders.
	b := make([]byte, bit32Size+len(data))
	binary.BigEndian.PutUint32(b, uint32(len(data)))
	copy(b[bit32Size:], data)

	_, err = c.conn.Write(b)
	return err
}

// Receive reads the next OSC Packet from the connection. It blocks until a
// full frame arrived.
func (c *StreamConn) Receive() (Packet, error) {
	var hdr [bit32Size]byte
	if _, err := io.ReadFull(c.r, hdr[:]); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(hdr[:])
	if length == 0 || length > MaxPacketSize || length%bit32Size != 0 {
		return nil, fmt.Errorf("Receive: %w: frame length %d", ErrInvalidPacket, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(c.r, data); err != nil {
		return nil, err
	}

	return parsePacket(data)
}

// SetReadDeadline sets the read deadline of the underlying connection.
func (c *StreamConn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

// LocalAddr returns the local network address of the connection.
func (c *StreamConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the remote network address of the connection.
func (c *StreamConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *StreamConn) Close() error {
	return c.conn.Close()
}

// StreamServer represents an OSC server listening on a stream transport. It
// accepts TCP connections on Addr and passes every received packet to
// Handler.
type StreamServer struct {
	Addr        string
	Handler     HandlerFunc
	ReadTimeout time.Duration

	ln net.Listener
}

// ListenAndServe accepts incoming connections and dispatches the received
// OSC packets.
func (s *StreamServer) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Serve(ln)
}

// Serve accepts incoming connections on the given listener and dispatches
// the received OSC packets.
func (s *StreamServer) Serve(ln net.Listener) error {
	s.ln = ln
	if s.Handler == nil {
		s.Handler = (&Dispatcher{}).Dispatch
	}

	var tempDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				time.Sleep(tempDelay)
				continue
			}
			return err
		}
		tempDelay = 0
		go s.serveConn(conn)
	}
}

// Close closes the server listener.
func (s *StreamServer) Close() error {
	if s.ln == nil {
		return nil
	}
	err := s.ln.Close()
	s.ln = nil
	return err
}

func (s *StreamServer) serveConn(conn net.Conn) {
	defer conn.Close()
	defer recoverer(conn.RemoteAddr())

	c := NewStreamConn(conn)
	for {
		if s.ReadTimeout != 0 {
			if err := conn.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
				return
			}
		}

		p, err := c.Receive()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, net.ErrClosed) {
				// A malformed frame desynchronizes the stream, drop the
				// connection.
				log.Debug().Err(err).Interface("from", conn.RemoteAddr()).Msg("osc: closing stream connection")
			}
			return
		}

		s.Handler(p, conn.RemoteAddr())
	}
}
