package osc

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

// HandlerFunc handles a single received OSC Packet. Dispatcher.Dispatch is a
// HandlerFunc.
type HandlerFunc func(p Packet, a net.Addr)

// Server represents an OSC server. The server listens on Addr for incoming
// OSC packets and bundles and passes them to Handler.
type Server struct {
	Addr        string
	Handler     HandlerFunc
	ReadTimeout time.Duration

	conn net.PacketConn
}

// ListenAndServe listens for incoming OSC packets on addr and dispatches
// them to handler.
func ListenAndServe(addr string, handler HandlerFunc) error {
	s := &Server{Addr: addr, Handler: handler}
	return s.ListenAndServe()
}

// ListenAndServe retrieves incoming OSC packets and dispatches the retrieved
// OSC packets.
func (s *Server) ListenAndServe() error {
	if s.Handler == nil {
		s.Handler = (&Dispatcher{}).Dispatch
	}

	c, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	s.conn = c
	defer s.Close()

	return s.Serve()
}

// Serve retrieves incoming OSC packets from the server connection and
// dispatches them. If something goes wrong an error is returned.
func (s *Server) Serve() error {
	if s.conn == nil {
		return fmt.Errorf("Serve: no connection, use ListenAndServe")
	}

	var tempDelay time.Duration
	for {
		p, a, err := s.readFromConnection()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
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
			} else if !ok {
				// Parse error, drop the datagram and keep serving.
				log.Debug().Err(err).Interface("from", a).Msg("osc: dropping malformed packet")
				continue
			}
			return err
		}
		tempDelay = 0
		go s.serve(p, a)
	}
}

func (s *Server) serve(p Packet, a net.Addr) {
	defer recoverer(a)
	s.Handler(p, a)
}

// Close closes the server connection.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// WriteTo sends an OSC Packet from the server connection to the given
// address. This allows replying to clients from the listening port.
func (s *Server) WriteTo(p Packet, addr string) (int, error) {
	if s.conn == nil {
		return 0, fmt.Errorf("WriteTo: no connection, use ListenAndServe")
	}

	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return 0, err
	}

	data, err := p.MarshalBinary()
	if err != nil {
		return 0, err
	}

	return s.conn.WriteTo(data, a)
}

// ReceivePacketFromConn listens for one incoming OSC packet on c and returns
// it.
func (s *Server) ReceivePacketFromConn(c net.PacketConn) (Packet, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bPool.Get().(*[]byte)
	defer bPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}

	bb := make([]byte, n)
	copy(bb, *b)

	p, err := parsePacket(bb)
	return p, a, err
}

// readFromConnection retrieves OSC packets from the server connection. Close
// may clear the connection between two reads.
func (s *Server) readFromConnection() (Packet, net.Addr, error) {
	c := s.conn
	if c == nil {
		return nil, nil, net.ErrClosed
	}
	return s.ReceivePacketFromConn(c)
}

// recoverer keeps a panicking handler from taking down the serve loop.
func recoverer(a net.Addr) {
	if err := recover(); err != nil {
		buf := make([]byte, 64<<10)
		buf = buf[:runtime.Stack(buf, false)]
		log.Error().
			Interface("panic", err).
			Interface("from", a).
			Bytes("stack", buf).
			Msg("osc: panic handling packet")
	}
}
