package osc

import (
	"net"
	"time"
)

// Client sends OSC packets to a server over UDP, one packet per datagram.
// For stream transports see StreamConn.
type Client struct {
	conn *net.UDPConn
}

// Dial connects a new Client to the given UDP address.
func Dial(addr string) (*Client, error) {
	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}

	conn, err := net.DialUDP("udp", nil, a)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Send marshals the packet and writes it out as a single datagram. Packets
// over MaxPacketSize are rejected before anything hits the wire.
func (c *Client) Send(packet Packet) error {
	data, err := packet.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = c.conn.Write(data)
	return err
}

// SetWriteDeadline sets the write deadline of the underlying connection.
func (c *Client) SetWriteDeadline(t time.Time) error {
	return c.conn.SetWriteDeadline(t)
}

// LocalAddr returns the local network address of the connection.
func (c *Client) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the address of the server the client is connected to.
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection to the server.
func (c *Client) Close() error {
	return c.conn.Close()
}
