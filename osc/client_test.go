package osc

import (
	"errors"
	"net"
	"testing"
)

func TestClientAddrs(t *testing.T) {
	c, err := net.ListenPacket("udp", "localhost:6676")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	client, err := Dial("localhost:6676")
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if client.LocalAddr() == nil {
		t.Error("LocalAddr() should not be nil")
	}
	if got := client.RemoteAddr().String(); got != c.LocalAddr().String() {
		t.Errorf("RemoteAddr() should be %q and is %q", c.LocalAddr(), got)
	}
}

func TestClientSendTooLarge(t *testing.T) {
	c, err := net.ListenPacket("udp", "localhost:6676")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	client, err := Dial("localhost:6676")
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	// An oversized packet never reaches the wire.
	msg := NewMessage("/big", make([]byte, MaxPacketSize))
	if err := client.Send(msg); !errors.Is(err, ErrPacketTooLarge) {
		t.Errorf("Send() error = %v, want ErrPacketTooLarge", err)
	}
}
