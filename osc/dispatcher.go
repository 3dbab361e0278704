package osc

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// Method is an interface for OSC Methods.
type Method interface {
	HandleMessage(msg *Message)
}

// MethodFunc implements the Method interface. Type definition for an OSC
// Method function.
type MethodFunc func(msg *Message)

// HandleMessage calls itself with the given OSC Message. Implements the
// Method interface.
func (f MethodFunc) HandleMessage(msg *Message) {
	f(msg)
}

// Dispatcher handles the dispatching of received OSC Packets to Methods for
// their given address. The zero value is ready to use.
type Dispatcher struct {
	methods map[string]Method
}

// AddMethod adds a new OSC Method for the given OSC address. The address
// must be a plain address, without any of the pattern characters " #*,/?[]{}".
func (d *Dispatcher) AddMethod(addr string, method Method) error {
	if d.methods == nil {
		d.methods = make(map[string]Method)
	}

	if err := ValidateAddress(addr); err != nil {
		return fmt.Errorf("AddMethod: %w", err)
	}

	if _, ok := d.methods[addr]; ok {
		return fmt.Errorf("AddMethod: OSC Method %q exists already", addr)
	}

	d.methods[addr] = method
	return nil
}

// AddMethodFunc allows you to just pass a MethodFunc.
func (d *Dispatcher) AddMethodFunc(addr string, method MethodFunc) error {
	return d.AddMethod(addr, method)
}

// Dispatch dispatches OSC Packets. Messages are matched against the
// registered method addresses, bundle elements are scheduled for the time
// given by the bundle's time tag.
func (d *Dispatcher) Dispatch(packet Packet, a net.Addr) {
	switch p := packet.(type) {
	default:
		log.Error().Str("type", fmt.Sprintf("%T", p)).Msg("osc: dropping invalid packet")

	case *Message:
		matcher, err := NewMatcher(p.Address)
		if err != nil {
			log.Debug().Err(err).Str("address", p.Address).Msg("osc: dropping message with invalid address pattern")
			return
		}
		for addr, method := range d.methods {
			if ok, err := matcher.Match(addr); err == nil && ok {
				method.HandleMessage(p)
			}
		}

	case *Bundle:
		time.AfterFunc(p.Timetag.ExpiresIn(), func() {
			defer recoverer(a)
			for _, elem := range p.Elements {
				d.Dispatch(elem, a)
			}
		})
	}
}
