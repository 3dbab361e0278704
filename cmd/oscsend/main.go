// Command oscsend sends a single OSC message to a server.
//
// Usage:
//
//	oscsend --addr 127.0.0.1:8765 /foo/bar i:1 f:0.5 s:hello
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/osckit/go-osc/osc"
)

func main() {
	var (
		addr = pflag.String("addr", "127.0.0.1:8765", "server address")
		tcp  = pflag.Bool("tcp", false, "send over TCP instead of UDP")
		in   = pflag.Duration("in", 0, "wrap the message in a bundle due after this duration")
	)
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: oscsend [flags] address [tag:value ...]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	args, err := parseArguments(pflag.Args()[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("oscsend: bad argument")
	}

	msg := osc.NewMessage(pflag.Arg(0), args...)

	var p osc.Packet = msg
	if *in > 0 {
		p = osc.NewBundleWithTime(time.Now().Add(*in), msg)
	}

	if err := send(*addr, *tcp, p); err != nil {
		log.Fatal().Err(err).Msg("oscsend: send failed")
	}
}

func send(addr string, tcp bool, p osc.Packet) error {
	if tcp {
		c, err := osc.DialTCP(addr)
		if err != nil {
			return err
		}
		defer c.Close()
		return c.Send(p)
	}

	c, err := osc.Dial(addr)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Send(p)
}
