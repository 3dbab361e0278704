// Command oscdump listens for OSC packets on a UDP or TCP port and prints
// every message it receives to stdout.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/osckit/go-osc/osc"
)

func main() {
	cfg := defaultConfig()

	var (
		configPath  = pflag.String("config", "", "path to a TOML config file")
		addr        = pflag.String("addr", cfg.Addr, "address to listen on")
		network     = pflag.String("net", cfg.Network, "network to listen on (udp or tcp)")
		readTimeout = pflag.Duration("read-timeout", cfg.ReadTimeout, "per-read timeout, 0 disables")
		verbose     = pflag.Bool("verbose", cfg.Verbose, "enable debug logging")
	)
	pflag.Parse()

	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// Flags given on the command line win over the config file.
	if pflag.CommandLine.Changed("addr") {
		cfg.Addr = *addr
	}
	if pflag.CommandLine.Changed("net") {
		cfg.Network = *network
	}
	if pflag.CommandLine.Changed("read-timeout") {
		cfg.ReadTimeout = *readTimeout
	}
	if pflag.CommandLine.Changed("verbose") {
		cfg.Verbose = *verbose
	}

	initLogger(cfg.Verbose)

	log.Info().Str("net", cfg.Network).Str("addr", cfg.Addr).Msg("oscdump: listening")

	var err error
	switch cfg.Network {
	case "tcp":
		s := &osc.StreamServer{Addr: cfg.Addr, Handler: dump, ReadTimeout: cfg.ReadTimeout}
		err = s.ListenAndServe()
	case "udp":
		s := &osc.Server{Addr: cfg.Addr, Handler: dump, ReadTimeout: cfg.ReadTimeout}
		err = s.ListenAndServe()
	default:
		err = fmt.Errorf("unsupported network %q", cfg.Network)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("oscdump: server stopped")
	}
}

func initLogger(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// dump prints a received packet, bundles are unfolded recursively.
func dump(p osc.Packet, a net.Addr) {
	switch p := p.(type) {
	case *osc.Message:
		fmt.Println(p)
	case *osc.Bundle:
		fmt.Printf("#bundle %s\n", p.Timetag)
		for _, elem := range p.Elements {
			dump(elem, a)
		}
	}
}
