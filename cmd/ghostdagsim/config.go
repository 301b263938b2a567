package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type config struct {
	Nodes       int    `long:"nodes" short:"n" description:"Number of simulated nodes" default:"10"`
	K           int    `long:"k" short:"k" description:"GHOSTDAG k-cluster bound" default:"3"`
	Credits     int64  `long:"credits" short:"c" description:"Total blocks to mine across the fleet" default:"200"`
	GraceMillis int    `long:"grace" description:"Quiescence grace period in milliseconds" default:"500"`
	DebugLevel  string `long:"debuglevel" short:"d" description:"Logging level: trace, debug, info, warn, error, critical, or subsystem=level pairs" default:"info"`
}

func parseConfig() (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if cfg.Nodes < 1 {
		return nil, errors.New("--nodes must be at least 1")
	}
	if cfg.K < 0 {
		return nil, errors.New("--k must not be negative")
	}
	if cfg.Credits < 1 {
		return nil, errors.New("--credits must be at least 1")
	}

	return cfg, nil
}
