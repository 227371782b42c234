// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/config"
	"go.amzn.com/trainsim/railway/logging"
	"go.amzn.com/trainsim/railway/simulation"
)

type options struct {
	Config    string        `long:"config" description:"scenario file, the built-in layout when empty"`
	LogLevel  string        `long:"log-level" default:"info" description:"log level"`
	Listen    string        `long:"listen" default:"127.0.0.1:8080" description:"control API address, empty to disable"`
	DebugAddr string        `long:"debug-addr" description:"pprof address, disabled when empty"`
	Arbiter   string        `long:"arbiter" choice:"fifo" choice:"priority" description:"shared section arbiter, overrides the scenario"`
	Seed      int64         `long:"seed" description:"seed for trip counts, clock based when 0"`
	Pause     time.Duration `long:"pause" description:"station pause, overrides the scenario"`
	Tick      time.Duration `long:"tick" default:"50ms" description:"simulation step"`
	Messages  string        `long:"messages" description:"also append train messages to this file"`
}

func main() {
	opts := getCLIArgs()
	logging.SetLogLevel(opts.LogLevel)

	scenario, err := config.Load(opts.Config)
	if err != nil {
		log.WithError(err).Fatal("Failed to load scenario")
	}

	outputs := []io.Writer{os.Stdout}
	if opts.Messages != "" {
		f, err := os.OpenFile(opts.Messages, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.WithError(err).Fatal("Failed to open messages file")
		}
		defer f.Close()
		outputs = append(outputs, f)
	}
	messages := logging.NewMessageLogger(outputs...)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim, err := simulation.New(scenario, simulation.Options{
		Arbiter: opts.Arbiter,
		Seed:    seed,
		Pause:   opts.Pause,
		Tick:    opts.Tick,
		Display: messages,
	})
	if err != nil {
		log.WithError(err).Fatal("Invalid scenario")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Listen != "" {
		go startHTTPServer(ctx, opts.Listen, sim)
	}
	if opts.DebugAddr != "" {
		go startDebugServer(opts.DebugAddr)
	}

	messages.Printf("Hit play to start the simulation... (run %s, seed %d)", sim.RunID(), seed)
	if err := sim.Run(ctx); err != nil {
		log.WithError(err).Error("Simulation stopped")
		os.Exit(1)
	}
	messages.Printf("Simulation finished")
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	_, err := parser.ParseArgs(os.Args)

	if err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}

	return opts
}
