// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/background"
	"github.com/bitmark-inc/custodyd/beacon"
	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/epoch"
	"github.com/bitmark-inc/custodyd/mode"
	"github.com/bitmark-inc/custodyd/notify"
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/rpc"
	"github.com/bitmark-inc/custodyd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0o600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise()
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Epoch", theConfiguration.Epoch)
	log.Debugf("%s = %#v", "Proving", theConfiguration.Proving)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the epoch clock drives the challenge schedule
	genesis, err := theConfiguration.GenesisTime()
	if nil != err {
		log.Criticalf("genesis time error: %s", err)
		exitwithstatus.Message("genesis time error: %s", err)
	}
	clock, err := epoch.NewClock(genesis, theConfiguration.EpochDuration())
	if nil != err {
		log.Criticalf("epoch clock error: %s", err)
		exitwithstatus.Message("epoch clock error: %s", err)
	}

	// randomness seed pool, persisted across restarts
	pool := beacon.NewPool(clock, theConfiguration.SeedRetention(), storage.Pool.Beacon)

	// event fan-out; the queue feeds the operator event log
	dispatcher := notify.NewDispatcher()
	eventQueue := notify.NewQueue()
	dispatcher.Register(eventQueue)

	// restore the data set registry
	log.Info("initialise dataset")
	err = dataset.Initialise(clock, pool, dispatcher, piecerecord.NewDigestValidator(), dataset.Config{
		ChallengeCount: theConfiguration.Proving.ChallengeCount,
		WindowLength:   theConfiguration.Proving.WindowLength,
		DataSetsPool:   storage.Pool.DataSets,
		PiecesPool:     storage.Pool.Pieces,
	})
	if nil != err {
		log.Criticalf("dataset initialise error: %s", err)
		exitwithstatus.Message("dataset initialise error: %s", err)
	}
	defer dataset.Finalise()

	// stored state reloaded, ready to serve
	mode.Set(mode.Normal)

	// start up the rpc listeners
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, pool, clock)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// start background processes
	log.Info("start background")
	processes := background.Processes{
		&seedSweeper{
			log:  logger.New("sweeper"),
			pool: pool,
		},
		&periodWatchdog{
			log:      logger.New("watchdog"),
			interval: theConfiguration.EpochDuration(),
		},
		&eventLogger{
			log:   logger.New("events"),
			queue: eventQueue,
		},
	}
	backgroundProcesses := background.Start(processes, nil)
	defer backgroundProcesses.Stop()

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
