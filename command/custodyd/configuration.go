// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/configuration"
	"github.com/bitmark-inc/custodyd/rpc"
	"github.com/bitmark-inc/custodyd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "custodyd.key"
	defaultCertificateFile = "custodyd.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "custody.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "custodyd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10

	defaultEpochDuration  = 30   // seconds
	defaultSeedRetention  = 1440 // minutes
	defaultChallengeCount = 5
	defaultWindowLength   = 60 // epochs
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - directory and name of the database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// EpochType - wall clock epoch parameters
type EpochType struct {
	Genesis  string `gluamapper:"genesis" json:"genesis"`   // RFC 3339
	Duration uint64 `gluamapper:"duration" json:"duration"` // seconds
}

// BeaconType - seed pool parameters
type BeaconType struct {
	Retention uint64 `gluamapper:"retention" json:"retention"` // minutes
}

// ProvingType - challenge window parameters
type ProvingType struct {
	ChallengeCount int    `gluamapper:"challenge_count" json:"challenge_count"`
	WindowLength   uint64 `gluamapper:"window_length" json:"window_length"` // epochs
}

// Configuration - the daemon configuration
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`

	Database  DatabaseType         `gluamapper:"database" json:"database"`
	ClientRPC rpc.Configuration    `gluamapper:"client_rpc" json:"client_rpc"`
	Epoch     EpochType            `gluamapper:"epoch" json:"epoch"`
	Beacon    BeaconType           `gluamapper:"beacon" json:"beacon"`
	Proving   ProvingType          `gluamapper:"proving" json:"proving"`
	Logging   logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GenesisTime - parse the configured genesis timestamp
func (c *Configuration) GenesisTime() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Epoch.Genesis)
}

// EpochDuration - the configured epoch length
func (c *Configuration) EpochDuration() time.Duration {
	return time.Duration(c.Epoch.Duration) * time.Second
}

// SeedRetention - the configured seed retention window
func (c *Configuration) SeedRetention() time.Duration {
	return time.Duration(c.Beacon.Retention) * time.Minute
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		ClientRPC: rpc.Configuration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Epoch: EpochType{
			Genesis:  "", // required
			Duration: defaultEpochDuration,
		},

		Beacon: BeaconType{
			Retention: defaultSeedRetention,
		},

		Proving: ProvingType{
			ChallengeCount: defaultChallengeCount,
			WindowLength:   defaultWindowLength,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q must not contain a path", *f[0])
		}
	}

	// timing parameters must be valid
	if _, err := options.GenesisTime(); nil != err {
		return nil, fmt.Errorf("epoch genesis: %q is not RFC 3339: %s", options.Epoch.Genesis, err)
	}
	if 0 == options.Epoch.Duration {
		return nil, fmt.Errorf("epoch duration cannot be zero")
	}
	if options.Proving.ChallengeCount <= 0 {
		return nil, fmt.Errorf("proving challenge_count: %d is invalid", options.Proving.ChallengeCount)
	}
	if 0 == options.Proving.WindowLength {
		return nil, fmt.Errorf("proving window_length cannot be zero")
	}

	// make sure the log directory exists
	if fileInfo, err := os.Stat(options.Logging.Directory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.Logging.Directory)
	}

	return options, nil
}
