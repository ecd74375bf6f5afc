// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect  string
	keyFile  string
	password string
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "custody-cli"
	// app.Usage = ""
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2160",
			Usage: " custodyd host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "keyfile, k",
			Value: "custody.key",
			Usage: " `FILE` holding the encrypted Ed25519 seed",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " key file `PASSWORD` (prompted when not given)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate a new owner key pair into the key file",
			Action: runGenerate,
		},
		{
			Name:      "create",
			Usage:     "create a new data set",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "delay, d",
					Value: 1,
					Usage: " challenge delay in epochs `COUNT`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "transfer",
			Usage:     "transfer a data set to another owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
				cli.StringFlag{
					Name:  "newowner, o",
					Value: "",
					Usage: "*base58 identity of the receiving owner `IDENTITY`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "delete",
			Usage:     "delete a data set",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
			},
			Action: runDelete,
		},
		{
			Name:      "add",
			Usage:     "add pieces to a data set",
			ArgsUsage: "ROOT-HEX:SIZE …\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "remove",
			Usage:     "remove pieces from a data set",
			ArgsUsage: "PIECE-ID …\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
			},
			Action: runRemove,
		},
		{
			Name:      "show",
			Usage:     "display a data set record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
			},
			Action: runShow,
		},
		{
			Name:      "pieces",
			Usage:     "list the live pieces of a data set",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
			},
			Action: runPieces,
		},
		{
			Name:      "challenges",
			Usage:     "display the current challenge set of a data set",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
			},
			Action: runChallenges,
		},
		{
			Name:      "digest",
			Usage:     "compute the committed piece root of local files",
			ArgsUsage: "FILE …\n   (* = required)",
			Action:    runDigest,
		},
		{
			Name:      "prove",
			Usage:     "submit possession proofs for the current window",
			ArgsUsage: "[PIECE-ID:FILE …]\n   (* = required, + = either file or arguments)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+JSON `FILE` holding the proof list",
				},
			},
			Action: runProve,
		},
		{
			Name:      "nextperiod",
			Usage:     "acknowledge a fault and open the next proving period",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "dataset, s",
					Value: 0,
					Usage: "*data set `ID`",
				},
			},
			Action: runNextPeriod,
		},
		{
			Name:      "publish",
			Usage:     "publish a randomness seed for a finalised epoch",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "epoch, e",
					Value: 0,
					Usage: "*epoch `NUMBER`",
				},
				cli.StringFlag{
					Name:  "seed, r",
					Value: "",
					Usage: "*32 byte seed `HEX`",
				},
			},
			Action: runPublish,
		},
		{
			Name:      "seed",
			Usage:     "fetch the stored randomness seed for an epoch",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "epoch, e",
					Value: 0,
					Usage: "*epoch `NUMBER`",
				},
			},
			Action: runSeed,
		},
		{
			Name:   "info",
			Usage:  "display custodyd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display custody-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		c.App.Metadata["config"] = &metadata{
			connect:  c.GlobalString("connect"),
			keyFile:  c.GlobalString("keyfile"),
			password: c.GlobalString("password"),
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
