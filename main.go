package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Version will be set during build time
var Version string

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	app := &cli.App{
		Name:      "fast-tx",
		Version:   Version,
		Usage:     "decode a raw transaction",
		UsageText: "fast-tx <raw transaction hex>\n   fast-tx            (prompts for the hex)\n   fast-tx serve [address]",
		Action:    decodeAction,
		Commands:  []*cli.Command{serveCmd},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
