package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/OdyseeTeam/fast-tx/blockchain"
	"github.com/OdyseeTeam/fast-tx/blockchain/script"
	"github.com/OdyseeTeam/fast-tx/server"
	"github.com/OdyseeTeam/fast-tx/storage"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const prompt = "Enter raw transaction hex: "

var serveCmd = &cli.Command{
	Name:      "serve",
	Usage:     "decode transactions over HTTP",
	ArgsUsage: "[address, default " + server.DefaultAddr + "]",
	Action:    serveAction,
}

func decodeAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return cli.Exit("expected a single raw transaction hex argument", 2)
	}

	txHex := c.Args().First()
	if txHex == "" {
		var err error
		txHex, err = readTransactionHex(os.Stdin, c.App.ErrWriter, term.IsTerminal(int(os.Stdin.Fd())))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	return decodeTo(c.App.Writer, txHex)
}

// decodeTo writes the described transaction as indented JSON.
func decodeTo(w io.Writer, txHex string) error {
	_, record, err := blockchain.DecodeString(strings.TrimSpace(txHex), script.Classifier{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("could not decode transaction: %v", err), 1)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(record))
}

// readTransactionHex reads a single line, showing the prompt first when the input
// is a terminal.
func readTransactionHex(in io.Reader, out io.Writer, interactive bool) (string, error) {
	if interactive {
		fmt.Fprint(out, prompt)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrap(err, "reading transaction hex")
	}
	return strings.TrimSpace(line), nil
}

func serveAction(c *cli.Context) error {
	logrus.SetLevel(logrus.InfoLevel)

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(server.Config{Addr: c.Args().First()}, store, script.Classifier{})
	err = srv.Start()
	if err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
