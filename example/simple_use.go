package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/leandrodaf/pianorec/sdk/midi"
	"github.com/leandrodaf/pianorec/sdk/piano"
	"github.com/leandrodaf/pianorec/sdk/recording"
	"github.com/leandrodaf/pianorec/sdk/session"
)

var logLevels = map[string]contracts.LogLevel{
	"debug": contracts.DebugLevel,
	"info":  contracts.InfoLevel,
	"warn":  contracts.WarnLevel,
	"error": contracts.ErrorLevel,
}

func main() {
	var (
		mode     = flag.StringP("mode", "m", "listen", "session mode: listen or record")
		input    = flag.StringP("input", "i", "", "input port ID or name")
		output   = flag.StringP("output", "o", "", "output port ID or name")
		name     = flag.StringP("name", "n", "First recording", "name to store the recording under")
		duration = flag.DurationP("duration", "d", 0, "stop after this long (0 waits for Ctrl+C)")
		play     = flag.BoolP("play", "p", false, "replay the recording when it stops")
		level    = flag.String("log-level", "info", "log level: debug, info, warn or error")
		logFile  = flag.String("log-file", "", "write logs to this file instead of stderr")
		list     = flag.BoolP("list", "l", false, "list ports and exit")
	)
	flag.Parse()

	log := logger.NewZapLogger()
	logLevel, ok := logLevels[strings.ToLower(*level)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", *level)
		os.Exit(2)
	}

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(logLevel),
		contracts.WithLogFile(*logFile),
		contracts.WithInputPort(*input),
		contracts.WithOutputPort(*output),
	}

	client, err := midi.NewMIDIClient(opts...)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		os.Exit(1)
	}
	defer client.Close()

	if *list {
		listPorts(client)
		return
	}

	connector, err := midi.NewConnector(client, opts...)
	if err != nil {
		log.Error("Failed to set up port connector", log.Field().Error("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := session.NewController(connector, printEvent(log),
		session.WithLogger(log),
		session.WithPlayer(recording.NewPlayer(recording.WithPlayerLogger(log))))
	defer controller.Close()

	if err := run(ctx, controller, connector, *mode, *name, *duration, *play); err != nil {
		log.Error("Session failed", log.Field().Error("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, c *session.Controller, out contracts.OutputConnector, mode, name string, d time.Duration, play bool) error {
	switch mode {
	case "listen":
		if err := c.StartListen(); err != nil {
			return err
		}
	case "record":
		if err := c.StartRecord(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	fmt.Fprintf(os.Stderr, "%s on the selected port... Press Ctrl+C to stop.\n", c.State())
	wait(ctx, d)

	if mode == "listen" {
		return c.Kill()
	}

	take, err := c.Stop(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Stored %q: %d messages over %s\n", name, take.Len(), take.Duration())

	if !play {
		return nil
	}
	playCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := c.Play(playCtx, name, out); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		<-ctx.Done()
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func printEvent(log contracts.Logger) piano.Handler {
	enc := json.NewEncoder(os.Stdout)
	return func(res piano.Result) {
		if res.Err != nil {
			return
		}
		if err := enc.Encode(res.Event.ClientEvent()); err != nil {
			log.Error("Failed to write event", log.Field().Error("error", err))
		}
	}
}

func listPorts(client contracts.ClientMIDI) {
	inputs, err := client.ListDevices()
	if err != nil {
		fmt.Fprintln(os.Stderr, "input ports:", err)
	}
	for _, d := range inputs {
		fmt.Printf("in  %d: %s\n", d.ID, d.Name)
	}
	outputs, err := client.ListOutputDevices()
	if err != nil {
		fmt.Fprintln(os.Stderr, "output ports:", err)
	}
	for _, d := range outputs {
		fmt.Printf("out %d: %s\n", d.ID, d.Name)
	}
}
