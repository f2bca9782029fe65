// Package main is the boxcorners command: it reads oriented box records
// from a JSON or YAML file and writes their world-space corners.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akmonengine/copious/internal/boxfile"
	"github.com/akmonengine/copious/kvargs"
	"github.com/akmonengine/copious/recordio"
)

const (
	flagInput       = "input"
	flagOutput      = "output"
	flagCompact     = "compact"
	flagDegrees     = "degrees"
	flagHomogeneous = "homogeneous"
	flagTag         = "tag"
	flagDebug       = "debug"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "boxcorners",
		Usage:     "compute the 8 corners of oriented 3D boxes",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:     flagInput,
				Aliases:  []string{"i"},
				Usage:    "JSON or YAML file with box records",
				EnvVars:  []string{"BOXCORNERS_INPUT"},
				Required: true,
			},
			&cli.PathFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "JSON or YAML file to write; JSON on stdout when unset",
				EnvVars: []string{"BOXCORNERS_OUTPUT"},
			},
			&cli.BoolFlag{
				Name:  flagCompact,
				Usage: "write JSON without indentation",
			},
			&cli.BoolFlag{
				Name:    flagDegrees,
				Usage:   "read euler angles as degrees",
				EnvVars: []string{"BOXCORNERS_DEGREES"},
			},
			&cli.BoolFlag{
				Name:  flagHomogeneous,
				Usage: "write poses as 4x4 instead of 3x4",
			},
			&cli.GenericFlag{
				Name:  flagTag,
				Usage: "key=value attached to every output record, repeatable",
				Value: &kvargs.KeyValue{},
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Usage:   "enable debug logging",
				EnvVars: []string{"BOXCORNERS_DEBUG"},
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c.Bool(flagDebug))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return run(c, logger.Sugar())
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(c *cli.Context, logger *zap.SugaredLogger) error {
	input := c.Path(flagInput)
	records, err := boxfile.Load(input)
	if err != nil {
		return errors.Wrapf(err, "loading boxes from %q", input)
	}
	logger.Debugw("loaded box records", "input", input, "count", len(records))

	var tags map[string]string
	if kv, ok := c.Generic(flagTag).(*kvargs.KeyValue); ok && len(*kv) > 0 {
		tags = *kv
	}

	out, err := boxfile.Process(records, boxfile.Options{
		Degrees:     c.Bool(flagDegrees),
		Homogeneous: c.Bool(flagHomogeneous),
		Tags:        tags,
	})
	if err != nil {
		return errors.Wrapf(err, "processing %q", input)
	}

	pretty := !c.Bool(flagCompact)
	output := c.Path(flagOutput)
	if output == "" {
		return recordio.EncodeJSON(c.App.Writer, out, pretty)
	}

	if err := recordio.Write(out, output, pretty); err != nil {
		return errors.Wrapf(err, "writing corners to %q", output)
	}
	logger.Infow("wrote box corners", "output", output, "count", len(out))

	return nil
}
