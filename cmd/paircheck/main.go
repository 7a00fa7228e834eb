// Command paircheck validates autopair rule files. It loads each YAML file,
// compiles every rule against the bundled tree-sitter grammars, and reports
// configuration or compilation errors, exiting non-zero on the first bad
// file. Run it from CI to keep rule files honest.
package main

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/odvcencio/autopair"
	"github.com/odvcencio/autopair/config"
	_ "github.com/odvcencio/autopair/grammars"
	"github.com/odvcencio/autopair/treesitter"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:          "paircheck <rules.yaml>...",
		Short:        "Validate autopair rule files against the bundled grammars",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(verbosity)
			return check(args)
		},
	}

	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	return cmd
}

func setupLogger(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

func check(paths []string) error {
	logger := log.With().Str("component", "paircheck").Logger()
	failed := false

	for _, path := range paths {
		f, err := config.LoadFile(path)
		if err != nil {
			logger.Error().Str("file", path).Err(err).Msg("cannot load rule file")
			failed = true
			continue
		}

		reg := autopair.NewRegistry(
			treesitter.Compilers(),
			autopair.WithRegistryLogger(logger),
		)

		bad := 0
		for i, spec := range f.Specs() {
			if err := reg.Define(spec); err != nil {
				logger.Error().Str("file", path).Int("rule", i).Err(err).Msg("invalid rule")
				bad++
			}
		}

		if bad > 0 {
			failed = true
			continue
		}
		logger.Info().Str("file", path).Str("language", f.Language).Int("rules", reg.Len()).Msg("rule file ok")
	}

	if failed {
		return errors.New("paircheck: validation failed")
	}
	return nil
}
