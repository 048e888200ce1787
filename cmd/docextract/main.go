// Command docextract extracts structure from Word documents and converts
// it to other formats.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsawler/docextract"
)

var version = "0.1.0"

// app holds state shared by subcommands.
type app struct {
	configPath string
	verbose    bool
	trace      bool

	cfg    docextract.Config
	logger zerolog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "docextract",
		Short: "Extract structure from Word documents",
		Long: `docextract reads .docx packages and legacy .doc files and extracts
their headings, paragraphs, tables and images.

Legacy .doc files are converted to text with antiword, which must be
installed and on PATH (or configured with antiword.path).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	rootCmd.PersistentFlags().BoolVar(&a.trace, "trace", false, "log trace messages (very noisy)")

	rootCmd.AddCommand(a.convertCmd())
	rootCmd.AddCommand(a.dumpCmd())
	rootCmd.AddCommand(a.formatsCmd())

	return rootCmd
}

// setup configures logging and loads the config file.
func (a *app) setup(stderr io.Writer) error {
	level := zerolog.WarnLevel
	switch {
	case a.trace:
		level = zerolog.TraceLevel
	case a.verbose:
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	a.cfg = docextract.DefaultConfig()
	if a.configPath != "" {
		cfg, err := docextract.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	a.cfg.Logger = &a.logger
	return nil
}
