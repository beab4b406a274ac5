package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/ipspectre/internal/loader"
	"github.com/ppiankov/ipspectre/internal/logging"
	"github.com/ppiankov/ipspectre/pkg/config"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

// Exit codes for structured error reporting.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitNotFound   = 3
)

func main() {
	logging.Init(false)

	root := &cobra.Command{
		Use:   "ipspectre",
		Short: "IP reputation enrichment",
		Long: `IPSpectre reads a spreadsheet of IP addresses, looks each one up in
AbuseIPDB and writes confidence score, report count and time since the
last report to a timestamped output spreadsheet.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewVersionCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(classifyError(err))
	}
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}

	var accessErr *loader.FileAccessError
	if errors.As(err, &accessErr) {
		return ExitNotFound
	}

	var formatErr *loader.FormatError
	if errors.As(err, &formatErr) || errors.Is(err, config.ErrMissingAPIKey) {
		return ExitInvalidArg
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") ||
		strings.Contains(msg, "expected") {
		return ExitInvalidArg
	}

	return ExitInternal
}
