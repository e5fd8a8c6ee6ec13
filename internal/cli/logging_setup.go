package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/herodex/internal/config"
	"github.com/rshade/herodex/internal/logging"
)

// setupLogging configures logging from the loaded config and CLI flags.
// Commands that take over the terminal never log to it: without a log file
// their output is discarded.
func setupLogging(cmd *cobra.Command, lc config.LoggingConfig, debug, takesTerminal bool) logging.LogPathResult {
	if debug {
		lc.Level = "debug"
		lc.Format = logging.FormatConsole
		if !takesTerminal {
			lc.File = ""
		}
	}

	if err := lc.EnsureLogDir(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
	}

	logCfg := lc.ToLoggingConfig()
	logCfg.Stderr = cmd.ErrOrStderr()
	if takesTerminal && logCfg.Output != logging.OutputFile {
		logCfg.Output = logging.OutputDiscard
	}

	result := logging.NewLoggerWithPath(logCfg)
	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
		if takesTerminal {
			result.Logger = zerolog.Nop()
		}
	} else if result.UsingFile && debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}
	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	logging.FromContext(cmd.Context()).Debug().Str("command", cmd.Name()).Msg("command finished")
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
