package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"meeting-minutes/cmd/minutes/cmd/bootstrap"
	"meeting-minutes/cmd/minutes/cmd/serve"
	"meeting-minutes/cmd/minutes/cmd/summarize"
	"meeting-minutes/cmd/minutes/cmd/transcribe"
	"meeting-minutes/cmd/minutes/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minutes",
	Short: "Transcribe long meeting recordings and turn them into minutes",
	Long: `Transcribe long meeting recordings and turn them into minutes.
- Recordings are split into fixed windows and transcribed in parallel
- The transcript is summarized into an HTML report
- serve exposes the same flow as an upload API`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the command context so running jobs clean up their
// segment files before the process exits.
func Execute() {
	ctx, stop := signalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(summarize.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&bootstrap.ConfigPath, "config", "c", "", "YAML config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&bootstrap.Verbose, "verbose", "V", false, "verbose output")
}
