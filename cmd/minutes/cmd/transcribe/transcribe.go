package transcribe

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"meeting-minutes/cmd/minutes/cmd/bootstrap"
	"meeting-minutes/internal/app"
	"meeting-minutes/internal/app/converter"
)

var (
	outputPath    string
	forceProgress bool
	noProgress    bool
)

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the transcript to this file instead of stdout")
	Cmd.Flags().BoolVar(&forceProgress, "progress", false, "show progress bars even when not attached to a terminal")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "never show progress bars")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a recording of any length",
	Long: `Transcribe a recording of any length

- The duration is probed with ffprobe
- Fixed windows are cut with ffmpeg and transcribed in parallel
- The segment transcripts are joined in time order`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap.Load()
		if err != nil {
			return err
		}
		defer env.Close()

		progress := converter.NewProgressObserver(converter.ProgressConfig{
			Enabled: !noProgress && converter.ShouldShowProgress(forceProgress),
			Writer:  cmd.ErrOrStderr(),
		})

		c, err := app.InitializeConverter(env.Config, env.Keys, progress, env.Logger)
		if err != nil {
			return err
		}

		result, err := c.Transcribe(cmd.Context(), args[0])
		progress.Close()
		if err != nil {
			return err
		}

		env.Logger.Info("Transcription complete",
			zap.Int("duration_sec", result.DurationSec),
			zap.Int("segments", result.SegmentCount),
			zap.Duration("elapsed", result.ProcessingDur),
		)

		if outputPath != "" {
			return os.WriteFile(outputPath, []byte(result.Transcript), 0644)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Transcript)
		return err
	},
}
