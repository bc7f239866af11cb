package summarize

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/spf13/cobra"
	"meeting-minutes/cmd/minutes/cmd/bootstrap"
	"meeting-minutes/internal/api/v1/dto"
	"meeting-minutes/internal/app"
	"meeting-minutes/internal/app/converter"
)

var (
	instruction string
	contextPath string
	generalInfo string
)

func init() {
	Cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "what the minutes should focus on")
	Cmd.Flags().StringVar(&contextPath, "context", "", "pdf, docx or text file with background for the summary")
	Cmd.Flags().StringVar(&generalInfo, "general-info", "", `meeting metadata as JSON, e.g. {"meetingDate":"2024-05-01"}`)

	_ = Cmd.MarkFlagRequired("instruction")
}

// Cmd represents the summarize command
var Cmd = &cobra.Command{
	Use:   "summarize <audio-file>",
	Short: "Transcribe a recording and write meeting minutes",
	Long: `Transcribe a recording and write meeting minutes

- m4a and webm recordings are converted to mp3 first
- The transcript, instruction and optional context are summarized
- The summary is archived and the job is recorded in the job store`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap.Load()
		if err != nil {
			return err
		}
		defer env.Close()

		service, cleanup, err := app.InitializeMinutesService(env.Config, env.Keys, converter.NopObserver{}, env.Logger)
		if err != nil {
			return err
		}
		defer cleanup()

		response, err := service.Process(cmd.Context(), &dto.MinutesRequest{
			AudioPath:     args[0],
			AudioMimeType: mime.TypeByExtension(filepath.Ext(args[0])),
			OriginalName:  filepath.Base(args[0]),
			ContextPath:   contextPath,
			Instruction:   instruction,
			GeneralInfo:   generalInfo,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, response.Summary)
		fmt.Fprintf(out, "\nSummary saved to %s (job %s)\n", response.SummaryPath, response.JobID)
		return nil
	},
}
