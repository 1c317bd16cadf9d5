package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ytsummarizer/internal/app"
	"ytsummarizer/internal/transcript"
	"ytsummarizer/pkg/config"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	summaryMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summaryErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	summaryBodyStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1)
)

var summarizeTranscriptOnly bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize <video-url>",
	Short: "Summarize a single video in the terminal",
	Long:  `Fetch the transcript of a YouTube video and print a structured summary of it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVarP(&summarizeTranscriptOnly, "transcript", "t", false, "Print the transcript instead of summarizing it")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	videoURL := strings.TrimSpace(args[0])
	if !validVideoInput(videoURL) {
		return userError(cmd, transcript.CodeInvalidInput)
	}

	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}
	pipeline := app.NewPipeline(service)

	if summarizeTranscriptOnly {
		var segments transcript.Transcript
		err := runStep(ctx, "Fetching transcript", func(ctx context.Context) error {
			var err error
			segments, err = pipeline.Transcript(ctx, videoURL)
			return err
		})
		if err != nil {
			return reportError(cmd, err)
		}
		fmt.Print(transcript.Format(segments))
		return nil
	}

	var result *app.Result
	err = runStep(ctx, "Summarizing video", func(ctx context.Context) error {
		var err error
		result, err = pipeline.Summarize(ctx, videoURL)
		return err
	})
	if err != nil {
		return reportError(cmd, err)
	}

	fmt.Println(summaryTitleStyle.Render("Summary"))
	fmt.Println(summaryMetaStyle.Render(fmt.Sprintf("video %s · %d segments · %s",
		result.VideoID, len(result.Transcript), result.Duration.Round(100*time.Millisecond))))
	fmt.Println(summaryBodyStyle.Render(strings.ReplaceAll(result.Summary, "*", "")))
	return nil
}

func validVideoInput(input string) bool {
	return transcript.LooksLikeYouTubeURL(input) || transcript.IsVideoID(input)
}

func runStep(ctx context.Context, title string, fn func(context.Context) error) error {
	var err error
	spinErr := spinner.New().
		Title(title).
		Action(func() { err = fn(ctx) }).
		Run()
	if err != nil {
		return err
	}
	return spinErr
}

// reportError prints the user-facing message and keeps the detail in the
// debug log.
func reportError(cmd *cobra.Command, err error) error {
	slog.Debug("Pipeline failed", "error", err)
	return userError(cmd, app.ErrorCode(err))
}

func userError(cmd *cobra.Command, code transcript.Code) error {
	msg := app.UserMessage(code)
	fmt.Println(summaryErrorStyle.Render(msg))
	cmd.SilenceErrors = true
	return errors.New(msg)
}
