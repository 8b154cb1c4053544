package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tubescribe/backend/internal/config"
	"github.com/tubescribe/backend/internal/srt"
	"github.com/tubescribe/backend/internal/transcribe"
)

var (
	transcribeLang string
	transcribeSRT  bool
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a local audio file",
	Long: `Transcribe an audio file already on disk (mp3, wav, m4a, ogg)
without going through the video download path.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringVar(&transcribeLang, "lang", "auto", "spoken language hint (e.g. en); auto lets the model detect it")
	transcribeCmd.Flags().BoolVar(&transcribeSRT, "srt", false, "also write a subtitle file next to the audio file")
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	godotenv.Load()
	cfg := config.Load()

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := transcribe.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.TranscribeModel)
	fmt.Fprintf(os.Stderr, "Transcribing %s...\n", filepath.Base(path))
	res, err := client.Transcribe(ctx, path, transcribeLang)
	if err != nil {
		return err
	}

	fmt.Println(res.Text)
	if transcribeSRT {
		out := srtPathFor(path)
		if err := os.WriteFile(out, []byte(srt.Render(res.Segments)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Subtitle written to %s (%d segments)\n", out, len(res.Segments))
	}
	return nil
}

// srtPathFor swaps the audio extension for .srt, keeping the directory.
func srtPathFor(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".srt"
}
