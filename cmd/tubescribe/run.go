package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tubescribe/backend/internal/captions"
	"github.com/tubescribe/backend/internal/config"
	"github.com/tubescribe/backend/internal/download"
	"github.com/tubescribe/backend/internal/pipeline"
	"github.com/tubescribe/backend/internal/transcribe"
	"github.com/tubescribe/backend/internal/translate"
)

var (
	runLang  string
	runNoSRT bool
	runOut   string
)

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Transcribe a single video and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runLang, "lang", "", "target language for translation (e.g. fa); empty keeps the source language")
	runCmd.Flags().BoolVar(&runNoSRT, "no-srt", false, "print the transcript only, do not write an .srt file")
	runCmd.Flags().StringVar(&runOut, "out", "", "directory for the subtitle file (default: OUTPUT_PATH)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	godotenv.Load()
	cfg := config.Load()
	if runOut != "" {
		cfg.OutputPath = runOut
	}
	for _, dir := range []string{cfg.OutputPath, cfg.WorkPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	p := &pipeline.Pipeline{
		Captions:    captions.NewClient(cfg.CaptionsURL, cfg.SourceLang),
		Downloader:  download.New(cfg.YtdlpBin, cfg.WorkPath),
		Transcriber: transcribe.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.TranscribeModel),
		Translator:  translate.NewOpenAITranslator(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.TranslateModel),
		SourceLang:  cfg.SourceLang,
		OutputDir:   cfg.OutputPath,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := p.Run(ctx, pipeline.Request{
		URL:        args[0],
		TargetLang: runLang,
		EmitSRT:    !runNoSRT,
	}, func(e pipeline.Event) {
		if e.State == pipeline.StateFailed {
			return // the returned error carries the message
		}
		fmt.Fprintf(os.Stderr, "[%3.0f%%] %s\n", e.Progress*100, e.Message)
	})
	if err != nil {
		return err
	}

	fmt.Println(res.Text)
	if res.SRTPath != "" {
		fmt.Fprintf(os.Stderr, "Subtitle written to %s (%d segments, %s)\n", res.SRTPath, res.SegmentCount, res.Source)
	}
	return nil
}
