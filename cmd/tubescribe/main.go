package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tubescribe",
	Short: "Fetch, transcribe and translate YouTube subtitles",
	Long: `tubescribe turns a YouTube URL into a timed transcript.

It tries the platform's own captions first and falls back to
downloading the audio and transcribing it with Whisper. The result
can optionally be translated line by line and written as an SRT file.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
