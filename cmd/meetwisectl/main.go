// meetwisectl runs parts of the meeting pipeline from the command line:
// transcribing an audio file and analyzing a transcript without a running
// server. Useful for tuning extraction against recorded meetings.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/meetwise/meetwise/internal/usecase/extraction"
	"github.com/meetwise/meetwise/internal/usecase/summary"
)

// rosterFile is the YAML shape accepted by --roster
type rosterFile struct {
	Participants []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"participants"`
}

func main() {
	root := &cobra.Command{
		Use:           "meetwisectl",
		Short:         "Run meeting transcription and analysis from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newTranscribeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		transcriptPath string
		rosterPath     string
		strategy       string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize a transcript and extract action items",
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := os.ReadFile(transcriptPath)
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			roster, err := loadRoster(rosterPath)
			if err != nil {
				return err
			}

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			summarizer := summary.NewService(logger)
			extractor := extraction.NewService(extraction.Config{Strategy: strategy}, logger)

			result := summarizer.Summarize(string(transcript), roster)
			items := extractor.Extract(cmd.Context(), string(transcript), roster)

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"summary":      result.Text,
					"key_points":   result.KeyPoints,
					"method":       result.Method,
					"action_items": items,
				})
			}

			fmt.Fprintln(out, "Summary:")
			fmt.Fprintln(out, result.Text)
			if len(result.KeyPoints) > 0 {
				fmt.Fprintln(out, "\nKey points:")
				for _, kp := range result.KeyPoints {
					fmt.Fprintf(out, "  - %s\n", kp)
				}
			}
			fmt.Fprintf(out, "\nAction items (%d):\n", len(items))
			for _, item := range items {
				fmt.Fprintf(out, "  - [%s] %s (confidence %.2f)\n", item.Assignee, item.Text, item.Confidence)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Path to a transcript text file")
	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "Path to a roster YAML file")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "pattern", "Extraction strategy: pattern or syntax")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func newTranscribeCmd() *cobra.Command {
	var (
		audioURL      string
		speakerLabels bool
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe an audio URL and print the speaker turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := os.Getenv("ASSEMBLYAI_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("ASSEMBLYAI_API_KEY is not set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := aai.NewClient(apiKey)
			transcript, err := client.Transcripts.TranscribeFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
				SpeakerLabels: aai.Bool(speakerLabels),
			})
			if err != nil {
				return fmt.Errorf("transcription failed: %w", err)
			}

			if len(transcript.Utterances) == 0 {
				fmt.Println(aai.ToString(transcript.Text))
				return nil
			}
			for _, u := range transcript.Utterances {
				fmt.Printf("Speaker %s: %s\n", aai.ToString(u.Speaker), aai.ToString(u.Text))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&audioURL, "url", "u", "", "Publicly reachable audio URL")
	cmd.Flags().BoolVar(&speakerLabels, "speaker-labels", true, "Diarize speakers")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Minute, "Overall transcription timeout")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func loadRoster(path string) ([]extraction.Participant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}

	roster := make([]extraction.Participant, 0, len(file.Participants))
	for _, p := range file.Participants {
		roster = append(roster, extraction.Participant{Name: p.Name, Email: p.Email})
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}
	return roster, nil
}
