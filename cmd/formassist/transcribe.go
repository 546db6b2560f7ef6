package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tbxark/formassist/speech"
)

func newTranscribeCommand(opts *rootOptions) *cobra.Command {
	var mimeType string
	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a recorded audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read audio: %w", err)
			}
			if mimeType == "" {
				mimeType = mime.TypeByExtension(filepath.Ext(args[0]))
			}
			if mimeType == "" {
				mimeType = speech.DefaultMIMEType
			}

			transcriber, err := newTranscriber(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if transcriber == nil {
				return fmt.Errorf("speech-to-text requires GEMINI_API_KEY")
			}
			text, err := transcriber.Transcribe(cmd.Context(), audio, mimeType)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "Audio MIME type (guessed from the extension when empty)")
	return cmd
}
