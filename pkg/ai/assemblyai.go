package ai

import (
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meetmind/pkg/config"
)

// AssemblyAIClient turns recorded audio into transcript text using the
// official AssemblyAI SDK
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client. baseURL is only set in
// tests; pass "" for the public API.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig, baseURL string) *AssemblyAIClient {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}
	return &AssemblyAIClient{client: aai.NewClientWithOptions(opts...)}
}

// Transcribe submits audioURL and waits for the transcript. Speaker labelled
// utterances are rendered one per line as "Speaker X: text" so the model can
// attribute action items.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	return renderTranscript(transcript), nil
}

func renderTranscript(t aai.Transcript) string {
	if len(t.Utterances) == 0 {
		return strings.TrimSpace(deref(t.Text))
	}

	var sb strings.Builder
	for _, u := range t.Utterances {
		text := strings.TrimSpace(deref(u.Text))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "Speaker %s: %s", deref(u.Speaker), text)
	}
	return sb.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
