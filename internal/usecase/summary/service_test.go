package summary

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/internal/domain/entities"
	"github.com/johnquangdev/meetmind/internal/domain/repositories"
	"github.com/johnquangdev/meetmind/internal/infrastructure/cache"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external"
	pkgai "github.com/johnquangdev/meetmind/pkg/ai"
	"github.com/johnquangdev/meetmind/pkg/retry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const goodOutput = "Here you go:\n```json\n" + `{
  "summary": "Sprint planning",
  "key_points": ["Scope agreed"],
  "action_items": [
    {"task": "Write tests", "owner": "Ann", "deadline": "Friday", "priority": "high"},
    {"owner": "Bob"}
  ]
}` + "\n```"

var fastRetry = retry.Policy{
	InitialInterval: time.Millisecond,
	MaxInterval:     time.Millisecond,
	MaxRetries:      2,
}

type fakeModel struct {
	mu      sync.Mutex
	outputs []string
	errs    []error
	calls   int
}

func (f *fakeModel) GenerateSummary(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.outputs) {
		return f.outputs[i], nil
	}
	return f.outputs[len(f.outputs)-1], nil
}

func (f *fakeModel) Model() string            { return "test-model" }
func (f *fakeModel) Provider() pkgai.Provider { return pkgai.ProviderOpenAI }

type fakeStorage struct {
	archived []string
	uploaded string
	err      error
}

func (f *fakeStorage) ArchiveRawOutput(_ context.Context, raw string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.archived = append(f.archived, raw)
	return fmt.Sprintf("raw-outputs/2025-03-10/%d.txt", len(f.archived)), nil
}

func (f *fakeStorage) UploadAudio(_ context.Context, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploaded = string(data)
	return "https://files.example.com/audio/" + filename, nil
}

type fakeTranscriber struct {
	gotURL string
	text   string
	err    error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioURL string) (string, error) {
	f.gotURL = audioURL
	return f.text, f.err
}

type fakeMeetings struct {
	created []*entities.Meeting
}

func (f *fakeMeetings) Create(_ context.Context, m *entities.Meeting) error {
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMeetings) GetByID(context.Context, uuid.UUID) (*entities.Meeting, error) {
	return nil, repositories.ErrMeetingNotFound
}

func (f *fakeMeetings) List(context.Context, repositories.MeetingFilter) ([]*entities.Meeting, int64, error) {
	return nil, 0, nil
}

func (f *fakeMeetings) Delete(context.Context, uuid.UUID) error { return nil }

func TestSummarize_DecodesAndPersists(t *testing.T) {
	model := &fakeModel{outputs: []string{goodOutput}}
	meetings := &fakeMeetings{}
	owner := uuid.New()

	svc := NewService(Deps{Model: model, Meetings: meetings, Retry: fastRetry})

	out, err := svc.Summarize(context.Background(), SummarizeInput{
		Transcript: "Ann: I'll write tests by Friday.",
		Title:      "Planning",
		Tags:       []string{"sprint"},
		OwnerID:    &owner,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sprint planning", out.Result.Summary)
	require.Len(t, out.Result.ActionItems, 1)
	assert.Equal(t, entities.PriorityHigh, out.Result.ActionItems[0].Priority)
	assert.Equal(t, 1, out.Dropped)
	assert.False(t, out.Cached)

	require.Len(t, meetings.created, 1)
	saved := meetings.created[0]
	assert.Equal(t, "Planning", saved.Title)
	assert.Equal(t, "Ann", saved.Owner)
	assert.Equal(t, "test-model", saved.ModelUsed)
	assert.Equal(t, &owner, saved.OwnerID)
	assert.Equal(t, 1, saved.DroppedItems)
	require.NotNil(t, out.MeetingID)
	assert.Equal(t, saved.ID, *out.MeetingID)
}

func TestSummarize_BlankTranscript(t *testing.T) {
	model := &fakeModel{outputs: []string{goodOutput}}
	svc := NewService(Deps{Model: model, Retry: fastRetry})

	_, err := svc.Summarize(context.Background(), SummarizeInput{Transcript: "  \n "})

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_SUMMARY_EMPTY_TRANSCRIPT, appErr.Code)
	assert.Zero(t, model.calls)
}

func TestSummarize_UsesCache(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()

	model := &fakeModel{outputs: []string{goodOutput}}
	svc := NewService(Deps{Model: model, Cache: store, Retry: fastRetry})

	in := SummarizeInput{Transcript: "Ann: hello"}
	first, err := svc.Summarize(context.Background(), in)
	require.NoError(t, err)

	second, err := svc.Summarize(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, model.calls)
	assert.True(t, second.Cached)
	assert.Equal(t, StageCached, second.Stage)
	assert.Equal(t, first.Result, second.Result)
}

func TestSummarize_RetriesTransientModelErrors(t *testing.T) {
	model := &fakeModel{
		outputs: []string{goodOutput},
		errs:    []error{&external.StatusError{Service: "openai", StatusCode: 503, Body: "busy"}},
	}
	svc := NewService(Deps{Model: model, Retry: fastRetry})

	_, err := svc.Summarize(context.Background(), SummarizeInput{Transcript: "Ann: hello"})
	require.NoError(t, err)
	assert.Equal(t, 2, model.calls)
}

func TestSummarize_ModelFailure(t *testing.T) {
	model := &fakeModel{
		outputs: []string{goodOutput},
		errs:    []error{&external.StatusError{Service: "openai", StatusCode: 401, Body: "bad key"}},
	}
	svc := NewService(Deps{Model: model, Retry: fastRetry})

	_, err := svc.Summarize(context.Background(), SummarizeInput{Transcript: "Ann: hello"})

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_MODEL_FAILED, appErr.Code)
	assert.Equal(t, 1, model.calls)

	var statusErr *external.StatusError
	assert.True(t, stderrors.As(err, &statusErr))
}

func TestSummarize_ArchivesUndecodableOutput(t *testing.T) {
	model := &fakeModel{outputs: []string{"I'm sorry, I can't help with that."}}
	storage := &fakeStorage{}
	meetings := &fakeMeetings{}
	svc := NewService(Deps{Model: model, Storage: storage, Meetings: meetings, Retry: fastRetry})

	_, err := svc.Summarize(context.Background(), SummarizeInput{Transcript: "Ann: hello"})

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_SUMMARY_DECODE_FAILED, appErr.Code)
	assert.Equal(t, "raw-outputs/2025-03-10/1.txt", appErr.Details["raw_output_key"])
	assert.Equal(t, []string{"I'm sorry, I can't help with that."}, storage.archived)
	assert.Empty(t, meetings.created)
}

func TestSummarize_ArchiveFailureStillReportsDecodeError(t *testing.T) {
	model := &fakeModel{outputs: []string{`{"summary": "x",,, oops`}}
	storage := &fakeStorage{err: stderrors.New("bucket gone")}
	svc := NewService(Deps{Model: model, Storage: storage, Retry: fastRetry})

	_, err := svc.Summarize(context.Background(), SummarizeInput{Transcript: "Ann: hello"})

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_SUMMARY_DECODE_FAILED, appErr.Code)
	_, hasKey := appErr.Details["raw_output_key"]
	assert.False(t, hasKey)
}

func TestSummarizeAudio_URL(t *testing.T) {
	model := &fakeModel{outputs: []string{goodOutput}}
	transcriber := &fakeTranscriber{text: "Speaker A: I'll write tests."}
	svc := NewService(Deps{Model: model, Transcriber: transcriber, Retry: fastRetry})

	out, err := svc.SummarizeAudio(context.Background(), AudioInput{AudioURL: "https://cdn.example.com/call.mp3"})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/call.mp3", transcriber.gotURL)
	assert.Equal(t, "Sprint planning", out.Result.Summary)
}

func TestSummarizeAudio_UploadIsStaged(t *testing.T) {
	model := &fakeModel{outputs: []string{goodOutput}}
	transcriber := &fakeTranscriber{text: "Speaker A: hi"}
	storage := &fakeStorage{}
	svc := NewService(Deps{Model: model, Transcriber: transcriber, Storage: storage, Retry: fastRetry})

	_, err := svc.SummarizeAudio(context.Background(), AudioInput{
		File:     strings.NewReader("RIFF...."),
		Filename: "call.wav",
		Size:     8,
	})
	require.NoError(t, err)

	assert.Equal(t, "RIFF....", storage.uploaded)
	assert.Equal(t, "https://files.example.com/audio/call.wav", transcriber.gotURL)
}

func TestSummarizeAudio_Errors(t *testing.T) {
	model := &fakeModel{outputs: []string{goodOutput}}

	tests := []struct {
		name string
		deps Deps
		in   AudioInput
		code errors.ErrorCode
	}{
		{
			name: "no transcriber",
			deps: Deps{Model: model},
			in:   AudioInput{AudioURL: "https://x"},
			code: errors.ErrorCode_MODEL_UNAVAILABLE,
		},
		{
			name: "upload without storage",
			deps: Deps{Model: model, Transcriber: &fakeTranscriber{}},
			in:   AudioInput{File: strings.NewReader("x")},
			code: errors.ErrorCode_INVALID_ARGUMENT,
		},
		{
			name: "nothing to transcribe",
			deps: Deps{Model: model, Transcriber: &fakeTranscriber{}},
			code: errors.ErrorCode_INVALID_ARGUMENT,
		},
		{
			name: "transcription failed",
			deps: Deps{Model: model, Transcriber: &fakeTranscriber{err: stderrors.New("bad audio")}},
			in:   AudioInput{AudioURL: "https://x"},
			code: errors.ErrorCode_TRANSCRIPTION_FAILED,
		},
		{
			name: "silent recording",
			deps: Deps{Model: model, Transcriber: &fakeTranscriber{text: ""}},
			in:   AudioInput{AudioURL: "https://x"},
			code: errors.ErrorCode_SUMMARY_EMPTY_TRANSCRIPT,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.deps.Retry = fastRetry
			_, err := NewService(tt.deps).SummarizeAudio(context.Background(), tt.in)

			var appErr errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("gpt", "hello")
	assert.Equal(t, a, CacheKey("gpt", "hello"))
	assert.NotEqual(t, a, CacheKey("mistral", "hello"))
	assert.NotEqual(t, CacheKey("ab", "c"), CacheKey("a", "bc"))
	assert.True(t, strings.HasPrefix(a, "summary:"))
}
