package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/internal/decoder"
	"github.com/johnquangdev/meetmind/internal/domain/entities"
	"github.com/johnquangdev/meetmind/internal/domain/repositories"
	"github.com/johnquangdev/meetmind/internal/infrastructure/cache"
	pkgai "github.com/johnquangdev/meetmind/pkg/ai"
	"github.com/johnquangdev/meetmind/pkg/metrics"
	"github.com/johnquangdev/meetmind/pkg/retry"
)

// StageCached marks a meeting whose summary was served from the cache
const StageCached = "cached"

// Model produces raw summary text for a transcript
type Model interface {
	GenerateSummary(ctx context.Context, transcript string) (string, error)
	Model() string
	Provider() pkgai.Provider
}

// Transcriber turns a reachable audio URL into transcript text
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// Storage archives raw model output and stages uploaded audio
type Storage interface {
	ArchiveRawOutput(ctx context.Context, raw string) (string, error)
	UploadAudio(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// SummarizeInput is a transcript plus the metadata stored with it
type SummarizeInput struct {
	Transcript string
	Title      string
	Tags       []string
	OwnerID    *uuid.UUID
}

// AudioInput names a recording by URL or carries the upload itself
type AudioInput struct {
	AudioURL    string
	File        io.Reader
	Filename    string
	Size        int64
	ContentType string
	Title       string
	Tags        []string
	OwnerID     *uuid.UUID
}

// Output is a summary and what happened while producing it
type Output struct {
	Result    *entities.SummaryResult
	Stage     string
	Dropped   int
	Cached    bool
	MeetingID *uuid.UUID
}

// Service defines summarization methods
type Service interface {
	Summarize(ctx context.Context, in SummarizeInput) (*Output, error)
	SummarizeAudio(ctx context.Context, in AudioInput) (*Output, error)
}

// Deps are the collaborators of the summary service. Only Model is
// required; a nil Cache, Storage, Meetings or Transcriber turns the
// matching feature off.
type Deps struct {
	Model       Model
	Transcriber Transcriber
	Storage     Storage
	Cache       cache.Store
	Meetings    repositories.MeetingRepository
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	CacheTTL    time.Duration
	Retry       retry.Policy
}

type summaryService struct {
	Deps
}

// NewService constructs the summary service
func NewService(deps Deps) Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewMetrics()
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = time.Hour
	}
	if deps.Retry == (retry.Policy{}) {
		deps.Retry = retry.DefaultPolicy
	}
	return &summaryService{Deps: deps}
}

// Summarize asks the model for a summary of in.Transcript and decodes it
func (s *summaryService) Summarize(ctx context.Context, in SummarizeInput) (*Output, error) {
	if strings.TrimSpace(in.Transcript) == "" {
		return nil, errors.ErrEmptyTranscript()
	}

	key := CacheKey(s.Model.Model(), in.Transcript)
	if res, ok := s.cached(ctx, key); ok {
		out := &Output{Result: res, Stage: StageCached, Cached: true}
		s.persist(ctx, in, out)
		return out, nil
	}

	raw, err := s.callModel(ctx, in.Transcript)
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errors.ErrModelFailed(err)
	}

	result, report, err := decoder.DecodeWithReport(raw)
	if err != nil {
		return nil, s.decodeFailed(ctx, raw, err)
	}

	s.Metrics.DecodeTotal.WithLabelValues(string(report.Stage)).Inc()
	for _, dropped := range report.Dropped {
		s.Metrics.DroppedActionItems.Inc()
		s.Logger.Warn("⚠️ Dropped malformed action item",
			zap.Int("index", dropped.Index),
			zap.String("reason", dropped.Reason))
	}

	s.store(ctx, key, result)

	out := &Output{Result: result, Stage: string(report.Stage), Dropped: len(report.Dropped)}
	s.persist(ctx, in, out)

	s.Logger.Info("✅ Summary generated",
		zap.String("model", s.Model.Model()),
		zap.String("stage", out.Stage),
		zap.Int("key_points", len(result.KeyPoints)),
		zap.Int("action_items", len(result.ActionItems)))

	return out, nil
}

// SummarizeAudio transcribes a recording and summarizes the transcript.
// Uploaded files are staged in object storage first so the transcription
// service can fetch them.
func (s *summaryService) SummarizeAudio(ctx context.Context, in AudioInput) (*Output, error) {
	if s.Transcriber == nil {
		return nil, errors.ErrModelUnavailable("assemblyai")
	}

	audioURL := in.AudioURL
	if in.File != nil {
		if s.Storage == nil {
			return nil, errors.ErrInvalidArgument("Audio uploads require object storage; send audio_url instead")
		}
		url, err := s.Storage.UploadAudio(ctx, in.Filename, in.File, in.Size, in.ContentType)
		if err != nil {
			return nil, errors.ErrStorageFailed("upload audio", err)
		}
		audioURL = url
	}
	if audioURL == "" {
		return nil, errors.ErrInvalidArgument("audio_url or file is required")
	}

	s.Logger.Info("🎙️ Transcribing audio", zap.String("filename", in.Filename))

	transcript, err := s.Transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errors.ErrTranscriptionFailed(err)
	}

	return s.Summarize(ctx, SummarizeInput{
		Transcript: transcript,
		Title:      in.Title,
		Tags:       in.Tags,
		OwnerID:    in.OwnerID,
	})
}

func (s *summaryService) callModel(ctx context.Context, transcript string) (string, error) {
	var raw string
	provider := string(s.Model.Provider())

	err := retry.Do(ctx, s.Retry, func(ctx context.Context) error {
		start := time.Now()
		out, err := s.Model.GenerateSummary(ctx, transcript)
		s.Metrics.ModelRequestDuration.
			WithLabelValues(provider, metrics.Outcome(err)).
			Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		raw = out
		return nil
	}, func(err error, wait time.Duration) {
		s.Logger.Warn("🔁 Model call failed, retrying",
			zap.String("provider", provider),
			zap.Duration("wait", wait),
			zap.Error(err))
	})

	return raw, err
}

func (s *summaryService) decodeFailed(ctx context.Context, raw string, err error) error {
	stage := "parse_failed"
	var extractErr *decoder.ExtractionError
	if stderrors.As(err, &extractErr) {
		stage = "extraction_failed"
	}
	s.Metrics.DecodeTotal.WithLabelValues(stage).Inc()

	key := ""
	if s.Storage != nil {
		archived, archiveErr := s.Storage.ArchiveRawOutput(ctx, raw)
		if archiveErr != nil {
			s.Logger.Error("❌ Failed to archive raw model output", zap.Error(archiveErr))
		} else {
			key = archived
			s.Metrics.ArchivedRawOutputs.Inc()
		}
	}

	s.Logger.Error("❌ Model output could not be decoded",
		zap.String("stage", stage),
		zap.String("raw_output_key", key),
		zap.String("excerpt", decoder.Excerpt(raw, 200)),
		zap.Error(err))

	return errors.ErrSummaryDecodeFailed(err, key)
}

func (s *summaryService) cached(ctx context.Context, key string) (*entities.SummaryResult, bool) {
	if s.Cache == nil {
		return nil, false
	}

	val, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Logger.Warn("⚠️ Summary cache lookup failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		s.Metrics.SummaryCacheResults.WithLabelValues("miss").Inc()
		return nil, false
	}

	res := entities.NewSummaryResult()
	if err := json.Unmarshal([]byte(val), res); err != nil {
		s.Logger.Warn("⚠️ Discarding unreadable cache entry", zap.Error(err))
		_ = s.Cache.Delete(ctx, key)
		return nil, false
	}

	s.Metrics.SummaryCacheResults.WithLabelValues("hit").Inc()
	return res, true
}

func (s *summaryService) store(ctx context.Context, key string, res *entities.SummaryResult) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, string(data), s.CacheTTL); err != nil {
		s.Logger.Warn("⚠️ Failed to cache summary", zap.Error(err))
	}
}

// persist records the meeting in history. Failures are logged only; the
// caller still gets the summary.
func (s *summaryService) persist(ctx context.Context, in SummarizeInput, out *Output) {
	if s.Meetings == nil {
		return
	}

	meeting := entities.NewMeeting(out.Result, in.Transcript, in.Title, in.Tags)
	meeting.OwnerID = in.OwnerID
	meeting.ModelUsed = s.Model.Model()
	meeting.DecodeStage = out.Stage
	meeting.DroppedItems = out.Dropped

	if err := s.Meetings.Create(ctx, meeting); err != nil {
		s.Logger.Error("❌ Failed to save meeting", zap.Error(err))
		return
	}
	out.MeetingID = &meeting.ID
}

// CacheKey identifies a transcript summarized by a given model
func CacheKey(model, transcript string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + transcript))
	return "summary:" + hex.EncodeToString(sum[:])
}
