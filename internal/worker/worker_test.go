package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/streamforge/transcoder/internal/config"
	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/internal/videos"
	"github.com/streamforge/transcoder/pkg/utils"
)

type nopLogger struct{}

func (nopLogger) InitLogger()                                  {}
func (nopLogger) Debug(args ...interface{})                    {}
func (nopLogger) Debugf(template string, args ...interface{})  {}
func (nopLogger) Info(args ...interface{})                     {}
func (nopLogger) Infof(template string, args ...interface{})   {}
func (nopLogger) Warn(args ...interface{})                     {}
func (nopLogger) Warnf(template string, args ...interface{})   {}
func (nopLogger) Error(args ...interface{})                    {}
func (nopLogger) Errorf(template string, args ...interface{})  {}
func (nopLogger) DPanic(args ...interface{})                   {}
func (nopLogger) DPanicf(template string, args ...interface{}) {}
func (nopLogger) Fatal(args ...interface{})                    {}
func (nopLogger) Fatalf(template string, args ...interface{})  {}

type fakeRepo struct {
	mu        sync.Mutex
	records   map[string]*models.Video
	order     []string
	loseClaim bool
}

func newFakeRepo(records ...*models.Video) *fakeRepo {
	r := &fakeRepo{records: make(map[string]*models.Video)}
	for _, v := range records {
		clone := *v
		r.records[v.VideoID] = &clone
		r.order = append(r.order, v.VideoID)
	}
	return r
}

func (r *fakeRepo) get(id string) *models.Video {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.records[id]; ok {
		clone := *v
		return &clone
	}
	return nil
}

func (r *fakeRepo) CreateVideo(_ context.Context, v *models.Video) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *v
	r.records[v.VideoID] = &clone
	r.order = append(r.order, v.VideoID)
	return v, nil
}

func (r *fakeRepo) GetVideoByID(_ context.Context, id string) (*models.Video, error) {
	if v := r.get(id); v != nil {
		return v, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) UpdateVideo(_ context.Context, v *models.Video) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *v
	r.records[v.VideoID] = &clone
	return v, nil
}

func (r *fakeRepo) DeleteVideo(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

func (r *fakeRepo) GetSources(context.Context, *utils.Pagination) ([]*models.Video, error) {
	return nil, nil
}
func (r *fakeRepo) GetRecentEncodings(context.Context, int) ([]*models.Video, error) {
	return nil, nil
}
func (r *fakeRepo) GetQueuedEncodings(context.Context) ([]*models.Video, error) { return nil, nil }
func (r *fakeRepo) GetEncodings(context.Context, string) ([]*models.Video, error) {
	return nil, nil
}
func (r *fakeRepo) GetSuccessfulEncodings(context.Context, string) ([]*models.Video, error) {
	return nil, nil
}
func (r *fakeRepo) FindEncodingForProfile(context.Context, string, string) (*models.Video, error) {
	return nil, nil
}

func (r *fakeRepo) NextQueued(context.Context) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if v, ok := r.records[id]; ok && v.Status == models.StatusQueued {
			clone := *v
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ClaimQueued(_ context.Context, id string) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loseClaim {
		return nil, nil
	}
	v, ok := r.records[id]
	if !ok || v.Status != models.StatusQueued {
		return nil, nil
	}
	now := time.Now()
	v.Status = models.StatusProcessing
	v.StartedEncodingAt = &now
	clone := *v
	return &clone, nil
}

type fakeAWS struct {
	mu       sync.Mutex
	content  string
	uploaded []string
}

func (a *fakeAWS) UploadFile(_ context.Context, key, localPath string) error {
	if _, err := os.Stat(localPath); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.uploaded = append(a.uploaded, key)
	return nil
}

func (a *fakeAWS) DownloadFile(_ context.Context, key, localPath string) error {
	return os.WriteFile(localPath, []byte(a.content), 0o644)
}

func (a *fakeAWS) RemoveObject(context.Context, string) error { return nil }

type fakeTranscoder struct {
	fail    bool
	recipes []string
}

func (t *fakeTranscoder) Execute(_ context.Context, recipe string, opts map[string]string) error {
	t.recipes = append(t.recipes, recipe)
	if t.fail {
		return errors.New("ffmpeg exited with status 1")
	}
	return os.WriteFile(opts["output_file"], []byte("encoded"), 0o644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Worker: config.WorkerConfig{Workdir: t.TempDir()},
		Media:  config.MediaConfig{FFmpegPath: "ffmpeg"},
	}
}

func sourceVideo() *models.Video {
	return &models.Video{
		VideoID:  "src1",
		Status:   models.StatusOriginal,
		Filename: "src1.avi",
		Width:    1920,
		Height:   1080,
		Duration: 60000,
	}
}

func queuedEncoding() *models.Video {
	now := time.Now()
	return &models.Video{
		VideoID:      "enc1",
		Status:       models.StatusQueued,
		Filename:     "enc1.webm",
		Parent:       "src1",
		Container:    "webm",
		Width:        640,
		Height:       480,
		VideoCodec:   "libvpx",
		VideoBitrate: 500,
		AudioCodec:   "libvorbis",
		AudioBitrate: 64,
		Profile:      "webm_sd",
		QueuedAt:     &now,
	}
}

func newTestWorker(repo videos.Repository, aws videos.AWSRepository, tr Transcoder, hooks Hooks, cfg *config.Config) *Worker {
	return NewWorker(cfg, nopLogger{}, repo, aws, tr, hooks)
}

func TestEncodeNextEmptyQueue(t *testing.T) {
	repo := newFakeRepo(sourceVideo())
	w := newTestWorker(repo, &fakeAWS{}, &fakeTranscoder{}, Hooks{}, testConfig(t))

	result := w.EncodeNext(context.Background())
	if result.Outcome != OutcomeNoJob {
		t.Fatalf("outcome = %s, want %s", result.Outcome, OutcomeNoJob)
	}
	if result.Video != nil {
		t.Errorf("no job should carry no video, got %+v", result.Video)
	}
}

func TestEncodeNextClaimLost(t *testing.T) {
	repo := newFakeRepo(sourceVideo(), queuedEncoding())
	repo.loseClaim = true
	w := newTestWorker(repo, &fakeAWS{}, &fakeTranscoder{}, Hooks{}, testConfig(t))

	result := w.EncodeNext(context.Background())
	if result.Outcome != OutcomeNoJob {
		t.Fatalf("outcome = %s, want %s", result.Outcome, OutcomeNoJob)
	}
	if got := repo.get("enc1").Status; got != models.StatusQueued {
		t.Errorf("lost claim must not touch the record, status = %s", got)
	}
}

func TestEncodeNextSuccess(t *testing.T) {
	repo := newFakeRepo(sourceVideo(), queuedEncoding())
	aws := &fakeAWS{content: "raw video bytes"}
	var processed, succeeded []string
	hooks := Hooks{
		Processing: func(v *models.Video) { processed = append(processed, v.VideoID) },
		Success:    func(v *models.Video) { succeeded = append(succeeded, v.VideoID) },
	}
	cfg := testConfig(t)
	w := newTestWorker(repo, aws, &fakeTranscoder{}, hooks, cfg)

	result := w.EncodeNext(context.Background())
	if result.Outcome != OutcomeSucceeded {
		t.Fatalf("outcome = %s (%v), want %s", result.Outcome, result.Err, OutcomeSucceeded)
	}

	stored := repo.get("enc1")
	if stored.Status != models.StatusSuccess {
		t.Errorf("status = %s, want %s", stored.Status, models.StatusSuccess)
	}
	if stored.StartedEncodingAt == nil || stored.EncodedAt == nil {
		t.Error("encode timestamps should be set")
	}
	if len(aws.uploaded) != 1 || aws.uploaded[0] != "enc1.webm" {
		t.Errorf("uploaded keys = %v, want [enc1.webm]", aws.uploaded)
	}
	if len(processed) != 1 || len(succeeded) != 1 {
		t.Errorf("hooks: processing %v, success %v", processed, succeeded)
	}

	for _, name := range []string{"src1.avi", "enc1.webm"} {
		if _, err := os.Stat(filepath.Join(cfg.Worker.Workdir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should be removed from the workdir after success", name)
		}
	}
}

func TestEncodeNextFailureMarksError(t *testing.T) {
	repo := newFakeRepo(sourceVideo(), queuedEncoding())
	var failed []string
	hooks := Hooks{
		Error: func(v *models.Video) { failed = append(failed, v.VideoID) },
	}
	cfg := testConfig(t)
	w := newTestWorker(repo, &fakeAWS{}, &fakeTranscoder{fail: true}, hooks, cfg)

	result := w.EncodeNext(context.Background())
	if result.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want %s", result.Outcome, OutcomeFailed)
	}
	var encErr *models.EncodingError
	if !errors.As(result.Err, &encErr) {
		t.Fatalf("err = %v, want *models.EncodingError", result.Err)
	}
	if got := repo.get("enc1").Status; got != models.StatusError {
		t.Errorf("status = %s, want %s", got, models.StatusError)
	}
	if len(failed) != 1 {
		t.Errorf("error hook calls = %v, want one", failed)
	}
	if _, err := os.Stat(filepath.Join(cfg.Worker.Workdir, "src1.avi")); !os.IsNotExist(err) {
		t.Error("pulled source should be removed after a failed encode")
	}
}

func TestEncodeRejectsNonEncoding(t *testing.T) {
	repo := newFakeRepo(sourceVideo())
	w := newTestWorker(repo, &fakeAWS{}, &fakeTranscoder{}, Hooks{}, testConfig(t))

	_, err := w.Encode(context.Background(), sourceVideo())
	if err == nil {
		t.Fatal("expected an error for a source video")
	}
	var encErr *models.EncodingError
	if errors.As(err, &encErr) {
		t.Error("a programmer error must not be reported as an encoding failure")
	}
	if got := repo.get("src1").Status; got != models.StatusOriginal {
		t.Errorf("source status = %s, want %s", got, models.StatusOriginal)
	}
}

func TestEncodePersistsNarrowedWidth(t *testing.T) {
	src := sourceVideo()
	src.Width, src.Height = 480, 640
	enc := queuedEncoding()
	enc.Status = models.StatusProcessing
	repo := newFakeRepo(src, enc)
	cfg := testConfig(t)
	w := newTestWorker(repo, &fakeAWS{}, &fakeTranscoder{}, Hooks{}, cfg)

	updated, err := w.Encode(context.Background(), enc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if updated.Width != 360 {
		t.Errorf("width = %d, want 360 for a tall source", updated.Width)
	}
	if got := repo.get("enc1").Width; got != 360 {
		t.Errorf("stored width = %d, want 360", got)
	}
}
