package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/streamforge/transcoder/internal/config"
	"github.com/streamforge/transcoder/internal/media"
	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/internal/videos"
	"github.com/streamforge/transcoder/pkg/logger"
	"github.com/streamforge/transcoder/pkg/utils"
)

const (
	cacheDuration        = 3600
	recentEncodingsLimit = 10
)

type videoUC struct {
	cfg       *config.Config
	videoRepo videos.Repository
	redisRepo videos.RedisRepository
	awsRepo   videos.AWSRepository
	inspector media.MediaInspector
	capturer  media.FrameCapturer
	logger    logger.Logger
}

func NewVideoUseCase(
	cfg *config.Config,
	videoRepo videos.Repository,
	redisRepo videos.RedisRepository,
	awsRepo videos.AWSRepository,
	inspector media.MediaInspector,
	capturer media.FrameCapturer,
	log logger.Logger,
) videos.UseCase {
	return &videoUC{
		cfg:       cfg,
		videoRepo: videoRepo,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		inspector: inspector,
		capturer:  capturer,
		logger:    log,
	}
}

func (u *videoUC) CreateEmpty(ctx context.Context) (*models.Video, error) {
	video := &models.Video{
		VideoID: uuid.New().String(),
		Status:  models.StatusEmpty,
	}
	created, err := u.videoRepo.CreateVideo(ctx, video)
	if err != nil {
		u.logger.Errorf("CreateEmpty - CreateVideo error: %v", err)
		return nil, err
	}
	u.logger.Infof("%s: created video", created.VideoID)
	return created, nil
}

func (u *videoUC) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	cached, err := u.redisRepo.GetVideoCtx(ctx, u.videoKey(videoID))
	if err == nil && cached != nil {
		return cached, nil
	}

	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err = u.redisRepo.SetVideoCtx(ctx, u.videoKey(videoID), cacheDuration, video); err != nil {
		u.logger.Errorf("GetVideo - SetVideoCtx error: %v", err)
	}
	return video, nil
}

// ShowVideo reads straight from the record store so encoding statuses are
// current, and attaches the encodings of a source.
func (u *videoUC) ShowVideo(ctx context.Context, videoID string) (*models.VideoResponse, error) {
	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	resp := video.ShowResponse()
	if video.Status == models.StatusOriginal {
		encodings, err := u.videoRepo.GetEncodings(ctx, video.VideoID)
		if err != nil {
			return nil, err
		}
		for _, e := range encodings {
			resp.Encodings = append(resp.Encodings, e.ShowResponse())
		}
	}
	return resp, nil
}

func (u *videoUC) ListSources(ctx context.Context, pq *utils.Pagination) ([]*models.Video, error) {
	return u.videoRepo.GetSources(ctx, pq)
}

func (u *videoUC) RecentEncodings(ctx context.Context) ([]*models.Video, error) {
	return u.videoRepo.GetRecentEncodings(ctx, recentEncodingsLimit)
}

func (u *videoUC) QueuedEncodings(ctx context.Context) ([]*models.Video, error) {
	return u.videoRepo.GetQueuedEncodings(ctx)
}

// InitialProcessing checks the upload slot can accept a file, moves the
// uploaded bytes into the private workdir and reads the stream metadata.
// Every failure leaves the slot at 'empty' so the upload can be retried.
func (u *videoUC) InitialProcessing(ctx context.Context, videoID string, upload *models.UploadedFile) (*models.Video, error) {
	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, models.ErrNoFileSubmitted
	}
	if err = utils.ValidateStruct(ctx, upload); err != nil {
		return nil, models.ErrNoFileSubmitted
	}
	if !video.IsEmpty() {
		return nil, models.ErrNotValid
	}

	video.Filename = video.VideoID + strings.ToLower(filepath.Ext(upload.Filename))
	// Windows browsers submit the full client path
	parts := strings.Split(upload.Filename, "\\")
	video.OriginalFilename = parts[len(parts)-1]

	if err = os.MkdirAll(u.cfg.Worker.Workdir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workdir: %w", err)
	}
	if err = utils.MoveFile(upload.TempPath, video.TmpFilepath(u.cfg.Worker.Workdir)); err != nil {
		return nil, err
	}

	u.logger.Infof("%s: reading metadata of video file", video.VideoID)
	info, err := u.inspector.Inspect(ctx, video.TmpFilepath(u.cfg.Worker.Workdir))
	if err != nil {
		return nil, err
	}
	if !info.Valid || !info.IsVideo || info.Duration == 0 {
		return nil, models.ErrFormatNotRecognised
	}

	video.Duration = info.Duration
	video.Container = info.Container
	video.Width = info.Width
	video.Height = info.Height
	video.VideoCodec = info.VideoCodec
	video.VideoBitrate = info.VideoBitrate
	video.Fps = info.Fps
	video.AudioCodec = info.AudioCodec
	video.AudioBitrate = info.AudioBitrate
	video.AudioSampleRate = info.AudioSampleRate
	video.Status = models.StatusOriginal

	updated, err := u.videoRepo.UpdateVideo(ctx, video)
	if err != nil {
		return nil, err
	}
	u.invalidateCache(ctx, video.VideoID)
	return updated, nil
}

// FinishProcessingAndQueueEncodings uploads the source to the store,
// generates and uploads the thumbnail selection, then queues one encoding
// per configured profile. The store upload happens before queueing so a
// worker that claims an encoding can always fetch the parent bytes.
func (u *videoUC) FinishProcessingAndQueueEncodings(ctx context.Context, video *models.Video) error {
	tmpPath := video.TmpFilepath(u.cfg.Worker.Workdir)

	if err := u.awsRepo.UploadFile(ctx, video.Filename, tmpPath); err != nil {
		return err
	}

	if err := u.generateThumbnailSelection(ctx, video); err != nil {
		return err
	}
	percentages := u.thumbnailPercentages()
	if err := u.setDefaultClipping(video, percentages[0]); err != nil {
		return err
	}
	if err := u.uploadThumbnailSelection(ctx, video); err != nil {
		return err
	}

	video.ThumbnailPosition = percentages[0]
	if _, err := u.videoRepo.UpdateVideo(ctx, video); err != nil {
		return err
	}
	u.invalidateCache(ctx, video.VideoID)

	if _, err := u.AddToQueue(ctx, video); err != nil {
		return err
	}

	return os.Remove(tmpPath)
}

// AddToQueue creates one queued encoding per configured profile, skipping
// profiles that already have one, so re-running it never duplicates work.
// With no profiles configured it logs and does nothing.
func (u *videoUC) AddToQueue(ctx context.Context, video *models.Video) ([]*models.Video, error) {
	if len(u.cfg.Profiles) == 0 {
		u.logger.Error("there are no encoding profiles configured")
		return nil, nil
	}

	var queued []*models.Video
	for _, p := range u.cfg.Profiles {
		existing, err := u.videoRepo.FindEncodingForProfile(ctx, video.VideoID, p.Key)
		if err != nil {
			return queued, err
		}
		if existing != nil {
			continue
		}
		encoding, err := u.createEncodingForProfile(ctx, video, p)
		if err != nil {
			return queued, err
		}
		queued = append(queued, encoding)
	}
	return queued, nil
}

func (u *videoUC) createEncodingForProfile(ctx context.Context, video *models.Video, p config.ProfileConfig) (*models.Video, error) {
	now := time.Now()
	encoding := &models.Video{
		VideoID: uuid.New().String(),
		Status:  models.StatusQueued,
		Parent:  video.VideoID,

		OriginalFilename: video.OriginalFilename,
		Duration:         video.Duration,

		Profile:         p.Key,
		ProfileTitle:    p.Title,
		Container:       p.Container,
		Width:           p.Width,
		Height:          p.Height,
		VideoCodec:      p.VideoCodec,
		VideoBitrate:    p.VideoBitrate,
		Fps:             float64(p.Fps),
		AudioCodec:      p.AudioCodec,
		AudioBitrate:    p.AudioBitrate,
		AudioSampleRate: p.AudioSampleRate,
		Player:          p.Player,

		QueuedAt: &now,
	}
	encoding.Filename = encoding.VideoID + "." + p.Container

	created, err := u.videoRepo.CreateVideo(ctx, encoding)
	if err != nil {
		return nil, err
	}
	u.logger.Infof("%s: queued encoding of %s for profile %s", created.VideoID, video.VideoID, p.Key)
	return created, nil
}

// RequeueEncoding puts a failed encoding back on the queue. There is no
// automatic retry; this is the explicit recovery action.
func (u *videoUC) RequeueEncoding(ctx context.Context, videoID string) (*models.Video, error) {
	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsEncoding() {
		return nil, fmt.Errorf("video %s is not an encoding", videoID)
	}
	if video.Status != models.StatusError {
		return nil, fmt.Errorf("only failed encodings can be re-queued, status is %s", video.Status)
	}

	now := time.Now()
	video.Status = models.StatusQueued
	video.QueuedAt = &now
	video.StartedEncodingAt = nil
	video.EncodedAt = nil
	video.EncodingTime = 0

	updated, err := u.videoRepo.UpdateVideo(ctx, video)
	if err != nil {
		return nil, err
	}
	u.invalidateCache(ctx, videoID)
	return updated, nil
}

// Obliterate deletes a source video: its stored bytes and clippings, every
// encoding's bytes and record, then its own record. The deletes are
// independent collaborator calls; there is no transaction across them.
func (u *videoUC) Obliterate(ctx context.Context, videoID string) error {
	video, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.IsSource() {
		return fmt.Errorf("video %s is not a source video", videoID)
	}

	u.deleteFromStore(ctx, video)

	encodings, err := u.videoRepo.GetEncodings(ctx, video.VideoID)
	if err != nil {
		return err
	}
	for _, e := range encodings {
		u.deleteFromStore(ctx, e)
		if err = u.videoRepo.DeleteVideo(ctx, e.VideoID); err != nil {
			return err
		}
		u.invalidateCache(ctx, e.VideoID)
	}

	if err = u.videoRepo.DeleteVideo(ctx, video.VideoID); err != nil {
		return err
	}
	u.invalidateCache(ctx, video.VideoID)
	return nil
}

// deleteFromStore removes the video file and its clippings, ignoring
// objects that are already gone.
func (u *videoUC) deleteFromStore(ctx context.Context, video *models.Video) {
	keys := []string{video.Filename}
	for _, p := range u.thumbnailPercentages() {
		c := video.Clipping(p)
		keys = append(keys, c.ScreenshotKey(), c.ThumbnailKey())
	}
	dc := video.DefaultClipping()
	keys = append(keys, dc.ScreenshotKey(), dc.ThumbnailKey())

	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := u.awsRepo.RemoveObject(ctx, key); err != nil {
			u.logger.Debugf("deleteFromStore - RemoveObject %s: %v", key, err)
		}
	}
}

func (u *videoUC) videoKey(videoID string) string {
	return "video:" + videoID
}

func (u *videoUC) invalidateCache(ctx context.Context, videoID string) {
	if err := u.redisRepo.DeleteVideoCtx(ctx, u.videoKey(videoID)); err != nil {
		u.logger.Errorf("invalidateCache - DeleteVideoCtx error: %v", err)
	}
}
