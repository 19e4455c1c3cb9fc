package videos

import (
	"context"

	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/pkg/utils"
)

// UseCase is the orchestration surface for the video lifecycle: intake of an
// upload, thumbnail generation, queueing of per-profile encodings and
// deletion of a source together with everything derived from it.
type UseCase interface {
	CreateEmpty(ctx context.Context) (*models.Video, error)
	GetVideo(ctx context.Context, videoID string) (*models.Video, error)
	ShowVideo(ctx context.Context, videoID string) (*models.VideoResponse, error)
	ListSources(ctx context.Context, pq *utils.Pagination) ([]*models.Video, error)
	RecentEncodings(ctx context.Context) ([]*models.Video, error)
	QueuedEncodings(ctx context.Context) ([]*models.Video, error)

	InitialProcessing(ctx context.Context, videoID string, upload *models.UploadedFile) (*models.Video, error)
	FinishProcessingAndQueueEncodings(ctx context.Context, video *models.Video) error
	AddToQueue(ctx context.Context, video *models.Video) ([]*models.Video, error)
	RequeueEncoding(ctx context.Context, videoID string) (*models.Video, error)
	Obliterate(ctx context.Context, videoID string) error
}
