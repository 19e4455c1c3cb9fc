package videos

import (
	"context"

	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/pkg/utils"
)

// Repository is the durable record store for videos and their encodings.
type Repository interface {
	CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	GetVideoByID(ctx context.Context, videoID string) (*models.Video, error)
	UpdateVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	DeleteVideo(ctx context.Context, videoID string) error

	GetSources(ctx context.Context, pq *utils.Pagination) ([]*models.Video, error)
	GetRecentEncodings(ctx context.Context, limit int) ([]*models.Video, error)
	GetQueuedEncodings(ctx context.Context) ([]*models.Video, error)
	GetEncodings(ctx context.Context, parentID string) ([]*models.Video, error)
	GetSuccessfulEncodings(ctx context.Context, parentID string) ([]*models.Video, error)
	FindEncodingForProfile(ctx context.Context, parentID, profileKey string) (*models.Video, error)

	// NextQueued returns the oldest queued encoding, or nil when the queue is
	// empty. ClaimQueued flips it to processing only if it is still queued at
	// write time; a nil video means another worker got there first.
	NextQueued(ctx context.Context) (*models.Video, error)
	ClaimQueued(ctx context.Context, videoID string) (*models.Video, error)
}
