package videos

import (
	"context"

	"github.com/streamforge/transcoder/internal/models"
)

// RedisRepository caches video records in front of the record store.
type RedisRepository interface {
	GetVideoCtx(ctx context.Context, key string) (*models.Video, error)
	SetVideoCtx(ctx context.Context, key string, seconds int, video *models.Video) error
	DeleteVideoCtx(ctx context.Context, key string) error
}
