package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/internal/videos"
)

type videoRedisRepo struct {
	redisClient *redis.Client
}

func NewVideoRedisRepo(redisClient *redis.Client) videos.RedisRepository {
	return &videoRedisRepo{
		redisClient: redisClient,
	}
}

func (v *videoRedisRepo) GetVideoCtx(ctx context.Context, key string) (*models.Video, error) {
	videoBytes, err := v.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	video := &models.Video{}
	if err = json.Unmarshal(videoBytes, video); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached video: %w", err)
	}
	return video, nil
}

func (v *videoRedisRepo) SetVideoCtx(ctx context.Context, key string, seconds int, video *models.Video) error {
	videoBytes, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}
	return v.redisClient.Set(ctx, key, videoBytes, time.Second*time.Duration(seconds)).Err()
}

func (v *videoRedisRepo) DeleteVideoCtx(ctx context.Context, key string) error {
	return v.redisClient.Del(ctx, key).Err()
}
