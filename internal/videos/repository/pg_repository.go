package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/internal/videos"
	"github.com/streamforge/transcoder/pkg/utils"
)

type videoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) videos.Repository {
	return &videoRepo{
		db: db,
	}
}

func (v *videoRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	created := &models.Video{}
	if err := v.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		video.VideoID,
		video.Status,
		video.Filename,
		video.OriginalFilename,
		video.Parent,
		video.Duration,
		video.Container,
		video.Width,
		video.Height,
		video.VideoCodec,
		video.VideoBitrate,
		video.Fps,
		video.AudioCodec,
		video.AudioBitrate,
		video.AudioSampleRate,
		video.Profile,
		video.ProfileTitle,
		video.Player,
		video.QueuedAt,
		video.ThumbnailPosition,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return created, nil
}

func (v *videoRepo) GetVideoByID(ctx context.Context, videoID string) (*models.Video, error) {
	video := &models.Video{}
	if err := v.db.QueryRowxContext(
		ctx,
		getVideoByIDQuery,
		videoID,
	).StructScan(video); err != nil {
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}
	return video, nil
}

func (v *videoRepo) UpdateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	updated := &models.Video{}
	if err := v.db.QueryRowxContext(
		ctx,
		updateVideoQuery,
		video.VideoID,
		video.Status,
		video.Filename,
		video.OriginalFilename,
		video.Parent,
		video.Duration,
		video.Container,
		video.Width,
		video.Height,
		video.VideoCodec,
		video.VideoBitrate,
		video.Fps,
		video.AudioCodec,
		video.AudioBitrate,
		video.AudioSampleRate,
		video.Profile,
		video.ProfileTitle,
		video.Player,
		video.QueuedAt,
		video.StartedEncodingAt,
		video.EncodedAt,
		video.EncodingTime,
		video.ThumbnailPosition,
	).StructScan(updated); err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return updated, nil
}

func (v *videoRepo) DeleteVideo(ctx context.Context, videoID string) error {
	res, err := v.db.ExecContext(ctx, deleteVideoQuery, videoID)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return fmt.Errorf("no video found to delete")
	}
	return nil
}

func (v *videoRepo) GetSources(ctx context.Context, pq *utils.Pagination) ([]*models.Video, error) {
	return v.queryVideos(ctx, getSourcesQuery, pq.GetOffset(), pq.GetLimit())
}

func (v *videoRepo) GetRecentEncodings(ctx context.Context, limit int) ([]*models.Video, error) {
	return v.queryVideos(ctx, getRecentEncodingsQuery, limit)
}

func (v *videoRepo) GetQueuedEncodings(ctx context.Context) ([]*models.Video, error) {
	return v.queryVideos(ctx, getQueuedEncodingsQuery)
}

func (v *videoRepo) GetEncodings(ctx context.Context, parentID string) ([]*models.Video, error) {
	return v.queryVideos(ctx, getEncodingsQuery, parentID)
}

func (v *videoRepo) GetSuccessfulEncodings(ctx context.Context, parentID string) ([]*models.Video, error) {
	return v.queryVideos(ctx, getSuccessfulEncodingsQuery, parentID)
}

func (v *videoRepo) FindEncodingForProfile(ctx context.Context, parentID, profileKey string) (*models.Video, error) {
	video := &models.Video{}
	err := v.db.QueryRowxContext(ctx, findEncodingForProfileQuery, parentID, profileKey).StructScan(video)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find encoding for profile: %w", err)
	}
	return video, nil
}

func (v *videoRepo) NextQueued(ctx context.Context) (*models.Video, error) {
	video := &models.Video{}
	err := v.db.QueryRowxContext(ctx, nextQueuedQuery).StructScan(video)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next queued encoding: %w", err)
	}
	return video, nil
}

// ClaimQueued is a conditional update: it only succeeds while the row is
// still queued, so two workers polling the same queue cannot both claim one
// job. Losing the race is not an error, the caller just polls again.
func (v *videoRepo) ClaimQueued(ctx context.Context, videoID string) (*models.Video, error) {
	video := &models.Video{}
	err := v.db.QueryRowxContext(ctx, claimQueuedQuery, videoID).StructScan(video)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim queued encoding: %w", err)
	}
	return video, nil
}

func (v *videoRepo) queryVideos(ctx context.Context, query string, args ...interface{}) ([]*models.Video, error) {
	rows, err := v.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var result []*models.Video
	for rows.Next() {
		var video models.Video
		if err = rows.StructScan(&video); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		result = append(result, &video)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan videos: %w", err)
	}
	return result, nil
}
