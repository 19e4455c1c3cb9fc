package repository

const (
	createVideoQuery = `INSERT INTO videos (video_id, status, filename, original_filename, parent, duration, container,
						width, height, video_codec, video_bitrate, fps, audio_codec, audio_bitrate, audio_sample_rate,
						profile, profile_title, player, queued_at, thumbnail_position, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, now(), now())
					RETURNING *`

	getVideoByIDQuery = `SELECT * FROM videos WHERE video_id = $1`

	updateVideoQuery = `UPDATE videos
					SET status = $2,
					    filename = $3,
					    original_filename = $4,
					    parent = $5,
					    duration = $6,
					    container = $7,
					    width = $8,
					    height = $9,
					    video_codec = $10,
					    video_bitrate = $11,
					    fps = $12,
					    audio_codec = $13,
					    audio_bitrate = $14,
					    audio_sample_rate = $15,
					    profile = $16,
					    profile_title = $17,
					    player = $18,
					    queued_at = $19,
					    started_encoding_at = $20,
					    encoded_at = $21,
					    encoding_time = $22,
					    thumbnail_position = $23,
					    updated_at = now()
					WHERE video_id = $1
					RETURNING *`

	deleteVideoQuery = `DELETE FROM videos WHERE video_id = $1`

	getSourcesQuery = `SELECT * FROM videos WHERE status = 'original' ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	getRecentEncodingsQuery = `SELECT * FROM videos WHERE status = 'success' ORDER BY created_at DESC LIMIT $1`

	getQueuedEncodingsQuery = `SELECT * FROM videos WHERE status IN ('queued', 'processing') ORDER BY queued_at`

	getEncodingsQuery = `SELECT * FROM videos WHERE parent = $1 ORDER BY created_at`

	getSuccessfulEncodingsQuery = `SELECT * FROM videos WHERE parent = $1 AND status = 'success' ORDER BY created_at`

	findEncodingForProfileQuery = `SELECT * FROM videos WHERE parent = $1 AND profile = $2 LIMIT 1`

	nextQueuedQuery = `SELECT * FROM videos WHERE status = 'queued' ORDER BY queued_at LIMIT 1`

	claimQueuedQuery = `UPDATE videos
					SET status = 'processing', started_encoding_at = now(), updated_at = now()
					WHERE video_id = $1 AND status = 'queued'
					RETURNING *`
)
