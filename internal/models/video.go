package models

import (
	"fmt"
	"path/filepath"
	"time"
)

type VideoStatus string

const (
	StatusEmpty      VideoStatus = "empty"
	StatusOriginal   VideoStatus = "original"
	StatusQueued     VideoStatus = "queued"
	StatusProcessing VideoStatus = "processing"
	StatusSuccess    VideoStatus = "success"
	StatusError      VideoStatus = "error"
)

// Video is both a source upload and a derived encoding, told apart by
// status. A source is 'empty' or 'original'; an encoding carries the parent
// video key plus the profile that produced it and moves through
// queued -> processing -> success|error.
type Video struct {
	VideoID          string      `json:"video_id" db:"video_id" redis:"video_id"`
	Status           VideoStatus `json:"status" db:"status" redis:"status"`
	Filename         string      `json:"filename" db:"filename" redis:"filename"`
	OriginalFilename string      `json:"original_filename" db:"original_filename" redis:"original_filename"`
	Parent           string      `json:"parent,omitempty" db:"parent" redis:"parent"`

	Duration        int64   `json:"duration" db:"duration" redis:"duration"`
	Container       string  `json:"container" db:"container" redis:"container"`
	Width           int     `json:"width" db:"width" redis:"width"`
	Height          int     `json:"height" db:"height" redis:"height"`
	VideoCodec      string  `json:"video_codec" db:"video_codec" redis:"video_codec"`
	VideoBitrate    int     `json:"video_bitrate" db:"video_bitrate" redis:"video_bitrate"`
	Fps             float64 `json:"fps" db:"fps" redis:"fps"`
	AudioCodec      string  `json:"audio_codec" db:"audio_codec" redis:"audio_codec"`
	AudioBitrate    int     `json:"audio_bitrate" db:"audio_bitrate" redis:"audio_bitrate"`
	AudioSampleRate int     `json:"audio_sample_rate" db:"audio_sample_rate" redis:"audio_sample_rate"`

	Profile      string `json:"profile,omitempty" db:"profile" redis:"profile"`
	ProfileTitle string `json:"profile_title,omitempty" db:"profile_title" redis:"profile_title"`
	Player       string `json:"player,omitempty" db:"player" redis:"player"`

	QueuedAt          *time.Time `json:"queued_at,omitempty" db:"queued_at" redis:"queued_at"`
	StartedEncodingAt *time.Time `json:"started_encoding_at,omitempty" db:"started_encoding_at" redis:"started_encoding_at"`
	EncodedAt         *time.Time `json:"encoded_at,omitempty" db:"encoded_at" redis:"encoded_at"`
	EncodingTime      int64      `json:"encoding_time" db:"encoding_time" redis:"encoding_time"`

	ThumbnailPosition int `json:"thumbnail_position,omitempty" db:"thumbnail_position" redis:"thumbnail_position"`

	CreatedAt time.Time `json:"created_at" db:"created_at" redis:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" redis:"updated_at"`
}

// IsEncoding reports whether the video is a derived encoding of a source.
func (v *Video) IsEncoding() bool {
	switch v.Status {
	case StatusQueued, StatusProcessing, StatusSuccess, StatusError:
		return true
	}
	return false
}

// IsSource reports whether the video is an original upload slot.
func (v *Video) IsSource() bool {
	return v.Status == StatusEmpty || v.Status == StatusOriginal
}

// IsEmpty reports whether the upload slot is still waiting for its file.
func (v *Video) IsEmpty() bool {
	return v.Status == StatusEmpty
}

// TmpFilepath is the private working path for the video file while it is
// being inspected or transcoded.
func (v *Video) TmpFilepath(workdir string) string {
	return filepath.Join(workdir, v.Filename)
}

func (v *Video) Resolution() string {
	if v.Width == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

func (v *Video) VideoBitrateInBits() int {
	return v.VideoBitrate * 1024
}

func (v *Video) AudioBitrateInBits() int {
	return v.AudioBitrate * 1024
}

// DurationStr renders the duration as mm:ss.
func (v *Video) DurationStr() string {
	s := v.Duration / 1000
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// UploadedFile is the payload intake receives from the delivery layer: the
// client-supplied name and a spooled temp file on local disk.
type UploadedFile struct {
	Filename string `validate:"required"`
	Size     int64  `validate:"gt=0"`
	TempPath string `validate:"required"`
}

// VideoResponse is the API projection of a video. Sources embed their
// encodings and the default clipping keys.
type VideoResponse struct {
	ID               string      `json:"id"`
	Status           VideoStatus `json:"status"`
	Filename         string      `json:"filename,omitempty"`
	OriginalFilename string      `json:"original_filename,omitempty"`
	Width            int         `json:"width,omitempty"`
	Height           int         `json:"height,omitempty"`
	Duration         int64       `json:"duration,omitempty"`

	Screenshot string           `json:"screenshot,omitempty"`
	Thumbnail  string           `json:"thumbnail,omitempty"`
	Encodings  []*VideoResponse `json:"encodings,omitempty"`

	Parent       string     `json:"parent,omitempty"`
	Profile      string     `json:"profile,omitempty"`
	ProfileTitle string     `json:"profile_title,omitempty"`
	EncodedAt    *time.Time `json:"encoded_at,omitempty"`
	EncodingTime int64      `json:"encoding_time,omitempty"`
}

// ShowResponse builds the flat projection for this record. Encodings of a
// source are attached by the caller.
func (v *Video) ShowResponse() *VideoResponse {
	r := &VideoResponse{
		ID:     v.VideoID,
		Status: v.Status,
	}
	if v.Status == StatusOriginal || v.IsEncoding() {
		r.Filename = v.Filename
		r.OriginalFilename = v.OriginalFilename
		r.Width = v.Width
		r.Height = v.Height
		r.Duration = v.Duration
	}
	if v.Status == StatusOriginal {
		r.Screenshot = v.DefaultClipping().ScreenshotKey()
		r.Thumbnail = v.DefaultClipping().ThumbnailKey()
	}
	if v.IsEncoding() {
		r.Parent = v.Parent
		r.Profile = v.Profile
		r.ProfileTitle = v.ProfileTitle
		r.EncodedAt = v.EncodedAt
		r.EncodingTime = v.EncodingTime
	}
	return r
}
