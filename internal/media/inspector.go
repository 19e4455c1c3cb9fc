package media

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MediaInfo is what the inspector reads out of a file before it is accepted
// as a source video.
type MediaInfo struct {
	Valid           bool
	IsVideo         bool
	Duration        int64 // milliseconds
	Container       string
	Width           int
	Height          int
	VideoCodec      string
	VideoBitrate    int // kbps
	Fps             float64
	AudioCodec      string
	AudioBitrate    int // kbps
	AudioSampleRate int
}

// MediaInspector probes a local file for stream metadata.
type MediaInspector interface {
	Inspect(ctx context.Context, localPath string) (*MediaInfo, error)
}

type ffprobeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
		BitRate    string `json:"bit_rate"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

type Inspector struct {
	ffprobePath string
}

func NewInspector(ffprobePath string) *Inspector {
	return &Inspector{ffprobePath: ffprobePath}
}

// Inspect runs ffprobe against the file. A file ffprobe cannot read comes
// back as Valid=false rather than an error, so intake can distinguish a bad
// upload from a broken probe.
func (i *Inspector) Inspect(ctx context.Context, localPath string) (*MediaInfo, error) {
	cmd := exec.CommandContext(ctx, i.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		localPath,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &MediaInfo{Valid: false}, nil
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return nil, errors.Wrap(err, "failed to parse ffprobe output")
	}

	info := &MediaInfo{Valid: true}
	info.Container = firstFormat(probe.Format.FormatName)
	if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		info.Duration = int64(d * 1000)
	}

	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			info.IsVideo = true
			info.VideoCodec = s.CodecName
			info.Width = s.Width
			info.Height = s.Height
			info.Fps = parseFrameRate(s.RFrameRate)
			if br, err := strconv.Atoi(s.BitRate); err == nil {
				info.VideoBitrate = br / 1024
			}
		case "audio":
			info.AudioCodec = s.CodecName
			if br, err := strconv.Atoi(s.BitRate); err == nil {
				info.AudioBitrate = br / 1024
			}
			if sr, err := strconv.Atoi(s.SampleRate); err == nil {
				info.AudioSampleRate = sr
			}
		}
	}
	return info, nil
}

// ffprobe reports container as a comma separated alias list, eg "mov,mp4,m4a".
func firstFormat(formatName string) string {
	if idx := strings.Index(formatName, ","); idx > 0 {
		return formatName[:idx]
	}
	return formatName
}

func parseFrameRate(rate string) float64 {
	parts := strings.SplitN(rate, "/", 2)
	if len(parts) == 2 {
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 == nil && err2 == nil && den != 0 {
			return num / den
		}
		return 0
	}
	f, _ := strconv.ParseFloat(rate, 64)
	return f
}
