package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/pkg/errors"
)

// FrameCapturer grabs still frames out of a video and resizes them. It is
// the external image tool behind thumbnail generation.
type FrameCapturer interface {
	Capture(ctx context.Context, videoPath string, durationMs int64, percentage int, outPath string) error
	Resize(ctx context.Context, inPath, outPath string, width, height int) error
}

type Capturer struct {
	ffmpegPath string
}

func NewCapturer(ffmpegPath string) *Capturer {
	return &Capturer{ffmpegPath: ffmpegPath}
}

// Capture grabs the frame at the given percentage of the video's duration.
func (c *Capturer) Capture(ctx context.Context, videoPath string, durationMs int64, percentage int, outPath string) error {
	offset := float64(durationMs) / 1000 * float64(percentage) / 100
	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-ss", fmt.Sprintf("%.2f", offset),
		"-i", videoPath,
		"-frames:v", "1",
		"-y", outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "frame capture failed: %s", tail(stderr.String(), 1024))
	}
	return nil
}

func (c *Capturer) Resize(ctx context.Context, inPath, outPath string, width, height int) error {
	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-i", inPath,
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-y", outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "resize failed: %s", tail(stderr.String(), 1024))
	}
	return nil
}
