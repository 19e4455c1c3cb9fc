package models

import (
	"fmt"
	"path/filepath"
)

// Clipping is a transient thumbnail extraction point for a video, identified
// by the percentage of the duration the frame is grabbed at. It is never
// persisted; it only derives deterministic store keys and working paths for
// the screenshot/thumbnail pair. The default clipping is the fixed-name pair
// a source video exposes regardless of which percentage was chosen.
type Clipping struct {
	Video    *Video
	Position int
	Default  bool
}

func (v *Video) Clipping(position int) Clipping {
	return Clipping{Video: v, Position: position}
}

func (v *Video) DefaultClipping() Clipping {
	return Clipping{Video: v, Default: true}
}

func (c Clipping) ScreenshotKey() string {
	if c.Default {
		return c.Video.VideoID + "_screenshot.jpg"
	}
	return fmt.Sprintf("%s_%d.jpg", c.Video.VideoID, c.Position)
}

func (c Clipping) ThumbnailKey() string {
	if c.Default {
		return c.Video.VideoID + "_thumbnail.jpg"
	}
	return fmt.Sprintf("%s_%d_thumb.jpg", c.Video.VideoID, c.Position)
}

func (c Clipping) ScreenshotPath(workdir string) string {
	return filepath.Join(workdir, c.ScreenshotKey())
}

func (c Clipping) ThumbnailPath(workdir string) string {
	return filepath.Join(workdir, c.ThumbnailKey())
}
