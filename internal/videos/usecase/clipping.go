package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/pkg/utils"
)

// ThumbnailPercentages returns n evenly spaced interior percentage points,
// eg n=3 gives [25 50 75]. With thumbnail choice disabled (n <= 0) the
// single midpoint is used.
func ThumbnailPercentages(n int) []int {
	if n <= 0 {
		return []int{50}
	}
	interval := 100.0 / float64(n+1)
	points := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		points = append(points, int(float64(i)*interval))
	}
	return points
}

func (u *videoUC) thumbnailPercentages() []int {
	return ThumbnailPercentages(u.cfg.Thumbnails.Choose)
}

// generateThumbnailSelection captures one screenshot per percentage point
// and resizes each into a thumbnail, all under the workdir.
func (u *videoUC) generateThumbnailSelection(ctx context.Context, video *models.Video) error {
	workdir := u.cfg.Worker.Workdir
	videoPath := video.TmpFilepath(workdir)

	for _, p := range u.thumbnailPercentages() {
		c := video.Clipping(p)
		if err := u.capturer.Capture(ctx, videoPath, video.Duration, p, c.ScreenshotPath(workdir)); err != nil {
			return fmt.Errorf("%w: %v", models.ErrClipping, err)
		}
		if err := u.capturer.Resize(ctx, c.ScreenshotPath(workdir), c.ThumbnailPath(workdir),
			u.cfg.Thumbnails.Width, u.cfg.Thumbnails.Height); err != nil {
			return fmt.Errorf("%w: %v", models.ErrClipping, err)
		}
	}
	return nil
}

// setDefaultClipping copies the clipping at the given position to the
// fixed-name default pair a source video is shown with.
func (u *videoUC) setDefaultClipping(video *models.Video, position int) error {
	workdir := u.cfg.Worker.Workdir
	src := video.Clipping(position)
	dst := video.DefaultClipping()

	if err := utils.CopyFile(src.ScreenshotPath(workdir), dst.ScreenshotPath(workdir)); err != nil {
		return fmt.Errorf("%w: %v", models.ErrClipping, err)
	}
	if err := utils.CopyFile(src.ThumbnailPath(workdir), dst.ThumbnailPath(workdir)); err != nil {
		return fmt.Errorf("%w: %v", models.ErrClipping, err)
	}
	return nil
}

// uploadThumbnailSelection pushes every generated clipping (and the default
// pair) to the store and removes the local copies.
func (u *videoUC) uploadThumbnailSelection(ctx context.Context, video *models.Video) error {
	workdir := u.cfg.Worker.Workdir

	clippings := make([]models.Clipping, 0, len(u.thumbnailPercentages())+1)
	for _, p := range u.thumbnailPercentages() {
		clippings = append(clippings, video.Clipping(p))
	}
	clippings = append(clippings, video.DefaultClipping())

	for _, c := range clippings {
		if err := u.awsRepo.UploadFile(ctx, c.ScreenshotKey(), c.ScreenshotPath(workdir)); err != nil {
			return err
		}
		if err := u.awsRepo.UploadFile(ctx, c.ThumbnailKey(), c.ThumbnailPath(workdir)); err != nil {
			return err
		}
		os.Remove(c.ScreenshotPath(workdir))
		os.Remove(c.ThumbnailPath(workdir))
	}
	return nil
}
