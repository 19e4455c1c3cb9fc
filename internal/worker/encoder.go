package worker

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/streamforge/transcoder/internal/models"
)

// Encode runs a claimed encoding end to end: pull the source from the object
// store, run the recipe, push the output back and mark the record success.
// Any step failing marks the record error and returns *models.EncodingError.
// The returned video is the updated record.
func (w *Worker) Encode(ctx context.Context, video *models.Video) (*models.Video, error) {
	if !video.IsEncoding() {
		return nil, errors.Errorf("video %s is not an encoding", video.VideoID)
	}

	workdir := w.cfg.Worker.Workdir
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating workdir")
	}

	begun := time.Now()

	parent, err := w.videoRepo.GetVideoByID(ctx, video.Parent)
	if err != nil {
		return nil, w.failEncoding(ctx, video, "", errors.Wrap(err, "fetching parent record"))
	}

	inputPath := parent.TmpFilepath(workdir)
	outputPath := video.TmpFilepath(workdir)

	if err := w.awsRepo.DownloadFile(ctx, parent.Filename, inputPath); err != nil {
		return nil, w.failEncoding(ctx, video, inputPath, errors.Wrap(err, "downloading source"))
	}

	resolutionAndPadding, width := ResolutionAndPaddingNoCropping(
		parent.Width, parent.Height, video.Width, video.Height)
	if width != video.Width {
		video.Width = width
		if _, err := w.videoRepo.UpdateVideo(ctx, video); err != nil {
			return nil, w.failEncoding(ctx, video, inputPath, errors.Wrap(err, "persisting adjusted width"))
		}
	}

	recipe := SelectRecipe(video, parent)
	opts := w.recipeOptions(video, parent, inputPath, outputPath, resolutionAndPadding)

	// MP4Box appends streams to an existing file, so a stale output from an
	// earlier attempt must not survive into this run.
	os.Remove(outputPath)
	defer w.removeIntermediates(opts)

	w.logger.Infof("encoding %s with recipe %s", video.VideoID, recipe.Name)
	if err := w.transcoder.Execute(ctx, recipe.Template(), opts); err != nil {
		return nil, w.failEncoding(ctx, video, inputPath, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return nil, w.failEncoding(ctx, video, inputPath, errors.New("recipe produced no output"))
	}

	if err := w.awsRepo.UploadFile(ctx, video.Filename, outputPath); err != nil {
		return nil, w.failEncoding(ctx, video, inputPath, errors.Wrap(err, "uploading output"))
	}

	now := time.Now()
	video.Status = models.StatusSuccess
	video.EncodedAt = &now
	video.EncodingTime = int64(time.Since(begun).Seconds())
	updated, err := w.videoRepo.UpdateVideo(ctx, video)
	if err != nil {
		return nil, w.failEncoding(ctx, video, inputPath, errors.Wrap(err, "persisting success"))
	}

	os.Remove(outputPath)
	os.Remove(inputPath)

	w.logger.Infof("encoded %s in %ds", video.VideoID, updated.EncodingTime)
	return updated, nil
}

// failEncoding records the error status, cleans the pulled source off disk
// and wraps the cause so callers can tell a transcode failure from a
// programmer error.
func (w *Worker) failEncoding(ctx context.Context, video *models.Video, inputPath string, cause error) error {
	w.logger.Errorf("encoding %s failed: %v", video.VideoID, cause)

	video.Status = models.StatusError
	if _, err := w.videoRepo.UpdateVideo(ctx, video); err != nil {
		w.logger.Errorf("persisting error status for %s: %v", video.VideoID, err)
	}

	if inputPath != "" {
		if _, err := os.Stat(inputPath); err == nil {
			os.Remove(inputPath)
		}
	}

	return &models.EncodingError{Err: cause}
}

// recipeOptions builds the placeholder map a recipe template is resolved
// against. Intermediate stream files for the multistage mp4 pipeline live
// beside the output file.
func (w *Worker) recipeOptions(video, parent *models.Video, inputPath, outputPath, resolutionAndPadding string) map[string]string {
	return map[string]string{
		"input_file":  inputPath,
		"output_file": outputPath,

		"container":              video.Container,
		"video_codec":            video.VideoCodec,
		"video_bitrate":          strconv.Itoa(video.VideoBitrate),
		"video_bitrate_in_bits":  strconv.Itoa(video.VideoBitrateInBits()),
		"fps":                    strconv.FormatFloat(video.Fps, 'f', -1, 64),
		"audio_codec":            video.AudioCodec,
		"audio_bitrate":          strconv.Itoa(video.AudioBitrate),
		"audio_bitrate_in_bits":  strconv.Itoa(video.AudioBitrateInBits()),
		"audio_sample_rate":      strconv.Itoa(video.AudioSampleRate),
		"resolution":             video.Resolution(),
		"resolution_and_padding": resolutionAndPadding,

		"video_stream_file": outputPath + ".video.mp4",
		"audio_wav_file":    outputPath + ".audio.wav",
		"audio_stream_file": outputPath + ".audio.mp4",

		"ffmpeg":     w.cfg.Media.FFmpegPath,
		"flvtool":    w.cfg.Media.FlvtoolPath,
		"neroaacenc": w.cfg.Media.NeroAacEncPath,
		"mp4box":     w.cfg.Media.MP4BoxPath,
	}
}

func (w *Worker) removeIntermediates(opts map[string]string) {
	for _, key := range []string{"video_stream_file", "audio_wav_file", "audio_stream_file"} {
		if path := opts[key]; path != "" {
			os.Remove(path)
		}
	}
}
