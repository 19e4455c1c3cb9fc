package http

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/internal/videos"
	"github.com/streamforge/transcoder/pkg/logger"
	"github.com/streamforge/transcoder/pkg/utils"
)

type videoHandlers struct {
	videoUC videos.UseCase
	logger  logger.Logger
}

func NewVideoHandlers(videoUC videos.UseCase, logger logger.Logger) videos.Handlers {
	return &videoHandlers{
		videoUC: videoUC,
		logger:  logger,
	}
}

// Create registers an empty video record. The file itself arrives in a
// separate upload request against the returned id.
func (h *videoHandlers) Create() echo.HandlerFunc {
	return func(c echo.Context) error {
		video, err := h.videoUC.CreateEmpty(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, video.ShowResponse())
	}
}

// Upload receives the multipart file for an empty video, runs intake and
// queues the configured encodings.
func (h *videoHandlers) Upload() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID := c.Param("video_id")
		ctx := c.Request().Context()

		upload, cleanup, err := spoolUpload(c)
		if err != nil {
			return errorResponse(c, err)
		}
		defer cleanup()

		video, err := h.videoUC.InitialProcessing(ctx, videoID, upload)
		if err != nil {
			return errorResponse(c, err)
		}

		if err := h.videoUC.FinishProcessingAndQueueEncodings(ctx, video); err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(http.StatusOK, video.ShowResponse())
	}
}

func (h *videoHandlers) GetByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		resp, err := h.videoUC.ShowVideo(c.Request().Context(), c.Param("video_id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func (h *videoHandlers) List() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.videoUC.ListSources(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, showResponses(list))
	}
}

// Delete obliterates a source video: its file, every derived encoding with
// its file, and all thumbnails.
func (h *videoHandlers) Delete() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.videoUC.Obliterate(c.Request().Context(), c.Param("video_id")); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "video deleted"})
	}
}

// AddToQueue queues one encoding per configured profile for the video.
// Profiles that already have an encoding are skipped.
func (h *videoHandlers) AddToQueue() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		video, err := h.videoUC.GetVideo(ctx, c.Param("video_id"))
		if err != nil {
			return errorResponse(c, err)
		}
		encodings, err := h.videoUC.AddToQueue(ctx, video)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, showResponses(encodings))
	}
}

func (h *videoHandlers) RecentEncodings() echo.HandlerFunc {
	return func(c echo.Context) error {
		encodings, err := h.videoUC.RecentEncodings(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, showResponses(encodings))
	}
}

// Requeue puts a failed encoding back on the queue.
func (h *videoHandlers) Requeue() echo.HandlerFunc {
	return func(c echo.Context) error {
		video, err := h.videoUC.RequeueEncoding(c.Request().Context(), c.Param("video_id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, video.ShowResponse())
	}
}

func (h *videoHandlers) QueuedEncodings() echo.HandlerFunc {
	return func(c echo.Context) error {
		encodings, err := h.videoUC.QueuedEncodings(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, showResponses(encodings))
	}
}

// spoolUpload copies the multipart "file" part to a temp file so intake can
// move it into the workdir. The cleanup func removes the temp file if intake
// has not consumed it.
func spoolUpload(c echo.Context) (*models.UploadedFile, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil, models.ErrNoFileSubmitted
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, models.ErrNoFileSubmitted
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return nil, nil, err
	}
	size, err := io.Copy(tmp, src)
	tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return nil, nil, err
	}

	upload := &models.UploadedFile{
		Filename: fileHeader.Filename,
		Size:     size,
		TempPath: tmp.Name(),
	}
	cleanup := func() {
		if _, statErr := os.Stat(tmp.Name()); statErr == nil {
			os.Remove(tmp.Name())
		}
	}
	return upload, cleanup, nil
}

func showResponses(list []*models.Video) []*models.VideoResponse {
	responses := make([]*models.VideoResponse, 0, len(list))
	for _, v := range list {
		responses = append(responses, v.ShowResponse())
	}
	return responses
}

// errorResponse maps the intake and lifecycle error kinds onto HTTP statuses.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNoFileSubmitted),
		errors.Is(err, models.ErrNotValid),
		errors.Is(err, models.ErrFormatNotRecognised):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
