package document

import (
	"io"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/platform/auth"
	"github.com/healthmate/healthmate/internal/platform/respond"
	"github.com/healthmate/healthmate/pkg/pagination"
)

const defaultListLimit = 10

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(private *echo.Group) {
	private.POST("/files/upload", h.Upload)
	private.GET("/files", h.List)
	private.GET("/files/:id", h.Get)
	private.DELETE("/files/:id", h.Delete)
}

func (h *Handler) Upload(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return respond.Validation("please upload a file")
	}

	src, err := fh.Open()
	if err != nil {
		return respond.Validation("please upload a file")
	}
	defer src.Close()

	// Spool to a temp file so the multipart stream is fully read before
	// the storage upload starts.
	tmp, err := os.CreateTemp("", "healthmate-upload-*")
	if err != nil {
		return err
	}
	defer func() {
		tmp.Close()
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			h.logger.Warn().Err(rmErr).Str("path", tmp.Name()).Msg("temp file cleanup failed")
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return err
	}

	doc, err := h.svc.Upload(c.Request().Context(), userID, UploadInput{
		FileName:   fh.Filename,
		MimeType:   fh.Header.Get("Content-Type"),
		Size:       fh.Size,
		FileType:   c.FormValue("fileType"),
		ReportDate: c.FormValue("reportDate"),
		Content:    tmp,
	})
	if err != nil {
		return err
	}

	return respond.OK(c, http.StatusCreated, "file uploaded successfully", echo.Map{
		"file": doc.UploadedView(),
	})
}

func (h *Handler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	pg := pagination.FromContext(c, defaultListLimit)
	docs, total, err := h.svc.List(c.Request().Context(), userID, ListOptions{
		FileType: c.QueryParam("fileType"),
		SortBy:   c.QueryParam("sortBy"),
		Skip:     pg.Skip(),
		Limit:    int64(pg.Limit),
	})
	if err != nil {
		return err
	}

	if docs == nil {
		docs = []*Document{}
	}
	return respond.OK(c, http.StatusOK, "files retrieved successfully", echo.Map{
		"files":      docs,
		"pagination": pagination.NewMeta(pg, total),
	})
}

func (h *Handler) Get(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return respond.Validation("invalid file id")
	}

	doc, insights, err := h.svc.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}

	return respond.OK(c, http.StatusOK, "file retrieved successfully", echo.Map{
		"file":     doc,
		"insights": insights,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return respond.Validation("invalid file id")
	}

	if err := h.svc.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "file deleted successfully", nil)
}
