package insight

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/platform/auth"
	"github.com/healthmate/healthmate/internal/platform/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(private *echo.Group) {
	private.POST("/ai/analyze/:fileId", h.Analyze)
	private.GET("/ai/insights/:fileId", h.Get)
	private.DELETE("/ai/insights/:fileId", h.Delete)
}

func (h *Handler) Analyze(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := primitive.ObjectIDFromHex(c.Param("fileId"))
	if err != nil {
		return respond.Validation("invalid file id")
	}

	insight, alreadyAnalyzed, err := h.svc.Analyze(c.Request().Context(), userID, documentID)
	if err != nil {
		return err
	}

	message := "file analyzed successfully"
	if alreadyAnalyzed {
		message = "file already analyzed"
	}
	return respond.OK(c, http.StatusOK, message, echo.Map{"insights": insight})
}

func (h *Handler) Get(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := primitive.ObjectIDFromHex(c.Param("fileId"))
	if err != nil {
		return respond.Validation("invalid file id")
	}

	insight, preview, err := h.svc.Get(c.Request().Context(), userID, documentID)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "insights retrieved successfully", echo.Map{
		"insights": insight,
		"file":     preview,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	documentID, err := primitive.ObjectIDFromHex(c.Param("fileId"))
	if err != nil {
		return respond.Validation("invalid file id")
	}

	if err := h.svc.Delete(c.Request().Context(), userID, documentID); err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "insights deleted successfully", nil)
}
