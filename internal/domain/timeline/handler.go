package timeline

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

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
	private.GET("/timeline", h.Feed)
	private.GET("/timeline/stats", h.Stats)
}

func (h *Handler) Feed(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return respond.Validation("please provide a valid limit")
		}
	}

	items, total, err := h.svc.Feed(c.Request().Context(),
		userID, c.QueryParam("startDate"), c.QueryParam("endDate"), limit)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "timeline retrieved successfully", echo.Map{
		"timeline":   items,
		"totalItems": total,
	})
}

func (h *Handler) Stats(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.svc.Overview(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "stats retrieved successfully", echo.Map{"stats": stats})
}
