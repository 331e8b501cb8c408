package vitals

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/platform/auth"
	"github.com/healthmate/healthmate/internal/platform/respond"
	"github.com/healthmate/healthmate/pkg/pagination"
)

const defaultListLimit = 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(private *echo.Group) {
	private.POST("/vitals", h.Add)
	private.GET("/vitals", h.List)
	private.GET("/vitals/:id", h.Get)
	private.PUT("/vitals/:id", h.Update)
	private.DELETE("/vitals/:id", h.Delete)
}

func (h *Handler) Add(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var in AddInput
	if err := c.Bind(&in); err != nil {
		return respond.Validation("invalid request body")
	}

	entry, err := h.svc.Add(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusCreated, "vitals added successfully", echo.Map{"vitals": entry})
}

func (h *Handler) List(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	pg := pagination.FromContext(c, defaultListLimit)
	entries, total, err := h.svc.List(c.Request().Context(), userID,
		c.QueryParam("startDate"), c.QueryParam("endDate"),
		ListOptions{
			SortBy: c.QueryParam("sortBy"),
			Skip:   pg.Skip(),
			Limit:  int64(pg.Limit),
		})
	if err != nil {
		return err
	}

	if entries == nil {
		entries = []*Entry{}
	}
	return respond.OK(c, http.StatusOK, "vitals retrieved successfully", echo.Map{
		"vitals":     entries,
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
		return respond.Validation("invalid vitals id")
	}

	entry, err := h.svc.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "vitals retrieved successfully", echo.Map{"vitals": entry})
}

func (h *Handler) Update(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return respond.Validation("invalid vitals id")
	}

	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return respond.Validation("invalid request body")
	}

	entry, err := h.svc.Update(c.Request().Context(), userID, id, in)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "vitals updated successfully", echo.Map{"vitals": entry})
}

func (h *Handler) Delete(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return respond.Validation("invalid vitals id")
	}

	if err := h.svc.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "vitals deleted successfully", nil)
}
