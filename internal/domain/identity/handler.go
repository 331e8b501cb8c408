package identity

import (
	"net/http"

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

func (h *Handler) RegisterRoutes(public, private *echo.Group) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)

	private.GET("/auth/me", h.Me)
	private.PUT("/auth/profile", h.UpdateProfile)
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return respond.Validation("invalid request body")
	}

	result, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusCreated, "user registered successfully", result)
}

func (h *Handler) Login(c echo.Context) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return respond.Validation("invalid request body")
	}

	result, err := h.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "login successful", result)
}

func (h *Handler) Me(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "user profile retrieved", echo.Map{"user": user})
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var in UpdateProfileInput
	if err := c.Bind(&in); err != nil {
		return respond.Validation("invalid request body")
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return respond.OK(c, http.StatusOK, "profile updated successfully", echo.Map{"user": user})
}
