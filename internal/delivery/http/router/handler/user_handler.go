package handler

import (
	"log/slog"
	"net/http"
	"time"

	"paygate/internal/delivery/http/middleware"
	"paygate/internal/delivery/http/response"
	"paygate/internal/domain/entity"
	"paygate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for profile handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type updateProfileRequest struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	FullName        *string `json:"fullName" validate:"omitempty,min=1"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=8"`
	CurrentPassword string  `json:"currentPassword"`
}

// userView is the client-facing shape of a user account. The password hash
// never leaves the service.
type userView struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AccountNumber string    `json:"accountNumber"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserView(user *entity.User) userView {
	return userView{
		ID:            user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		AccountNumber: user.AccountNumber,
		Role:          user.Role.String(),
		CreatedAt:     user.CreatedAt,
	}
}

// GetProfile handles the request to get the current user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(output.User), "Profile retrieved successfully")
}

// UpdateProfile handles partial updates to the current user's profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		UserID:          userID,
		Email:           req.Email,
		FullName:        req.FullName,
		NewPassword:     req.NewPassword,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(output.User), "Profile updated successfully")
}
