package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

// authHandler handles registration and login.
type authHandler struct {
	userService portssvc.UserSvcFacade
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(userService portssvc.UserSvcFacade, authService portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{
		userService: userService,
		authService: authService,
	}
}

// register godoc
// @Summary Register a new staff user
// @Description Creates a user account with a hashed password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterUserRequest true "User registration details"
// @Success 201 {object} dto.UserResponse "Created user"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RegisterUserRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "register user")
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Authenticate and obtain an access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Access token and user"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.LoginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "login")
		return
	}

	logger.Info("User logged in", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}

func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Auth)
	auth := r.Group("/api/v1/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
}
