package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auth-api/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger       *zap.Logger
	authServ     *service.AuthService
	jwtServ      *service.JWTService
	secureCookie bool
}

// NewAuthHandler crea una instancia de AuthHandler con sus dependencias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, jwtServ *service.JWTService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		authServ:     authServ,
		jwtServ:      jwtServ,
		secureCookie: secureCookie,
	}
}

// Register maneja POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	if _, err := h.authServ.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		h.failFromErr(c, err, "register failed")
		return
	}
	ok(c, http.StatusCreated, "user registered")
}

// Verify maneja GET /verify?token=.
func (h *AuthHandler) Verify(c *gin.Context) {
	if _, err := h.authServ.Verify(c.Request.Context(), c.Query("token")); err != nil {
		h.failFromErr(c, err, "verify failed")
		return
	}
	ok(c, http.StatusOK, "verified successfully")
}

// ResendVerification maneja POST /resend-verification.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.authServ.ResendVerification(c.Request.Context(), req.Email); err != nil {
		h.failFromErr(c, err, "resend verification failed")
		return
	}
	ok(c, http.StatusOK, "verification email sent")
}

// Login maneja POST /login y deja el token de sesión en la cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.failFromErr(c, err, "login failed")
		return
	}

	token, err := h.jwtServ.IssueToken(user)
	if err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		fail(c, http.StatusBadRequest, "something went wrong")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.jwtServ.TTL().Seconds()), "/", "", h.secureCookie, true)
	ok(c, http.StatusOK, "login successful")
}

// Profile maneja GET /profile; requiere sesión válida.
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, okClaims := GetAuthClaims(c)
	if !okClaims {
		fail(c, http.StatusUnauthorized, "please login")
		return
	}

	user, err := h.authServ.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.failFromErr(c, err, "get profile failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "user found",
		"success": true,
		"user":    user.Profile(),
	})
}

// ForgotPassword maneja POST /forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.authServ.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.failFromErr(c, err, "forgot password failed")
		return
	}
	ok(c, http.StatusOK, "reset password token generated")
}

// ResetPassword maneja POST /reset-password?token=.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.authServ.ResetPassword(c.Request.Context(), c.Query("token"), req.NewPassword); err != nil {
		h.failFromErr(c, err, "reset password failed")
		return
	}
	ok(c, http.StatusOK, "password reset successfully")
}

// Logout maneja GET /logout. Limpia la cookie incondicionalmente; llamarlo
// sin sesión o dos veces seguidas nunca es un error.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", h.secureCookie, true)
	ok(c, http.StatusOK, "logged out successfully")
}

// failFromErr traduce errores del servicio a la respuesta uniforme. Errores
// no clasificados se loguean y salen como fallo genérico sin detalle.
func (h *AuthHandler) failFromErr(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		fail(c, http.StatusBadRequest, "all fields are required")
	case errors.Is(err, service.ErrInvalidEmail):
		fail(c, http.StatusBadRequest, "invalid email")
	case errors.Is(err, service.ErrWeakPassword):
		fail(c, http.StatusBadRequest, "password should be more than 6 characters and must have one uppercase and one lowercase character")
	case errors.Is(err, service.ErrEmailTaken):
		fail(c, http.StatusBadRequest, "user already exists")
	case errors.Is(err, service.ErrInvalidToken):
		fail(c, http.StatusBadRequest, "invalid token")
	case errors.Is(err, service.ErrTokenExpired):
		fail(c, http.StatusBadRequest, "verification token expired, please request a new one")
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, service.ErrNotVerified):
		fail(c, http.StatusBadRequest, "please verify your email")
	case errors.Is(err, service.ErrAlreadyVerified):
		fail(c, http.StatusBadRequest, "account already verified")
	case errors.Is(err, service.ErrUserNotFound):
		fail(c, http.StatusBadRequest, "user not found")
	case errors.Is(err, service.ErrEmailSendFailure):
		fail(c, http.StatusBadRequest, "could not send email")
	case errors.Is(err, service.ErrRateLimited):
		fail(c, http.StatusTooManyRequests, "too many requests")
	default:
		h.logger.Error(logMsg, zap.Error(err))
		fail(c, http.StatusBadRequest, "something went wrong")
	}
}

func ok(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message, "success": true})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message, "success": false})
}
