package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/dto"
	"github.com/SscSPs/kontrollavgift/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// signInFailedMessage is shown for every failed sign-in, whatever the cause.
const signInFailedMessage = "Fel email eller lösenord"

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles authentication related requests.
type authHandler struct {
	identity portssvc.IdentitySvcFacade
}

func newAuthHandler(identity portssvc.IdentitySvcFacade) *authHandler {
	return &authHandler{identity: identity}
}

// registerAuthRoutes sets up the public routes for authentication.
func registerAuthRoutes(r *gin.Engine, identity portssvc.IdentitySvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(identity)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
		auth.POST("/google/exchange-code", middleware.RateLimit(loginLimiter), h.exchangeGoogleCode)
		auth.GET("/session/events", h.sessionEvents)
	}
}

// registerSessionRoutes sets up the authenticated session routes.
func registerSessionRoutes(rg *gin.RouterGroup, identity portssvc.IdentitySvcFacade) {
	h := newAuthHandler(identity)
	rg.POST("/auth/logout", h.logout)
}

// login godoc
// @Summary Employee login
// @Description Authenticates an employee with email and password and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: signInFailedMessage})
		return
	}
	h.signIn(c, domain.PasswordCredential{Email: req.Email, Password: req.Password})
}

// exchangeGoogleCode godoc
// @Summary Exchange Google OAuth code
// @Description Exchanges a Google authorization code for a session token. The Google account must belong to a registered employee.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleCodeExchangeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeGoogleCode(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.GoogleCodeExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for google code exchange", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: signInFailedMessage})
		return
	}
	h.signIn(c, domain.GoogleCodeCredential{Code: req.Code})
}

func (h *authHandler) signIn(c *gin.Context, cred domain.Credential) {
	session, err := h.identity.SignIn(c.Request.Context(), cred)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: signInFailedMessage})
		return
	}
	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}

// logout godoc
// @Summary Sign out
// @Description Revokes the current session and notifies its observers.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.identity.SignOut(c.Request.Context(), session); err != nil {
		logger.Error("Failed to sign out", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign out"})
		return
	}
	c.Status(http.StatusNoContent)
}

// sessionEvents godoc
// @Summary Observe session state
// @Description Server-Sent Events stream of "session" events. The current state is sent immediately; a signed-out event ends the stream.
// @Tags auth
// @Produce text/event-stream
// @Param token query string true "Session token"
// @Success 200 {object} dto.SessionEvent
// @Router /auth/session/events [get]
func (h *authHandler) sessionEvents(c *gin.Context) {
	events := h.identity.ObserveSession(c.Request.Context(), c.Query("token"))

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		session, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent("session", dto.ToSessionEvent(session))
		return session != nil
	})
}
