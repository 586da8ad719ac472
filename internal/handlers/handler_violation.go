package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/dto"
	"github.com/SscSPs/kontrollavgift/internal/middleware"
	"github.com/SscSPs/kontrollavgift/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// saveFailedMessage is shown when a record could not be stored.
const saveFailedMessage = "Fel vid sparande"

// violationHandler handles HTTP requests related to violation records.
type violationHandler struct {
	violationService portssvc.ViolationSvcFacade
	returnURL        string
	location         *time.Location
	now              func() time.Time
}

// newViolationHandler creates a new violationHandler.
func newViolationHandler(vs portssvc.ViolationSvcFacade, cfg *config.Config) *violationHandler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &violationHandler{
		violationService: vs,
		returnURL:        cfg.PrintReturnURL,
		location:         loc,
		now:              time.Now,
	}
}

// registerViolationRoutes registers routes related to violation records.
func registerViolationRoutes(rg *gin.RouterGroup, cfg *config.Config, vs portssvc.ViolationSvcFacade) {
	h := newViolationHandler(vs, cfg)

	violations := rg.Group("/violations")
	{
		violations.GET("/new", h.getFormDefaults)
		violations.POST("", h.createViolation)
		violations.GET("", h.listViolations)
		violations.GET("/:id", h.getViolation)
		violations.PATCH("/:id/payment-status", h.updatePaymentStatus)
		violations.DELETE("/:id", h.deleteViolation)
		violations.POST("/:id/reprint", h.reprintViolation)
		violations.GET("/:id/document", h.getDocument)
	}
}

// getFormDefaults godoc
// @Summary Get issuing form defaults
// @Description Returns the values a new kontrollavgift is pre-filled with, including the next reference number.
// @Tags violations
// @Produce json
// @Success 200 {object} dto.FormDefaultsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /violations/new [get]
func (h *violationHandler) getFormDefaults(c *gin.Context) {
	defaults := h.violationService.GetFormDefaults(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToFormDefaultsResponse(defaults))
}

// createViolation godoc
// @Summary Issue a kontrollavgift
// @Description Allocates a reference number, saves the record and returns the printer hand-off URL. With redirect=true the response is a 303 to that URL.
// @Tags violations
// @Accept json
// @Produce json
// @Param violation body dto.CreateViolationRequest true "Violation details"
// @Param redirect query bool false "Redirect to the printer URL"
// @Success 201 {object} dto.CreateViolationResponse
// @Success 303 "Redirect to the printer application"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Reference number already issued"
// @Failure 500 {object} map[string]string "Fel vid sparande"
// @Security BearerAuth
// @Router /violations [post]
func (h *violationHandler) createViolation(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateViolation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	issuer := domain.Identity{UserID: session.UserID, Email: session.Email}

	rec, dispatch, err := h.violationService.IssueViolation(c.Request.Context(), req, issuer, h.returnURL)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error issuing violation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Referensnumret är redan använt, försök igen"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": saveFailedMessage})
		}
		return
	}

	if c.Query("redirect") == "true" {
		c.Redirect(http.StatusSeeOther, dispatch.URL)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateViolationResponse{
		Violation: dto.ToViolationResponse(*rec, h.now()),
		PrintURL:  dispatch.URL,
	})
}

// listViolations godoc
// @Summary List violations
// @Description Lists issued records newest first with derived payment status and a summary.
// @Tags violations
// @Produce json
// @Param filter query string false "all, today, week or month" default(all)
// @Param days query int false "Only records from the last N days; overrides filter"
// @Success 200 {object} dto.ListViolationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /violations [get]
func (h *violationHandler) listViolations(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListViolationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListViolations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	now := h.now()
	filter, err := params.ToListFilter(now, h.location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := h.violationService.ListViolations(c.Request.Context(), filter)
	c.JSON(http.StatusOK, dto.ToListViolationsResponse(list, now))
}

// getViolation godoc
// @Summary Get a violation by ID
// @Tags violations
// @Produce json
// @Param id path string true "Violation ID"
// @Success 200 {object} dto.ViolationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Violation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve violation"
// @Security BearerAuth
// @Router /violations/{id} [get]
func (h *violationHandler) getViolation(c *gin.Context) {
	rec, err := h.violationService.GetViolationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeLookupError(c, err, "Failed to retrieve violation")
		return
	}
	c.JSON(http.StatusOK, dto.ToViolationResponse(*rec, h.now()))
}

// updatePaymentStatus godoc
// @Summary Set the payment status
// @Description Sets the explicit payment status. Accepts unpaid, paid, collections, overdue and the Swedish labels.
// @Tags violations
// @Accept json
// @Produce json
// @Param id path string true "Violation ID"
// @Param status body dto.UpdatePaymentStatusRequest true "New payment status"
// @Success 200 {object} dto.ViolationResponse
// @Failure 400 {object} map[string]string "Unknown payment status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Violation not found"
// @Failure 500 {object} map[string]string "Failed to update payment status"
// @Security BearerAuth
// @Router /violations/{id}/payment-status [patch]
func (h *violationHandler) updatePaymentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePaymentStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	status, ok := domain.ParsePaymentStatus(req.PaymentStatus)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	rec, err := h.violationService.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), status, userID)
	if err != nil {
		h.writeLookupError(c, err, "Failed to update payment status")
		return
	}
	c.JSON(http.StatusOK, dto.ToViolationResponse(*rec, h.now()))
}

// deleteViolation godoc
// @Summary Delete a violation
// @Tags violations
// @Param id path string true "Violation ID"
// @Success 204
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Violation not found"
// @Failure 500 {object} map[string]string "Failed to delete violation"
// @Security BearerAuth
// @Router /violations/{id} [delete]
func (h *violationHandler) deleteViolation(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	if err := h.violationService.DeleteViolation(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.writeLookupError(c, err, "Failed to delete violation")
		return
	}
	c.Status(http.StatusNoContent)
}

// reprintViolation godoc
// @Summary Reprint a violation
// @Description Rebuilds the receipt of a stored record and returns the printer hand-off URL. With redirect=true the response is a 303 to that URL.
// @Tags violations
// @Produce json
// @Param id path string true "Violation ID"
// @Param redirect query bool false "Redirect to the printer URL"
// @Success 200 {object} dto.PrintDispatchResponse
// @Success 303 "Redirect to the printer application"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Violation not found"
// @Security BearerAuth
// @Router /violations/{id}/reprint [post]
func (h *violationHandler) reprintViolation(c *gin.Context) {
	dispatch, err := h.violationService.ReprintViolation(c.Request.Context(), c.Param("id"), h.returnURL)
	if err != nil {
		h.writeLookupError(c, err, "Failed to reprint violation")
		return
	}
	if c.Query("redirect") == "true" {
		c.Redirect(http.StatusSeeOther, dispatch.URL)
		return
	}
	c.JSON(http.StatusOK, dto.PrintDispatchResponse{PrintURL: dispatch.URL})
}

// getDocument godoc
// @Summary Get the receipt document
// @Description Returns the ePOS-Print XML that is sent to the printer for this record.
// @Tags violations
// @Produce xml
// @Param id path string true "Violation ID"
// @Success 200 {string} string "ePOS-Print XML"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Violation not found"
// @Security BearerAuth
// @Router /violations/{id}/document [get]
func (h *violationHandler) getDocument(c *gin.Context) {
	doc, err := h.violationService.RenderDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeLookupError(c, err, "Failed to render document")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(doc))
}

func (h *violationHandler) writeLookupError(c *gin.Context, err error, message string) {
	logger := middleware.GetLoggerFromContext(c)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Violation not found", slog.String("violation_id", c.Param("id")))
		c.JSON(http.StatusNotFound, gin.H{"error": "Violation not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(message, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
