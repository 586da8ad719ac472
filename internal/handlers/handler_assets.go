package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/middleware"
	"github.com/gin-gonic/gin"
)

type assetHandler struct {
	signer portssvc.AssetUploadSigner
}

func registerAssetRoutes(rg *gin.RouterGroup, signer portssvc.AssetUploadSigner) {
	h := &assetHandler{signer: signer}
	rg.GET("/assets/upload-auth", h.getUploadAuth)
}

// getUploadAuth godoc
// @Summary Get asset upload parameters
// @Description Returns signed parameters for uploading a photo directly to the asset host.
// @Tags assets
// @Produce json
// @Success 200 {object} domain.AssetUploadAuth
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Asset host not configured"
// @Security BearerAuth
// @Router /assets/upload-auth [get]
func (h *assetHandler) getUploadAuth(c *gin.Context) {
	auth, err := h.signer.SignUpload(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Asset host not configured"})
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to sign upload", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign upload"})
		return
	}
	c.JSON(http.StatusOK, auth)
}
