package services

import (
	"context"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
)

// AssetUploadSigner issues short-lived parameters that let the browser upload
// evidence photos straight to the asset host.
type AssetUploadSigner interface {
	SignUpload(ctx context.Context) (*domain.AssetUploadAuth, error)
}
