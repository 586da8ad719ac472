// Package assets signs client-side uploads of evidence photos to an
// ImageKit-compatible asset host.
package assets

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/google/uuid"
)

// DefaultUploadTTL keeps signatures inside the host's one hour limit.
const DefaultUploadTTL = 30 * time.Minute

// UploadSigner issues upload authentication parameters.
type UploadSigner struct {
	publicKey   string
	privateKey  string
	urlEndpoint string
	ttl         time.Duration
	now         func() time.Time
	newToken    func() string
}

// NewUploadSigner creates a signer. An empty private key disables uploads.
func NewUploadSigner(publicKey, privateKey, urlEndpoint string) *UploadSigner {
	return &UploadSigner{
		publicKey:   publicKey,
		privateKey:  privateKey,
		urlEndpoint: urlEndpoint,
		ttl:         DefaultUploadTTL,
		now:         time.Now,
		newToken:    uuid.NewString,
	}
}

var _ portssvc.AssetUploadSigner = (*UploadSigner)(nil)

func (s *UploadSigner) SignUpload(_ context.Context) (*domain.AssetUploadAuth, error) {
	if s.privateKey == "" || s.publicKey == "" {
		return nil, fmt.Errorf("asset host is not configured: %w", apperrors.ErrUnavailable)
	}
	token := s.newToken()
	expire := s.now().Add(s.ttl).Unix()
	return &domain.AssetUploadAuth{
		Token:       token,
		Expire:      expire,
		Signature:   Sign(s.privateKey, token, expire),
		PublicKey:   s.publicKey,
		URLEndpoint: s.urlEndpoint,
	}, nil
}

// Sign returns hex(HMAC-SHA1(privateKey, token+expire)).
func Sign(privateKey, token string, expire int64) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
