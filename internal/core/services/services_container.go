package services

import (
	"fmt"

	"github.com/SscSPs/kontrollavgift/internal/adapters/assets"
	"github.com/SscSPs/kontrollavgift/internal/adapters/printer"
	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/core/ticket"
	"github.com/SscSPs/kontrollavgift/internal/platform/config"
	"github.com/SscSPs/kontrollavgift/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// passwords is the configured PasswordAuthenticator; nil selects the local bcrypt one.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, passwords portssvc.PasswordAuthenticator, m *metrics.Metrics) (*portssvc.ServiceContainer, error) {
	builder, err := NewTicketBuilder(cfg)
	if err != nil {
		return nil, err
	}

	container := &portssvc.ServiceContainer{}
	container.Printer = printer.NewTMAssistantBridge()
	container.Assets = assets.NewUploadSigner(cfg.AssetHostPublicKey, cfg.AssetHostPrivateKey, cfg.AssetHostURLEndpoint)
	container.User = NewUserService(repos.UserRepo)

	container.Violation = NewViolationService(
		repos.ViolationRepo,
		builder,
		container.Printer,
		WithViolationDefaults(ViolationDefaults{
			Company:       cfg.DefaultCompany,
			Amount:        cfg.DefaultAmount,
			SequenceFloor: cfg.SequenceFloor,
			Location:      cfg.Location,
		}),
		WithViolationMetrics(m),
	)

	if passwords == nil {
		passwords = NewLocalPasswordAuthenticator(repos.UserRepo)
	}
	identityOpts := []IdentityServiceOption{WithIdentityMetrics(m)}
	if cfg.GoogleClientID != "" {
		identityOpts = append(identityOpts, WithGoogleSignIn(NewGoogleOAuthHandlerService(cfg)))
	}
	container.Identity = NewIdentityService(
		SessionConfig{Secret: cfg.JWTSecret, Expiry: cfg.JWTExpiryDuration, Issuer: cfg.JWTIssuer},
		repos.UserRepo,
		repos.RevocationRepo,
		passwords,
		identityOpts...,
	)

	return container, nil
}

// NewTicketBuilder builds the single receipt builder shared by issuing and reprinting.
func NewTicketBuilder(cfg *config.Config) (*ticket.Builder, error) {
	format, err := ticket.ParsePayloadFormat(cfg.TicketQRFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid TICKET_QR_FORMAT: %w", err)
	}
	return ticket.NewBuilder(ticket.Config{
		PayloadFormat:  format,
		PayeeName:      cfg.TicketPayeeName,
		PaymentAccount: cfg.TicketPaymentAccount,
	})
}
