package pgsql

import (
	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repositories. The revocation
// store lives outside PostgreSQL and is passed in.
func NewRepositoryProvider(dbPool *pgxpool.Pool, revocationRepo portsrepo.SessionRevocationRepository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ViolationRepo:  newPgxViolationRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		RevocationRepo: revocationRepo,
	}
}
