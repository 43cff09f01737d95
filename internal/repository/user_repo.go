package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"auth-api/internal/domain"
)

// UserRepository define el contrato de persistencia para cuentas.
// Las búsquedas que no encuentran fila devuelven pgx.ErrNoRows.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (domain.User, error)
	// GetByActiveResetToken solo encuentra tokens de reset con expiración
	// posterior a now; un token expirado equivale a uno inexistente.
	GetByActiveResetToken(ctx context.Context, token string, now time.Time) (domain.User, error)
	MarkVerified(ctx context.Context, id string) error
	SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	// UpdatePassword reemplaza el hash y limpia el token de reset en una sola
	// sentencia.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

const userColumns = `
	id, name, email, password_hash, role, is_verified,
	verification_token, verification_expires,
	reset_password_token, reset_password_expires, created_at
`

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.VerificationToken,
		user.VerificationExpires,
		user.ResetPasswordToken,
		user.ResetPasswordExpires,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) GetByVerificationToken(ctx context.Context, token string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE verification_token = $1 AND verification_token <> ''
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, token))
}

func (r *PgUserRepository) GetByActiveResetToken(ctx context.Context, token string, now time.Time) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_password_token = $1
		  AND reset_password_token <> ''
		  AND reset_password_expires > $2
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, token, now))
}

func (r *PgUserRepository) MarkVerified(ctx context.Context, id string) error {
	const query = `
		UPDATE users
		SET is_verified = TRUE,
		    verification_token = '',
		    verification_expires = NULL
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

func (r *PgUserRepository) SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error {
	const query = `
		UPDATE users
		SET verification_token = $2, verification_expires = $3
		WHERE id = $1
	`
	return r.execOne(ctx, query, id, token, expires)
}

func (r *PgUserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	const query = `
		UPDATE users
		SET reset_password_token = $2, reset_password_expires = $3
		WHERE id = $1
	`
	return r.execOne(ctx, query, id, token, expires)
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2,
		    reset_password_token = '',
		    reset_password_expires = NULL
		WHERE id = $1
	`
	return r.execOne(ctx, query, id, passwordHash)
}

func (r *PgUserRepository) scanOne(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsVerified,
		&u.VerificationToken,
		&u.VerificationExpires,
		&u.ResetPasswordToken,
		&u.ResetPasswordExpires,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *PgUserRepository) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
