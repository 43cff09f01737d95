package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"auth-api/internal/domain"
	"auth-api/internal/email"
	"auth-api/internal/repository"
	"auth-api/internal/validate"
)

// AuthService orquesta las transiciones de estado de las cuentas: registro,
// verificación, login, perfil y reset de contraseña.
type AuthService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	emailSender email.Sender
	hasher      *PasswordHasher
	mailLimiter MailRateLimiter

	verificationTokenSize int
	verificationTokenTTL  time.Duration
	resetTokenSize        int
	resetTokenTTL         time.Duration
}

// TokenConfig agrupa tamaños y vigencias de los tokens enviados por correo.
type TokenConfig struct {
	VerificationTokenSize int
	VerificationTokenTTL  time.Duration
	ResetTokenSize        int
	ResetTokenTTL         time.Duration
}

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailSendFailure   = errors.New("email send failed")
	ErrRateLimited        = errors.New("rate limited")
)

const (
	verifyMailSubject = "Verify Account"
	verifyMailRoute   = "/verify/"
	resetMailSubject  = "Reset Password"
	resetMailRoute    = "/reset-password/"
)

func NewAuthService(logger *zap.Logger, users repository.UserRepository, sender email.Sender, hasher *PasswordHasher, limiter MailRateLimiter, tokens TokenConfig) *AuthService {
	if hasher == nil {
		hasher = NewPasswordHasher(0)
	}
	if limiter == nil {
		limiter = NewMailRateLimiter(10*time.Minute, 3)
	}
	if tokens.VerificationTokenSize <= 0 {
		tokens.VerificationTokenSize = 32
	}
	if tokens.VerificationTokenTTL <= 0 {
		tokens.VerificationTokenTTL = 15 * time.Minute
	}
	if tokens.ResetTokenSize <= 0 {
		tokens.ResetTokenSize = 32
	}
	if tokens.ResetTokenTTL <= 0 {
		tokens.ResetTokenTTL = 15 * time.Minute
	}
	return &AuthService{
		logger:                logger,
		users:                 users,
		emailSender:           sender,
		hasher:                hasher,
		mailLimiter:           limiter,
		verificationTokenSize: tokens.VerificationTokenSize,
		verificationTokenTTL:  tokens.VerificationTokenTTL,
		resetTokenSize:        tokens.ResetTokenSize,
		resetTokenTTL:         tokens.ResetTokenTTL,
	}
}

// Register crea la cuenta sin verificar, con token de verificación fresco, y
// dispara el correo con el enlace. Un fallo del correo se reporta al caller
// pero la cuenta ya quedó persistida; el usuario puede pedir reenvío.
func (s *AuthService) Register(ctx context.Context, name, emailAddr, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	emailAddr = normalizeEmail(emailAddr)
	if name == "" || emailAddr == "" || password == "" {
		return domain.User{}, ErrMissingFields
	}
	if !validate.Email(emailAddr) {
		return domain.User{}, ErrInvalidEmail
	}
	if !validate.Password(password) {
		return domain.User{}, ErrWeakPassword
	}

	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return domain.User{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}
	token, err := GenerateToken(s.verificationTokenSize)
	if err != nil {
		return domain.User{}, err
	}

	expires := time.Now().UTC().Add(s.verificationTokenTTL)
	user := domain.User{
		ID:                  uuid.NewString(),
		Name:                name,
		Email:               emailAddr,
		PasswordHash:        passwordHash,
		Role:                domain.DefaultRole,
		VerificationToken:   token,
		VerificationExpires: &expires,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	if err := s.sendTokenMail(ctx, emailAddr, verifyMailSubject, verifyMailRoute, token, s.verificationTokenTTL); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Verify consume un token de verificación. Un token expirado NO se limpia:
// la cuenta queda tal cual y el usuario puede pedir uno nuevo.
func (s *AuthService) Verify(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, ErrMissingFields
	}

	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidToken
		}
		return domain.User{}, err
	}
	if user.VerificationExpires != nil && !time.Now().UTC().Before(*user.VerificationExpires) {
		return domain.User{}, ErrTokenExpired
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return domain.User{}, err
	}
	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationExpires = nil
	return user, nil
}

// ResendVerification reemplaza el token de verificación pendiente por uno
// fresco y reenvía el correo.
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	if !s.mailLimiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	token, err := GenerateToken(s.verificationTokenSize)
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(s.verificationTokenTTL)
	if err := s.users.SetVerificationToken(ctx, user.ID, token, expires); err != nil {
		return err
	}
	return s.sendTokenMail(ctx, emailAddr, verifyMailSubject, verifyMailRoute, token, s.verificationTokenTTL)
}

// Login valida credenciales contra el hash almacenado. Email desconocido y
// contraseña incorrecta devuelven el mismo error para no enumerar cuentas.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return domain.User{}, ErrNotVerified
	}
	return user, nil
}

// Profile resuelve la identidad de sesión a la cuenta actual.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// ForgotPassword genera un token de reset y envía el enlace por correo. Una
// solicitud nueva reemplaza el token pendiente anterior.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if !s.mailLimiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	token, err := GenerateToken(s.resetTokenSize)
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(s.resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}
	return s.sendTokenMail(ctx, emailAddr, resetMailSubject, resetMailRoute, token, s.resetTokenTTL)
}

// ResetPassword consume un token de reset vigente y reemplaza la contraseña.
// La búsqueda excluye tokens expirados: expirado e inválido son lo mismo.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByActiveResetToken(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidToken
		}
		return err
	}
	if !validate.Password(newPassword) {
		return ErrWeakPassword
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, passwordHash)
}

func (s *AuthService) sendTokenMail(ctx context.Context, toEmail, subject, route, token string, ttl time.Duration) error {
	if s.emailSender == nil {
		return ErrEmailSendFailure
	}
	if err := s.emailSender.SendTokenLink(ctx, toEmail, subject, route, token, ttl); err != nil {
		if s.logger != nil {
			s.logger.Warn("send token mail failed",
				zap.Error(err),
				zap.String("email", toEmail),
				zap.String("subject", subject),
			)
		}
		return ErrEmailSendFailure
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
