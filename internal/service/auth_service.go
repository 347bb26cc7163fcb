package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"

	"nexoformar/internal/auth"
	"nexoformar/internal/config"
	"nexoformar/internal/entity"
	"nexoformar/internal/model"
	"nexoformar/internal/notify"

	"gorm.io/gorm"
)

// Messages returned by the authentication flows. The login and code-request
// paths deliberately reuse one message per outcome so responses never reveal
// whether an email is registered.
const (
	msgInvalidCredentials = "invalid credentials"
	msgUserInactive       = "user is inactive"
	msgUserBanned         = "user is permanently banned"
	msgEmailTaken         = "email is already registered"
	msgInvalidCode        = "invalid code"
	msgCodeExpired        = "code expired"
	msgRegisterCodeSent   = "If the email is valid, we sent a code to create your account."
	msgRecoveryCodeSent   = "If the email exists, we sent a recovery code."
	msgPasswordUpdated    = "password updated successfully"
)

// AuthService implements credential validation, session issuance and the
// two one-time-code flows (registration confirmation, password recovery).
type AuthService struct {
	repo        model.Repository
	tokens      *auth.Manager
	mailer      notify.Sender
	registerTTL time.Duration
	recoveryTTL time.Duration
}

// NewAuthService wires the identity service together.
func NewAuthService(repo model.Repository, tokens *auth.Manager, mailer notify.Sender, cfg config.Config) *AuthService {
	registerTTL := time.Duration(cfg.RegisterCodeTTLMinutes) * time.Minute
	if registerTTL <= 0 {
		registerTTL = 15 * time.Minute
	}
	recoveryTTL := time.Duration(cfg.RecoveryCodeTTLMinutes) * time.Minute
	if recoveryTTL <= 0 {
		recoveryTTL = 15 * time.Minute
	}
	return &AuthService{
		repo:        repo,
		tokens:      tokens,
		mailer:      mailer,
		registerTTL: registerTTL,
		recoveryTTL: recoveryTTL,
	}
}

// ValidateUser checks the credentials and returns the account on success.
// Unknown email and wrong password produce the same error so callers cannot
// probe which addresses are registered.
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (*entity.DbUser, error) {
	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized(msgInvalidCredentials)
	}

	switch user.Status {
	case entity.StatusActive:
		// proceed to password check
	case entity.StatusInactive:
		return nil, ErrUnauthorized(msgUserInactive)
	case entity.StatusBanned:
		return nil, ErrUnauthorized(msgUserBanned)
	default:
		return nil, ErrInternal("unknown account status", nil)
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrUnauthorized(msgInvalidCredentials)
	}
	return user, nil
}

// IssueSession builds a signed session token for a validated account.
func (s *AuthService) IssueSession(user *entity.DbUser) (entity.SessionResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return entity.SessionResponse{}, ErrInternal("failed to create session", err)
	}
	return entity.SessionResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Name:        user.Name,
	}, nil
}

// RegisterDirect creates an account without code confirmation and returns a
// fresh session.
func (s *AuthService) RegisterDirect(ctx context.Context, name, email, password string) (entity.SessionResponse, error) {
	existing, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return entity.SessionResponse{}, err
	}
	if existing != nil {
		return entity.SessionResponse{}, ErrBadRequest(msgEmailTaken)
	}

	user, err := s.createUser(ctx, name, email, password)
	if err != nil {
		return entity.SessionResponse{}, err
	}
	return s.IssueSession(user)
}

// RequestRegistrationCode issues a registration code unless the email is
// already taken. The acknowledgment is identical either way.
func (s *AuthService) RequestRegistrationCode(ctx context.Context, email string) (entity.MessageResponse, error) {
	ack := entity.MessageResponse{Message: msgRegisterCodeSent}

	existing, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return entity.MessageResponse{}, err
	}
	if existing != nil {
		return ack, nil
	}

	if err := s.issueCode(ctx, email, s.registerTTL); err != nil {
		return entity.MessageResponse{}, err
	}
	return ack, nil
}

// ConfirmRegistration creates the account after verifying the one-time code.
func (s *AuthService) ConfirmRegistration(ctx context.Context, req entity.ConfirmRegisterRequest) (entity.SessionResponse, error) {
	existing, err := s.findUserByEmail(ctx, req.Email)
	if err != nil {
		return entity.SessionResponse{}, err
	}
	if existing != nil {
		return entity.SessionResponse{}, ErrBadRequest(msgEmailTaken)
	}

	record, err := s.checkCode(ctx, req.Email, req.Code)
	if err != nil {
		return entity.SessionResponse{}, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return entity.SessionResponse{}, err
	}

	if err := s.repo.DeleteCode(ctx, record.ID); err != nil {
		return entity.SessionResponse{}, ErrInternal("failed to consume verification code", err)
	}
	return s.IssueSession(user)
}

// RequestRecoveryCode issues a password-recovery code when the account
// exists. The acknowledgment is identical either way.
func (s *AuthService) RequestRecoveryCode(ctx context.Context, email string) (entity.MessageResponse, error) {
	ack := entity.MessageResponse{Message: msgRecoveryCodeSent}

	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return entity.MessageResponse{}, err
	}
	if user == nil {
		return ack, nil
	}

	if err := s.issueCode(ctx, email, s.recoveryTTL); err != nil {
		return entity.MessageResponse{}, err
	}
	return ack, nil
}

// ResetPassword replaces the stored password hash after verifying the
// recovery code.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) (entity.MessageResponse, error) {
	record, err := s.checkCode(ctx, email, code)
	if err != nil {
		return entity.MessageResponse{}, err
	}

	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return entity.MessageResponse{}, err
	}
	if user == nil {
		return entity.MessageResponse{}, ErrNotFound("user not found")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return entity.MessageResponse{}, ErrInternal("failed to hash password", err)
	}
	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{PasswordHash: &hash}); err != nil {
		return entity.MessageResponse{}, ErrInternal("failed to update password", err)
	}

	if err := s.repo.DeleteCode(ctx, record.ID); err != nil {
		return entity.MessageResponse{}, ErrInternal("failed to consume verification code", err)
	}
	return entity.MessageResponse{Message: msgPasswordUpdated}, nil
}

// findUserByEmail distinguishes "no such user" (nil, nil) from lookup
// failures.
func (s *AuthService) findUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ErrInternal("failed to look up user", err)
	}
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string) (*entity.DbUser, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, ErrInternal("failed to hash password", err)
	}

	user := &entity.DbUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleNormal,
		Status:       entity.StatusActive,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBadRequest(msgEmailTaken)
		}
		return nil, ErrInternal("failed to create user", err)
	}
	return user, nil
}

// issueCode generates a fresh 6-digit code, replaces any pending code for
// the email and dispatches it. A delivery failure fails the request; the
// stored code stays usable in case the mail actually went out.
func (s *AuthService) issueCode(ctx context.Context, email string, ttl time.Duration) error {
	code, err := generateCode()
	if err != nil {
		return ErrInternal("failed to generate verification code", err)
	}
	hash, err := auth.HashCode(code)
	if err != nil {
		return ErrInternal("failed to hash verification code", err)
	}

	record := &entity.DbVerificationCode{
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.repo.ReplaceCode(ctx, record); err != nil {
		return ErrInternal("failed to store verification code", err)
	}

	if err := s.mailer.SendCode(ctx, email, code); err != nil {
		return ErrInternal("failed to send verification code", err)
	}
	return nil
}

// checkCode validates a submitted code. An expired code is deleted before
// the error surfaces; a mismatched code is left in place so the user may
// retry until expiry.
func (s *AuthService) checkCode(ctx context.Context, email, code string) (*entity.DbVerificationCode, error) {
	record, err := s.repo.GetCodeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized(msgInvalidCode)
		}
		return nil, ErrInternal("failed to look up verification code", err)
	}

	if record.ExpiresAt.Before(time.Now()) {
		if err := s.repo.DeleteCode(ctx, record.ID); err != nil {
			return nil, ErrInternal("failed to discard expired code", err)
		}
		return nil, ErrUnauthorized(msgCodeExpired)
	}

	if err := auth.VerifyCode(record.CodeHash, code); err != nil {
		return nil, ErrUnauthorized(msgInvalidCode)
	}
	return record, nil
}

// generateCode draws a uniformly distributed 6-digit code. The range
// 100000-999999 guarantees six digits without padding.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
