package service

import (
	"context"
	"testing"
	"time"

	"nexoformar/internal/auth"
	"nexoformar/internal/config"
	"nexoformar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeRepo, *fakeMailer) {
	t.Helper()
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	tokens, err := auth.NewManager("test-secret", "test", time.Hour)
	require.NoError(t, err)
	svc := NewAuthService(repo, tokens, mailer, config.Config{
		RegisterCodeTTLMinutes: 15,
		RecoveryCodeTTLMinutes: 15,
	})
	return svc, repo, mailer
}

func TestRegisterDirectAndLogin(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.RegisterDirect(ctx, "Ana", "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Ana", session.Name)

	user, err := svc.ValidateUser(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleNormal, user.Role)
	assert.Equal(t, entity.StatusActive, user.Status)

	_, err = svc.RegisterDirect(ctx, "Ana", "ana@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestValidateUserUniformCredentialError(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterDirect(ctx, "Ana", "ana@example.com", "secret123")
	require.NoError(t, err)

	_, unknownErr := svc.ValidateUser(ctx, "nobody@example.com", "whatever1")
	require.Error(t, unknownErr)
	assert.Equal(t, KindUnauthorized, KindOf(unknownErr))

	_, wrongErr := svc.ValidateUser(ctx, "ana@example.com", "wrongpass")
	require.Error(t, wrongErr)
	assert.Equal(t, KindUnauthorized, KindOf(wrongErr))

	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestValidateUserInactiveAndBanned(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterDirect(ctx, "Ana", "ana@example.com", "secret123")
	require.NoError(t, err)

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)

	inactive := entity.StatusInactive
	require.NoError(t, repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Status: &inactive}))
	_, err = svc.ValidateUser(ctx, "ana@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Equal(t, "user is inactive", err.Error())

	banned := entity.StatusBanned
	require.NoError(t, repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Status: &banned}))
	_, err = svc.ValidateUser(ctx, "ana@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "user is permanently banned", err.Error())
}

func TestRequestRegistrationCodeAcknowledgment(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	ctx := context.Background()

	freeAck, err := svc.RequestRegistrationCode(ctx, "new@example.com")
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "new@example.com", mailer.sent[0].To)
	assert.Len(t, mailer.sent[0].Code, 6)

	_, err = repo.GetCodeByEmail(ctx, "new@example.com")
	require.NoError(t, err)

	_, err = svc.RegisterDirect(ctx, "Ana", "taken@example.com", "secret123")
	require.NoError(t, err)

	takenAck, err := svc.RequestRegistrationCode(ctx, "taken@example.com")
	require.NoError(t, err)

	// Taken address: same acknowledgment, but no mail and no stored code.
	assert.Equal(t, freeAck.Message, takenAck.Message)
	assert.Len(t, mailer.sent, 1)
	_, err = repo.GetCodeByEmail(ctx, "taken@example.com")
	require.Error(t, err)
}

func TestConfirmRegistrationFlow(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RequestRegistrationCode(ctx, "new@example.com")
	require.NoError(t, err)
	code := mailer.lastCode()
	require.Len(t, code, 6)

	session, err := svc.ConfirmRegistration(ctx, entity.ConfirmRegisterRequest{
		Name:     "Nora",
		Email:    "new@example.com",
		Password: "secret123",
		Code:     code,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Nora", session.Name)

	// The code is consumed on success.
	_, err = repo.GetCodeByEmail(ctx, "new@example.com")
	require.Error(t, err)

	_, err = svc.ValidateUser(ctx, "new@example.com", "secret123")
	require.NoError(t, err)

	// A second confirmation fails: the email is taken now.
	_, err = svc.ConfirmRegistration(ctx, entity.ConfirmRegisterRequest{
		Name:     "Nora",
		Email:    "new@example.com",
		Password: "secret123",
		Code:     code,
	})
	require.Error(t, err)
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestConfirmRegistrationWrongCodeKeepsRecord(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RequestRegistrationCode(ctx, "new@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if mailer.lastCode() == wrong {
		wrong = "000001"
	}

	_, err = svc.ConfirmRegistration(ctx, entity.ConfirmRegisterRequest{
		Name:     "Nora",
		Email:    "new@example.com",
		Password: "secret123",
		Code:     wrong,
	})
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	// The pending code survives a mismatch and still works.
	_, err = repo.GetCodeByEmail(ctx, "new@example.com")
	require.NoError(t, err)

	_, err = svc.ConfirmRegistration(ctx, entity.ConfirmRegisterRequest{
		Name:     "Nora",
		Email:    "new@example.com",
		Password: "secret123",
		Code:     mailer.lastCode(),
	})
	require.NoError(t, err)
}

func TestExpiredCodeIsDeleted(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	hash, err := auth.HashCode("123456")
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceCode(ctx, &entity.DbVerificationCode{
		Email:     "new@example.com",
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err = svc.ConfirmRegistration(ctx, entity.ConfirmRegisterRequest{
		Name:     "Nora",
		Email:    "new@example.com",
		Password: "secret123",
		Code:     "123456",
	})
	require.Error(t, err)
	assert.Equal(t, "code expired", err.Error())

	// The expired record is gone; the next attempt reads as a missing code.
	_, err = repo.GetCodeByEmail(ctx, "new@example.com")
	require.Error(t, err)

	_, err = svc.ConfirmRegistration(ctx, entity.ConfirmRegisterRequest{
		Name:     "Nora",
		Email:    "new@example.com",
		Password: "secret123",
		Code:     "123456",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid code", err.Error())
}

func TestPasswordRecoveryFlow(t *testing.T) {
	svc, repo, mailer := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterDirect(ctx, "Ana", "ana@example.com", "oldsecret")
	require.NoError(t, err)

	unknownAck, err := svc.RequestRecoveryCode(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)

	knownAck, err := svc.RequestRecoveryCode(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, unknownAck.Message, knownAck.Message)

	resp, err := svc.ResetPassword(ctx, "ana@example.com", mailer.lastCode(), "newsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)

	// The code is single-use.
	_, err = repo.GetCodeByEmail(ctx, "ana@example.com")
	require.Error(t, err)

	_, err = svc.ValidateUser(ctx, "ana@example.com", "oldsecret")
	require.Error(t, err)
	_, err = svc.ValidateUser(ctx, "ana@example.com", "newsecret")
	require.NoError(t, err)
}

func TestIssueCodeFailsWhenMailFails(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)
	mailer.err = assert.AnError
	ctx := context.Background()

	_, err := svc.RequestRegistrationCode(ctx, "new@example.com")
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
