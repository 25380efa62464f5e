package service

import (
	"errors"
	"testing"

	"github.com/vastrika/vastrika-api/internal/config"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) *UserAuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:userauthsvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.SecurityQuestion{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.SecurityQuestion{}).Error; err != nil {
		t.Fatalf("reset security question table failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("reset user table failed: %v", err)
	}

	cfg := &config.Config{
		UserJWT: config.JWTConfig{
			SecretKey:   "test-user-secret-key-0123456789abcdef",
			ExpireHours: 24,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db), repository.NewSecurityQuestionRepository(db), nil)
}

func registerTestUser(t *testing.T, svc *UserAuthService, email string) *models.User {
	t.Helper()
	user, token, _, err := svc.Register(RegisterInput{
		Email:            email,
		Password:         "Str0ngPass",
		Name:             "Meera",
		SecurityQuestion: "What is your mother's maiden name?",
		SecurityAnswer:   "  Iyer  ",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("register should return a token")
	}
	return user
}

func TestUserRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := setupUserAuthServiceTest(t)
	registerTestUser(t, svc, "meera@example.com")

	_, _, _, err := svc.Register(RegisterInput{
		Email:            "  MEERA@example.com ",
		Password:         "Str0ngPass",
		SecurityQuestion: "First pet?",
		SecurityAnswer:   "tommy",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate register want ErrEmailTaken got %v", err)
	}
}

func TestUserRegisterEnforcesPasswordPolicy(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	_, _, _, err := svc.Register(RegisterInput{
		Email:            "weak@example.com",
		Password:         "short",
		SecurityQuestion: "First pet?",
		SecurityAnswer:   "tommy",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password want ErrWeakPassword got %v", err)
	}
}

func TestUserRegisterRequiresSecurityQuestion(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	_, _, _, err := svc.Register(RegisterInput{
		Email:    "noq@example.com",
		Password: "Str0ngPass",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing question want ErrInvalidInput got %v", err)
	}
}

func TestUserLoginValidatesCredentials(t *testing.T) {
	svc := setupUserAuthServiceTest(t)
	registerTestUser(t, svc, "login@example.com")

	if _, _, _, err := svc.Login("login@example.com", "Str0ngPass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, _, _, err := svc.Login("login@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("missing@example.com", "Str0ngPass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestUserLogoutBumpsTokenVersion(t *testing.T) {
	svc := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "logout@example.com")

	before := user.TokenVersion
	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	reloaded, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.TokenVersion != before+1 {
		t.Fatalf("token version want %d got %d", before+1, reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatalf("token invalid before should be set after logout")
	}
}

func TestRecoveryFlowResetsPassword(t *testing.T) {
	svc := setupUserAuthServiceTest(t)
	registerTestUser(t, svc, "recovery@example.com")

	question, err := svc.GetRecoveryQuestion("recovery@example.com")
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}
	if question != "What is your mother's maiden name?" {
		t.Fatalf("unexpected question: %s", question)
	}

	// 答案按去空白、小写归一后比对
	if err := svc.VerifyRecoveryAnswer("recovery@example.com", "IYER"); err != nil {
		t.Fatalf("verify answer failed: %v", err)
	}
	if err := svc.VerifyRecoveryAnswer("recovery@example.com", "wrong"); !errors.Is(err, ErrSecurityAnswerMismatch) {
		t.Fatalf("wrong answer want ErrSecurityAnswerMismatch got %v", err)
	}

	if err := svc.ResetPasswordWithRecovery("recovery@example.com", "iyer", "N3wStrongPass"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, _, _, err := svc.Login("recovery@example.com", "Str0ngPass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, _, _, err := svc.Login("recovery@example.com", "N3wStrongPass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestRequestPasswordResetNeverRevealsAccount(t *testing.T) {
	svc := setupUserAuthServiceTest(t)
	registerTestUser(t, svc, "notify@example.com")

	if err := svc.RequestPasswordReset("notify@example.com"); err != nil {
		t.Fatalf("known email request failed: %v", err)
	}
	if err := svc.RequestPasswordReset("stranger@example.com"); err != nil {
		t.Fatalf("unknown email should still succeed, got %v", err)
	}
	if err := svc.RequestPasswordReset("not-an-email"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("malformed email want ErrInvalidInput got %v", err)
	}
}

func TestGetRecoveryQuestionUnknownEmail(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	if _, err := svc.GetRecoveryQuestion("nobody@example.com"); !errors.Is(err, ErrSecurityQuestionNotSet) {
		t.Fatalf("unknown email want ErrSecurityQuestionNotSet got %v", err)
	}
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	svc := setupUserAuthServiceTest(t)
	user := registerTestUser(t, svc, "change@example.com")

	if err := svc.ChangePassword(user.ID, "WrongOld1", "N3wStrongPass"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Str0ngPass", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak new password want ErrWeakPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Str0ngPass", "N3wStrongPass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login("change@example.com", "N3wStrongPass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
