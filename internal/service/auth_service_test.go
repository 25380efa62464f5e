package service

import (
	"errors"
	"testing"

	"github.com/vastrika/vastrika-api/internal/config"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:authsvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Admin{}).Error; err != nil {
		t.Fatalf("reset admin table failed: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "test-admin-secret-key-0123456789abcdef",
			ExpireHours: 2,
		},
		Security: config.SecurityConfig{
			LoginRateLimit: config.LoginRateLimitConfig{
				WindowSeconds: 60,
				MaxAttempts:   2,
			},
		},
	}
	return NewAuthService(cfg, repository.NewAdminRepository(db)), db
}

func createTestAdmin(t *testing.T, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: username, PasswordHash: string(hash)}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestAdminLoginValidatesCredentials(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "owner", "Sup3rSecret")

	if _, _, _, err := svc.Login("owner", "Sup3rSecret", "1.1.1.1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, _, _, err := svc.Login("owner", "wrong", "1.1.1.1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
}

func TestAdminLoginRateLimitReturnsRetryAfter(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "gatekeeper", "Sup3rSecret")

	for i := 0; i < 2; i++ {
		if _, _, _, err := svc.Login("gatekeeper", "wrong", "2.2.2.2"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d want ErrInvalidCredentials got %v", i+1, err)
		}
	}

	_, _, _, err := svc.Login("gatekeeper", "Sup3rSecret", "2.2.2.2")
	if !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("over limit want ErrLoginRateLimited got %v", err)
	}
	var limited *RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("want RateLimitedError got %T", err)
	}
	seconds := limited.RetryAfterSeconds()
	if seconds < 1 || seconds > 60 {
		t.Fatalf("retry after want within (0, 60] got %d", seconds)
	}

	// 其他 IP 不受影响
	if _, _, _, err := svc.Login("gatekeeper", "Sup3rSecret", "3.3.3.3"); err != nil {
		t.Fatalf("other ip login failed: %v", err)
	}
}

func TestSanitizeCredential(t *testing.T) {
	cases := map[string]string{
		"  admin  ":               "admin",
		"<script>admin</script>":  "scriptadmin/script",
		"javascript:alert(1)":     "alert(1)",
		"JaVaScRiPt:jAvAsCrIpT:x": "x",
	}
	for input, want := range cases {
		if got := SanitizeCredential(input); got != want {
			t.Fatalf("sanitize %q want %q got %q", input, want, got)
		}
	}
}
