package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/inaciog/seminars-app-sub000/config"
	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/pkg/jwt"
)

func setupTestAuthService(t *testing.T) (AuthService, *testRepos, *jwt.Manager) {
	t.Helper()

	repos := newTestRepos()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTL = 12 * time.Hour
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos, jwtMgr
}

func seedUser(t *testing.T, repos *testRepos, email, password, role string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	repos.user.users["user-1"] = &model.User{
		UserID: "user-1", Name: "协调人", Email: email, PasswordHash: string(hash), Role: role,
	}
}

func TestLogin(t *testing.T) {
	svc, repos, jwtMgr := setupTestAuthService(t)
	seedUser(t, repos, "coord@example.edu", "secret123", model.RoleCoordinator)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "coord@example.edu",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if result.ExpiresIn != int((12 * time.Hour).Seconds()) {
		t.Errorf("有效期不对: %d", result.ExpiresIn)
	}
	if result.User.Email != "coord@example.edu" {
		t.Errorf("用户信息不对: %+v", result.User)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("签发的 Token 应可解析: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != model.RoleCoordinator {
		t.Errorf("Token 载荷不对: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, repos, _ := setupTestAuthService(t)
	seedUser(t, repos, "coord@example.edu", "secret123", model.RoleCoordinator)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "coord@example.edu", Password: "wrong",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误应返回 ErrInvalidCredentials，得到 %v", err)
	}

	// 未注册邮箱与密码错误返回同一错误，不泄露账号是否存在
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.edu", Password: "secret123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱应返回 ErrInvalidCredentials，得到 %v", err)
	}
}

func TestLogoutWithoutRedis(t *testing.T) {
	svc, _, jwtMgr := setupTestAuthService(t)

	token, err := jwtMgr.GenerateAccessToken("user-1", model.RoleCoordinator)
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	claims, err := jwtMgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}

	// Redis 不可用时登出降级为无操作
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("无 Redis 时登出应成功: %v", err)
	}
}
