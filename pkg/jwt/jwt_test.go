package jwt

import (
	"testing"
	"time"

	"traincenter/backend/config"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
}

func TestManager_GenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "admin")
	if err != nil {
		t.Fatalf("生成 Access Token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("期望 user_id=user-1，实际=%s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 role=admin，实际=%s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 token_type=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("jti 不应为空")
	}
}

func TestManager_GenerateRefreshToken(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)

	token, err := m.GenerateRefreshToken("user-1", "coordinator")
	if err != nil {
		t.Fatalf("生成 Refresh Token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 token_type=refresh，实际=%s", claims.TokenType)
	}
}

func TestManager_ParseToken_Expired(t *testing.T) {
	m := newTestManager(-time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "viewer")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_ParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager(15*time.Minute, 24*time.Hour)
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-16-chars-x",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := m1.GenerateAccessToken("user-1", "admin")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := m2.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestManager_ParseToken_Garbage(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)

	if _, err := m.ParseToken("not-a-token"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
