package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSecret はテスト用のJWTシークレット。
const testSecret = "test-secret-key-for-unit-tests"

// TestGenerateToken はGenerateToken関数を検証する。
func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("正常にJWTトークンを生成できること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateToken(testSecret, "user-123")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}
		if tokenStr == "" {
			t.Fatal("GenerateToken()が空文字列を返した")
		}

		claims, err := ParseToken(testSecret, tokenStr)
		if err != nil {
			t.Fatalf("トークンのパースに失敗: %v", err)
		}
		if claims.UserID != "user-123" {
			t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
		}
		if claims.Issuer != "ansacademy-api" {
			t.Errorf("Issuer = %q, want %q", claims.Issuer, "ansacademy-api")
		}
	})

	t.Run("トークンの有効期限が7日後であること", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		tokenStr, err := GenerateToken(testSecret, "user-exp")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}

		claims, err := ParseToken(testSecret, tokenStr)
		if err != nil {
			t.Fatalf("トークンのパースに失敗: %v", err)
		}

		expectedExpiry := before.Add(TokenExpiry)
		// 有効期限が7日後の前後1分以内であること
		if claims.ExpiresAt.Time.Before(expectedExpiry.Add(-1 * time.Minute)) {
			t.Errorf("ExpiresAt = %v, 期待する最小値: %v", claims.ExpiresAt.Time, expectedExpiry.Add(-1*time.Minute))
		}
		if claims.ExpiresAt.Time.After(expectedExpiry.Add(1 * time.Minute)) {
			t.Errorf("ExpiresAt = %v, 期待する最大値: %v", claims.ExpiresAt.Time, expectedExpiry.Add(1*time.Minute))
		}
	})
}

// TestParseToken はParseToken関数の異常系を検証する。
func TestParseToken(t *testing.T) {
	t.Parallel()

	t.Run("期限切れのトークンはエラーになること", func(t *testing.T) {
		t.Parallel()

		claims := TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
				Issuer:    "ansacademy-api",
			},
			UserID: "user-expired",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("テスト用トークンの署名に失敗: %v", err)
		}

		if _, err := ParseToken(testSecret, signed); err == nil {
			t.Error("期限切れのトークンでエラーが発生しなかった")
		}
	})

	t.Run("別のシークレットで署名されたトークンはエラーになること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateToken("another-secret", "user-123")
		if err != nil {
			t.Fatalf("GenerateToken()でエラーが発生: %v", err)
		}

		if _, err := ParseToken(testSecret, tokenStr); err == nil {
			t.Error("署名不正のトークンでエラーが発生しなかった")
		}
	})

	t.Run("不正な形式のトークンはエラーになること", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseToken(testSecret, "not-a-jwt-token"); err == nil {
			t.Error("不正な形式のトークンでエラーが発生しなかった")
		}
	})
}

// TestExtractToken はExtractToken関数を検証する。
func TestExtractToken(t *testing.T) {
	t.Parallel()

	newContext := func(t *testing.T) (*gin.Context, *http.Request) {
		t.Helper()
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request = req
		return c, req
	}

	t.Run("Cookieからトークンを取得できること", func(t *testing.T) {
		t.Parallel()

		c, req := newContext(t)
		req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})

		got, err := ExtractToken(c)
		if err != nil {
			t.Fatalf("ExtractToken()でエラーが発生: %v", err)
		}
		if got != "cookie-token" {
			t.Errorf("token = %q, want %q", got, "cookie-token")
		}
	})

	t.Run("Authorizationヘッダーからトークンを取得できること", func(t *testing.T) {
		t.Parallel()

		c, req := newContext(t)
		req.Header.Set("Authorization", "Bearer header-token")

		got, err := ExtractToken(c)
		if err != nil {
			t.Fatalf("ExtractToken()でエラーが発生: %v", err)
		}
		if got != "header-token" {
			t.Errorf("token = %q, want %q", got, "header-token")
		}
	})

	t.Run("CookieとヘッダーがあるときはCookieを優先すること", func(t *testing.T) {
		t.Parallel()

		c, req := newContext(t)
		req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
		req.Header.Set("Authorization", "Bearer header-token")

		got, err := ExtractToken(c)
		if err != nil {
			t.Fatalf("ExtractToken()でエラーが発生: %v", err)
		}
		if got != "cookie-token" {
			t.Errorf("token = %q, want %q", got, "cookie-token")
		}
	})

	t.Run("トークンがない場合はErrNoTokenを返すこと", func(t *testing.T) {
		t.Parallel()

		c, _ := newContext(t)

		if _, err := ExtractToken(c); err != ErrNoToken {
			t.Errorf("err = %v, want %v", err, ErrNoToken)
		}
	})

	t.Run("Bearerプレフィックスがないヘッダーは無視すること", func(t *testing.T) {
		t.Parallel()

		c, req := newContext(t)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		if _, err := ExtractToken(c); err != ErrNoToken {
			t.Errorf("err = %v, want %v", err, ErrNoToken)
		}
	})
}
