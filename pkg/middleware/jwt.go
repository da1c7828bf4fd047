package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims はJWTトークンのクレーム（ペイロード）を表す。
// サーバー側にセッション状態を持たないため、埋め込むのはユーザーIDのみ。
type TokenClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"user_id"`
}

// TokenExpiry はトークンの有効期間。発行から7日間で失効する。
// リフレッシュや失効リストは持たないため、漏洩したトークンは自然失効まで有効。
const TokenExpiry = 7 * 24 * time.Hour

// tokenCookieName は認証トークンを保持するCookie名。
const tokenCookieName = "token"

// ErrNoToken はリクエストに認証トークンが含まれていないことを表す。
var ErrNoToken = errors.New("認証トークンがリクエストに含まれていない")

// GenerateToken はユーザーIDを埋め込んだJWTトークンを生成する。
// signup/login成功時に呼び出され、Cookieとレスポンスボディの両方で返される。
func GenerateToken(secret, userID string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "ansacademy-api",
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// ParseToken はJWTトークンを検証してクレームを返す。
// 署名不正・期限切れ・不正な形式のいずれもエラーとして返し、パニックしない。
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("トークンの検証に失敗: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("トークンが無効")
	}
	return claims, nil
}

// ExtractToken はリクエストから認証トークン候補を取り出す。
// "token" Cookieを優先し、なければAuthorization: Bearerヘッダーを参照する。
func ExtractToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(tokenCookieName); err == nil && cookie != "" {
		return cookie, nil
	}

	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if tokenString, found := strings.CutPrefix(authHeader, "Bearer "); found && tokenString != "" {
			return tokenString, nil
		}
	}

	return "", ErrNoToken
}
