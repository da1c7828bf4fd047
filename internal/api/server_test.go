package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	apidb "github.com/nao1215/ansacademy/internal/api/db"
	"github.com/nao1215/ansacademy/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestServer はテスト用のAPIサーバーをインメモリSQLiteで構築する。
// アップロード先は一時ディレクトリに差し替える。
func setupTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=ON")
	if err != nil {
		t.Fatalf("インメモリDBの作成に失敗: %v", err)
	}
	// インメモリDBは接続ごとに別のDBになるため、接続を1つに制限する
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	s, err := newServerWithDB("0", sqlDB)
	if err != nil {
		t.Fatalf("テスト用サーバーの構築に失敗: %v", err)
	}
	s.uploadDir = t.TempDir()

	return s, s.router
}

// createTestUser はテスト用にユーザーをDBに直接挿入し、IDと認証トークンを返す。
func createTestUser(t *testing.T, s *Server, email, username, role string) (string, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("テスト用パスワードのハッシュに失敗: %v", err)
	}

	userID := uuid.New().String()
	if err := s.queries.CreateUser(context.Background(), apidb.CreateUserParams{
		ID:           userID,
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
		Name:         "Test " + username,
		Role:         role,
		ExamPrep:     `["JEE"]`,
	}); err != nil {
		t.Fatalf("テスト用ユーザーの作成に失敗: %v", err)
	}

	token, err := middleware.GenerateToken(s.jwtSecret, userID)
	if err != nil {
		t.Fatalf("テスト用トークンの生成に失敗: %v", err)
	}

	return userID, token
}

// doRequest はテスト用のHTTPリクエストを実行し、レスポンスを返すヘルパー関数。
// tokenが空でない場合はAuthorization: Bearerヘッダーに設定する。
func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewReader(jsonBytes)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doRequestWithCookie はトークンをCookieに載せてリクエストを実行するヘルパー関数。
func doRequestWithCookie(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewReader(jsonBytes)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseJSON はレスポンスボディをmapにデコードするヘルパー関数。
func parseJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("JSONのデコードに失敗: %v, body=%s", err, w.Body.String())
	}
	return result
}
