package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nao1215/ansacademy/pkg/httpclient"
)

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	t.Run("全サービスが正常な場合はhealthyを返すこと", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)

		mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/version" {
				t.Errorf("リクエストパスが/api/versionであること, got %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(mock.Close)
		s.aiClient = httpclient.New(mock.URL)

		w := doRequest(router, http.MethodGet, "/api/health", "", nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコードが%dであること, got %d", http.StatusOK, w.Code)
		}
		resp := parseJSON(t, w)
		if resp["status"] != "healthy" {
			t.Errorf("statusがhealthyであること, got %v", resp["status"])
		}
		services := resp["services"].(map[string]any)
		if services["database"] != "healthy" {
			t.Errorf("services.databaseがhealthyであること, got %v", services["database"])
		}
		if services["ai"] != "healthy" {
			t.Errorf("services.aiがhealthyであること, got %v", services["ai"])
		}
	})

	t.Run("AIサービスが停止していてもステータスはhealthyのままであること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)

		mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		mock.Close()
		s.aiClient = httpclient.New(mock.URL)

		w := doRequest(router, http.MethodGet, "/api/health", "", nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコードが%dであること, got %d", http.StatusOK, w.Code)
		}
		resp := parseJSON(t, w)
		if resp["status"] != "healthy" {
			t.Errorf("statusがhealthyであること, got %v", resp["status"])
		}
		services := resp["services"].(map[string]any)
		if services["ai"] != "unhealthy" {
			t.Errorf("services.aiがunhealthyであること, got %v", services["ai"])
		}
	})

	t.Run("データベースに到達できない場合は503を返すこと", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)

		// DB接続を閉じて障害を再現する
		if err := s.db.Close(); err != nil {
			t.Fatalf("DB接続のクローズに失敗: %v", err)
		}

		w := doRequest(router, http.MethodGet, "/api/health", "", nil)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("ステータスコードが%dであること, got %d", http.StatusServiceUnavailable, w.Code)
		}
		resp := parseJSON(t, w)
		if resp["status"] != "unhealthy" {
			t.Errorf("statusがunhealthyであること, got %v", resp["status"])
		}
		if resp["error"] != "Database connection failed" {
			t.Errorf("errorメッセージが一致すること, got %v", resp["error"])
		}
	})
}
