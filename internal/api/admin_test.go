package api

import (
	"net/http"
	"testing"
)

func TestHandleAdminStats(t *testing.T) {
	t.Parallel()

	t.Run("ADMINロールで統計情報を取得できること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		_, adminToken := createTestUser(t, s, "boss@example.com", "boss", "ADMIN")
		_, studentToken := createTestUser(t, s, "pupil@example.com", "pupil", "STUDENT")
		createTestQuestion(t, s, studentToken, "Stats Q", "Mathematics", "JEE")

		w := doRequest(router, http.MethodGet, "/api/admin/stats", adminToken, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコードが%dであること, got %d, body=%s", http.StatusOK, w.Code, w.Body.String())
		}
		resp := parseJSON(t, w)
		if resp["users"] != float64(2) {
			t.Errorf("ユーザー数が2であること, got %v", resp["users"])
		}
		if resp["questions"] != float64(1) {
			t.Errorf("質問数が1であること, got %v", resp["questions"])
		}
		if resp["answers"] != float64(0) {
			t.Errorf("回答数が0であること, got %v", resp["answers"])
		}
		if resp["sessions"] != float64(0) {
			t.Errorf("セッション数が0であること, got %v", resp["sessions"])
		}
	})

	t.Run("STUDENTロールの場合は拒否されること", func(t *testing.T) {
		t.Parallel()
		s, router := setupTestServer(t)
		_, token := createTestUser(t, s, "plain@example.com", "plain", "STUDENT")

		w := doRequest(router, http.MethodGet, "/api/admin/stats", token, nil)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコードが%dであること, got %d", http.StatusForbidden, w.Code)
		}
		resp := parseJSON(t, w)
		if resp["error"] != "Forbidden" {
			t.Errorf("errorメッセージが一致すること, got %v", resp["error"])
		}
	})

	t.Run("未認証の場合は認証エラーとなること", func(t *testing.T) {
		t.Parallel()
		_, router := setupTestServer(t)

		w := doRequest(router, http.MethodGet, "/api/admin/stats", "", nil)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコードが%dであること, got %d", http.StatusUnauthorized, w.Code)
		}
	})
}
