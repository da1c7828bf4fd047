package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// aiProbeTimeout はヘルスチェック時のAIサービス死活確認のタイムアウト。
const aiProbeTimeout = 3 * time.Second

// handleHealth はヘルスチェックを処理するハンドラを返す。
// データベースへのSELECT 1とAIサービスの死活確認を行う。
// データベースに到達できない場合のみ503を返し、AIサービスの障害は
// ステータスには影響させずservices.aiで報告する。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		timestamp := time.Now().UTC().Format(time.RFC3339)

		var one int
		if err := s.db.QueryRowContext(c.Request.Context(), "SELECT 1").Scan(&one); err != nil {
			log.Printf("ヘルスチェック: データベース接続エラー: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": timestamp,
				"error":     "Database connection failed",
			})
			return
		}

		probeCtx, cancel := context.WithTimeout(c.Request.Context(), aiProbeTimeout)
		defer cancel()

		aiStatus := "unhealthy"
		if s.aiClient.Ping(probeCtx, "/api/version") {
			aiStatus = "healthy"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": timestamp,
			"services": gin.H{
				"database": "healthy",
				"ai":       aiStatus,
			},
		})
	}
}
