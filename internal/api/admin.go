package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleAdminStats は管理画面向けの統計情報取得を処理するハンドラを返す。
// ADMINロールを持つユーザーのみアクセスできる。
func (s *Server) handleAdminStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		users, err := s.queries.CountUsers(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			log.Printf("ユーザー数の取得エラー: %v", err)
			return
		}

		questions, err := s.queries.CountQuestions(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			log.Printf("質問数の取得エラー: %v", err)
			return
		}

		answers, err := s.queries.CountAnswers(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			log.Printf("回答数の取得エラー: %v", err)
			return
		}

		sessions, err := s.queries.CountSessions(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			log.Printf("セッション数の取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":     users,
			"questions": questions,
			"answers":   answers,
			"sessions":  sessions,
		})
	}
}
