package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apidb "github.com/nao1215/ansacademy/internal/api/db"
)

// sessionUserResponse はセッションに含める参加者のプロジェクション。
type sessionUserResponse struct {
	// ID は参加者の一意識別子。
	ID string `json:"id"`
	// Name は表示名。
	Name string `json:"name"`
	// Email はメールアドレス。予約直後のレスポンスにのみ含める。
	Email string `json:"email,omitempty"`
	// Avatar はアバター画像のURL。一覧レスポンスにのみ含める。
	Avatar string `json:"avatar,omitempty"`
}

// sessionResponse は個別指導セッションのJSONレスポンス構造。
type sessionResponse struct {
	// ID はセッションの一意識別子。
	ID string `json:"id"`
	// Title はセッションのタイトル（"科目 - トピック"形式）。
	Title string `json:"title"`
	// Description はセッションの説明。
	Description string `json:"description"`
	// Subject は科目。
	Subject string `json:"subject"`
	// Datetime は開始日時。
	Datetime string `json:"datetime"`
	// Duration はセッション時間（分）。
	Duration int64 `json:"duration"`
	// Status はセッションの状態（REQUESTED等）。
	Status string `json:"status"`
	// Student は受講者のプロジェクション。
	Student sessionUserResponse `json:"student"`
	// Expert は講師のプロジェクション。
	Expert sessionUserResponse `json:"expert"`
}

// bookSessionRequest はセッション予約リクエストのJSON構造。
type bookSessionRequest struct {
	// ExpertID は講師のユーザーID。
	ExpertID string `json:"expertId" binding:"required"`
	// Subject は科目。
	Subject string `json:"subject" binding:"required"`
	// Topic はセッションのトピック。
	Topic string `json:"topic" binding:"required"`
	// Description はセッションの説明。
	Description string `json:"description"`
	// Date は開始日（YYYY-MM-DD形式）。
	Date string `json:"date" binding:"required"`
	// Time は開始時刻（HH:MM形式）。
	Time string `json:"time" binding:"required"`
	// Duration はセッション時間（分、文字列）。
	Duration string `json:"duration" binding:"required"`
	// Type はセッションの種別。現在は保存しない。
	Type string `json:"type"`
}

// handleBookSession はセッション予約を処理するハンドラを返す。
// 講師の存在確認を行い、REQUESTED状態のセッションを作成する。
func (s *Server) handleBookSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req bookSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
			return
		}

		datetime, err := time.Parse("2006-01-02T15:04", req.Date+"T"+req.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time"})
			return
		}

		duration, err := strconv.ParseInt(req.Duration, 10, 64)
		if err != nil || duration <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration"})
			return
		}

		expert, err := s.queries.GetUserByID(c.Request.Context(), req.ExpertID)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expert not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book session"})
			log.Printf("講師の取得エラー: %v", err)
			return
		}

		sessionID := uuid.New().String()
		if err := s.queries.CreateSession(c.Request.Context(), apidb.CreateSessionParams{
			ID:          sessionID,
			Title:       fmt.Sprintf("%s - %s", req.Subject, req.Topic),
			Description: req.Description,
			Subject:     req.Subject,
			Datetime:    datetime,
			Duration:    duration,
			StudentID:   user.ID,
			ExpertID:    expert.ID,
			Status:      "REQUESTED",
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book session"})
			log.Printf("セッション作成エラー: %v", err)
			return
		}

		created, err := s.queries.GetSessionByID(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book session"})
			log.Printf("作成したセッションの取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Session booked successfully",
			"session": sessionResponse{
				ID:          created.ID,
				Title:       created.Title,
				Description: created.Description,
				Subject:     created.Subject,
				Datetime:    created.Datetime.Format(time.RFC3339),
				Duration:    created.Duration,
				Status:      created.Status,
				Student: sessionUserResponse{
					ID:    user.ID,
					Name:  user.Name,
					Email: user.Email,
				},
				Expert: sessionUserResponse{
					ID:    expert.ID,
					Name:  expert.Name,
					Email: expert.Email,
				},
			},
		})
	}
}

// handleListSessions は認証済みユーザーのセッション一覧取得を処理するハンドラを返す。
// ユーザーが受講者または講師であるセッションを開始日時の昇順で返す。
func (s *Server) handleListSessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		rows, err := s.queries.ListSessionsByUserID(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
			log.Printf("セッション一覧の取得エラー: %v", err)
			return
		}

		sessions := make([]sessionResponse, 0, len(rows))
		for _, r := range rows {
			sessions = append(sessions, sessionResponse{
				ID:          r.ID,
				Title:       r.Title,
				Description: r.Description,
				Subject:     r.Subject,
				Datetime:    r.Datetime.Format(time.RFC3339),
				Duration:    r.Duration,
				Status:      r.Status,
				Student: sessionUserResponse{
					ID:     r.StudentID,
					Name:   r.StudentName,
					Avatar: r.StudentAvatar,
				},
				Expert: sessionUserResponse{
					ID:     r.ExpertID,
					Name:   r.ExpertName,
					Avatar: r.ExpertAvatar,
				},
			})
		}

		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}
