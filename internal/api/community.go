package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apidb "github.com/nao1215/ansacademy/internal/api/db"
)

// questionRewardPoints は質問投稿で付与されるポイント。
const questionRewardPoints = 10

// answerRewardPoints は回答投稿で付与されるポイント。
const answerRewardPoints = 15

// questionListLimit は質問一覧の最大取得件数。
const questionListLimit = 50

// authorResponse は質問・回答に含める投稿者のプロジェクション。
type authorResponse struct {
	// ID は投稿者の一意識別子。
	ID string `json:"id"`
	// Name は表示名。
	Name string `json:"name"`
	// Username はユーザー名。
	Username string `json:"username"`
	// AnsPoints はポイント残高。
	AnsPoints int64 `json:"ansPoints"`
	// Avatar はアバター画像のURL。
	Avatar string `json:"avatar"`
}

// questionCounts は質問に関連する集計値。
type questionCounts struct {
	// Answers は回答数。
	Answers int64 `json:"answers"`
	// Votes は投票数。
	Votes int64 `json:"votes"`
}

// questionResponse は質問のJSONレスポンス構造。
type questionResponse struct {
	// ID は質問の一意識別子。
	ID string `json:"id"`
	// Title は質問のタイトル。
	Title string `json:"title"`
	// Content は質問の本文。
	Content string `json:"content"`
	// Latex は数式のLaTeX表現。
	Latex string `json:"latex,omitempty"`
	// Subject は科目。
	Subject string `json:"subject"`
	// Exam は対象試験。
	Exam string `json:"exam"`
	// Difficulty は難易度。
	Difficulty string `json:"difficulty,omitempty"`
	// Tags はタグの一覧。
	Tags []string `json:"tags"`
	// Upvotes は賛成票の数。
	Upvotes int64 `json:"upvotes"`
	// CreatedAt は投稿日時。
	CreatedAt string `json:"createdAt"`
	// Author は投稿者のプロジェクション。
	Author authorResponse `json:"author"`
	// Count は回答数・投票数の集計。
	Count questionCounts `json:"_count"`
}

// answerResponse は回答のJSONレスポンス構造。
type answerResponse struct {
	// ID は回答の一意識別子。
	ID string `json:"id"`
	// QuestionID は回答先の質問のID。
	QuestionID string `json:"questionId"`
	// Content は回答の本文。
	Content string `json:"content"`
	// Latex は数式のLaTeX表現。
	Latex string `json:"latex,omitempty"`
	// Upvotes は賛成票の数。
	Upvotes int64 `json:"upvotes"`
	// CreatedAt は投稿日時。
	CreatedAt string `json:"createdAt"`
	// Author は投稿者のプロジェクション。
	Author authorResponse `json:"author"`
}

// parseTags はJSONとして保存されたタグ列をスライスに復元する。
func parseTags(raw string) []string {
	tags := []string{}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	return tags
}

// withTx は1つのトランザクション内でクエリを実行するヘルパー。
// fnがエラーを返した場合はロールバックする。
func (s *Server) withTx(ctx context.Context, fn func(q *apidb.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// handleListQuestions は質問一覧の取得を処理するハンドラを返す。
// subject/exam/searchによる絞り込みと、sortBy（recent/popular/unanswered）による
// 並び替えに対応する。認証は不要。
func (s *Server) handleListQuestions() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.Query("subject")
		if subject == "all" {
			subject = ""
		}
		exam := c.Query("exam")
		if exam == "all" {
			exam = ""
		}
		search := c.Query("search")

		// 3つの並び順はそれぞれ専用クエリを使用するが、行の形は同一。
		var (
			rows []apidb.ListQuestionsRecentRow
			err  error
		)
		switch c.Query("sortBy") {
		case "popular":
			var popular []apidb.ListQuestionsPopularRow
			popular, err = s.queries.ListQuestionsPopular(c.Request.Context(), apidb.ListQuestionsPopularParams{
				Subject: subject, Exam: exam, Search: search, Limit: questionListLimit,
			})
			for _, r := range popular {
				rows = append(rows, apidb.ListQuestionsRecentRow(r))
			}
		case "unanswered":
			var unanswered []apidb.ListQuestionsUnansweredRow
			unanswered, err = s.queries.ListQuestionsUnanswered(c.Request.Context(), apidb.ListQuestionsUnansweredParams{
				Subject: subject, Exam: exam, Search: search, Limit: questionListLimit,
			})
			for _, r := range unanswered {
				rows = append(rows, apidb.ListQuestionsRecentRow(r))
			}
		default:
			rows, err = s.queries.ListQuestionsRecent(c.Request.Context(), apidb.ListQuestionsRecentParams{
				Subject: subject, Exam: exam, Search: search, Limit: questionListLimit,
			})
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
			log.Printf("質問一覧の取得エラー: %v", err)
			return
		}

		questions := make([]questionResponse, 0, len(rows))
		for _, r := range rows {
			questions = append(questions, questionResponse{
				ID:         r.ID,
				Title:      r.Title,
				Content:    r.Content,
				Latex:      r.Latex,
				Subject:    r.Subject,
				Exam:       r.Exam,
				Difficulty: r.Difficulty,
				Tags:       parseTags(r.Tags),
				Upvotes:    r.Upvotes,
				CreatedAt:  r.CreatedAt.Format(time.RFC3339),
				Author: authorResponse{
					ID:        r.AuthorID,
					Name:      r.AuthorName,
					Username:  r.AuthorUsername,
					AnsPoints: r.AuthorAnsPoints,
					Avatar:    r.AuthorAvatar,
				},
				Count: questionCounts{
					Answers: r.AnswerCount,
					Votes:   r.Upvotes,
				},
			})
		}

		c.JSON(http.StatusOK, gin.H{"questions": questions})
	}
}

// createQuestionRequest は質問投稿リクエストのJSON構造。
type createQuestionRequest struct {
	// Title は質問のタイトル。
	Title string `json:"title" binding:"required"`
	// Content は質問の本文。
	Content string `json:"content" binding:"required"`
	// Latex は数式のLaTeX表現。
	Latex string `json:"latex"`
	// Subject は科目。
	Subject string `json:"subject" binding:"required"`
	// Exam は対象試験。
	Exam string `json:"exam" binding:"required"`
	// Difficulty は難易度。
	Difficulty string `json:"difficulty"`
	// Tags はタグの一覧。
	Tags []string `json:"tags"`
}

// handleCreateQuestion は質問投稿を処理するハンドラを返す。
// 質問の作成と投稿者へのポイント付与（+10）を1つのトランザクションで行う。
func (s *Server) handleCreateQuestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req createQuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
			return
		}

		if req.Tags == nil {
			req.Tags = []string{}
		}
		tags, err := json.Marshal(req.Tags)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags"})
			return
		}

		questionID := uuid.New().String()
		err = s.withTx(c.Request.Context(), func(q *apidb.Queries) error {
			if err := q.CreateQuestion(c.Request.Context(), apidb.CreateQuestionParams{
				ID:         questionID,
				Title:      req.Title,
				Content:    req.Content,
				Latex:      req.Latex,
				Subject:    req.Subject,
				Exam:       req.Exam,
				Difficulty: req.Difficulty,
				Tags:       string(tags),
				AuthorID:   user.ID,
			}); err != nil {
				return err
			}
			return q.AddUserPoints(c.Request.Context(), apidb.AddUserPointsParams{
				Points: questionRewardPoints,
				ID:     user.ID,
			})
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
			log.Printf("質問作成エラー: %v", err)
			return
		}

		created, err := s.queries.GetQuestionByID(c.Request.Context(), questionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
			log.Printf("作成した質問の取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"question": questionResponse{
			ID:         created.ID,
			Title:      created.Title,
			Content:    created.Content,
			Latex:      created.Latex,
			Subject:    created.Subject,
			Exam:       created.Exam,
			Difficulty: created.Difficulty,
			Tags:       parseTags(created.Tags),
			Upvotes:    created.Upvotes,
			CreatedAt:  created.CreatedAt.Format(time.RFC3339),
			Author: authorResponse{
				ID:        user.ID,
				Name:      user.Name,
				Username:  user.Username,
				AnsPoints: user.AnsPoints + questionRewardPoints,
				Avatar:    user.Avatar,
			},
		}})
	}
}

// handleGetQuestion は質問詳細の取得を処理するハンドラを返す。
// 投稿者のプロジェクションと回答の一覧を含めて返す。認証は不要。
func (s *Server) handleGetQuestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		questionID := c.Param("id")

		question, err := s.queries.GetQuestionByID(c.Request.Context(), questionID)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
			log.Printf("質問取得エラー: %v", err)
			return
		}

		author, err := s.queries.GetUserByID(c.Request.Context(), question.AuthorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
			log.Printf("質問投稿者の取得エラー: %v", err)
			return
		}

		answerRows, err := s.queries.ListAnswersByQuestionID(c.Request.Context(), questionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
			log.Printf("回答一覧の取得エラー: %v", err)
			return
		}

		answers := make([]answerResponse, 0, len(answerRows))
		for _, a := range answerRows {
			answers = append(answers, answerResponse{
				ID:         a.ID,
				QuestionID: a.QuestionID,
				Content:    a.Content,
				Latex:      a.Latex,
				Upvotes:    a.Upvotes,
				CreatedAt:  a.CreatedAt.Format(time.RFC3339),
				Author: authorResponse{
					ID:        a.AuthorID,
					Name:      a.AuthorName,
					Username:  a.AuthorUsername,
					AnsPoints: a.AuthorAnsPoints,
					Avatar:    a.AuthorAvatar,
				},
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"question": questionResponse{
				ID:         question.ID,
				Title:      question.Title,
				Content:    question.Content,
				Latex:      question.Latex,
				Subject:    question.Subject,
				Exam:       question.Exam,
				Difficulty: question.Difficulty,
				Tags:       parseTags(question.Tags),
				Upvotes:    question.Upvotes,
				CreatedAt:  question.CreatedAt.Format(time.RFC3339),
				Author: authorResponse{
					ID:        author.ID,
					Name:      author.Name,
					Username:  author.Username,
					AnsPoints: author.AnsPoints,
					Avatar:    author.Avatar,
				},
				Count: questionCounts{
					Answers: int64(len(answerRows)),
					Votes:   question.Upvotes,
				},
			},
			"answers": answers,
		})
	}
}

// createAnswerRequest は回答投稿リクエストのJSON構造。
type createAnswerRequest struct {
	// Content は回答の本文。
	Content string `json:"content" binding:"required"`
	// Latex は数式のLaTeX表現。
	Latex string `json:"latex"`
}

// handleCreateAnswer は回答投稿を処理するハンドラを返す。
// 回答の作成と投稿者へのポイント付与（+15）を1つのトランザクションで行う。
func (s *Server) handleCreateAnswer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		questionID := c.Param("id")

		if _, err := s.queries.GetQuestionByID(c.Request.Context(), questionID); err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
			log.Printf("質問取得エラー: %v", err)
			return
		}

		var req createAnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
			return
		}

		answerID := uuid.New().String()
		err := s.withTx(c.Request.Context(), func(q *apidb.Queries) error {
			if err := q.CreateAnswer(c.Request.Context(), apidb.CreateAnswerParams{
				ID:         answerID,
				QuestionID: questionID,
				Content:    req.Content,
				Latex:      req.Latex,
				AuthorID:   user.ID,
			}); err != nil {
				return err
			}
			return q.AddUserPoints(c.Request.Context(), apidb.AddUserPointsParams{
				Points: answerRewardPoints,
				ID:     user.ID,
			})
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
			log.Printf("回答作成エラー: %v", err)
			return
		}

		created, err := s.queries.GetAnswerByID(c.Request.Context(), answerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
			log.Printf("作成した回答の取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"answer": answerResponse{
			ID:         created.ID,
			QuestionID: created.QuestionID,
			Content:    created.Content,
			Latex:      created.Latex,
			Upvotes:    created.Upvotes,
			CreatedAt:  created.CreatedAt.Format(time.RFC3339),
			Author: authorResponse{
				ID:        user.ID,
				Name:      user.Name,
				Username:  user.Username,
				AnsPoints: user.AnsPoints + answerRewardPoints,
				Avatar:    user.Avatar,
			},
		}})
	}
}
