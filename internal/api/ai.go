package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// aiConfidence はAI回答に付与する固定の確信度。
// モデル自体は較正された確信度を報告しないため、定数で返す。
const aiConfidence = 0.85

// aiUnavailableMessage はAIサービス障害時にクライアントへ返すメッセージ。
const aiUnavailableMessage = "AI service temporarily unavailable. Please try again later."

// aiAnswerRequest はAI回答リクエストのJSON構造。
type aiAnswerRequest struct {
	// Question は自由記述の質問文。
	Question string `json:"question" binding:"required"`
	// Subject は科目。
	Subject string `json:"subject" binding:"required"`
	// ExamType は対象試験の種別。
	ExamType string `json:"examType" binding:"required"`
	// Context は質問の補足情報。省略可能。
	Context string `json:"context"`
}

// ollamaOptions はOllamaのサンプリングパラメータ。すべて固定値で送信する。
type ollamaOptions struct {
	// Temperature はサンプリング温度。
	Temperature float64 `json:"temperature"`
	// TopP はnucleus samplingの閾値。
	TopP float64 `json:"top_p"`
	// MaxTokens は生成する最大トークン数。
	MaxTokens int `json:"max_tokens"`
	// Stop は生成停止シーケンス。
	Stop []string `json:"stop"`
}

// ollamaGenerateRequest はOllamaの/api/generateへのリクエスト構造。
type ollamaGenerateRequest struct {
	// Model は使用するモデル名。
	Model string `json:"model"`
	// Prompt は組み立て済みのプロンプト。
	Prompt string `json:"prompt"`
	// Stream はストリーミング応答の有無。常にfalse。
	Stream bool `json:"stream"`
	// Options はサンプリングパラメータ。
	Options ollamaOptions `json:"options"`
}

// ollamaGenerateResponse はOllamaの/api/generateからのレスポンス構造。
type ollamaGenerateResponse struct {
	// Response は生成されたテキスト。
	Response string `json:"response"`
}

// buildPrompt は試験対策チューターとしての指示を埋め込んだプロンプトを組み立てる。
func buildPrompt(req aiAnswerRequest) string {
	context := req.Context
	if context == "" {
		context = "General competitive exam preparation"
	}

	return fmt.Sprintf(`
As an expert tutor for competitive exams (specializing in %s for %s), provide a comprehensive answer to this question:

Question: %s
Context: %s

Please provide:
1. A clear, step-by-step solution
2. Key concepts and formulas involved
3. Common mistakes students make
4. Practice tips for similar problems
5. Related topics to study

Use proper mathematical notation with LaTeX where appropriate (enclosed in $ for inline math or $$ for display math).

Format your response clearly with proper explanations for each step.
`, req.Subject, req.ExamType, req.Question, context)
}

// handleAIAnswer はAIサービスへの回答プロキシを処理するハンドラを返す。
// 1リクエストにつき1回だけ試行し、通信失敗・非成功レスポンスは
// いずれも503の固定メッセージとして返す。リトライやバックオフは行わない。
func (s *Server) handleAIAnswer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req aiAnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
			return
		}

		generateReq := ollamaGenerateRequest{
			Model:  s.aiModel,
			Prompt: buildPrompt(req),
			Stream: false,
			Options: ollamaOptions{
				Temperature: 0.7,
				TopP:        0.9,
				MaxTokens:   2000,
				Stop:        []string{"Human:", "Assistant:"},
			},
		}

		var generateResp ollamaGenerateResponse
		if err := s.aiClient.PostJSON(c.Request.Context(), "/api/generate", generateReq, &generateResp); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": aiUnavailableMessage})
			log.Printf("AIサービスへのリクエストエラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"answer":     generateResp.Response,
			"confidence": aiConfidence,
			"model":      s.aiModel,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"isAI":       true,
		})
	}
}
