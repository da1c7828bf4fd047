package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apidb "github.com/nao1215/ansacademy/internal/api/db"
	"github.com/nao1215/ansacademy/pkg/middleware"
)

// contextKeyUser はGinコンテキストに認証済みユーザーを格納するキー。
const contextKeyUser = "current_user"

// userResponse はクライアントに返すユーザーの限定的なプロジェクション。
// パスワードハッシュは決して含めない。
type userResponse struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Username はユーザー名。
	Username string `json:"username"`
	// Name は表示名。
	Name string `json:"name"`
	// Role はユーザーの役割（STUDENT / EXPERT / ADMIN）。
	Role string `json:"role"`
	// AnsPoints はコミュニティ活動で獲得したポイント残高。
	AnsPoints int64 `json:"ansPoints"`
	// ExamPrep は対策中の試験タグの一覧。
	ExamPrep []string `json:"examPrep"`
	// Avatar はアバター画像のURL。
	Avatar string `json:"avatar"`
	// CreatedAt は登録日時。
	CreatedAt string `json:"createdAt"`
}

// toUserResponse はDB行をクライアント向けのプロジェクションに変換する。
func toUserResponse(u apidb.User) userResponse {
	examPrep := []string{}
	if err := json.Unmarshal([]byte(u.ExamPrep), &examPrep); err != nil {
		examPrep = []string{}
	}
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		AnsPoints: u.AnsPoints,
		ExamPrep:  examPrep,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// verifyRequest はリクエストの認証トークンを検証し、対応するユーザーを返す。
// トークンの欠如・署名不正・期限切れ・ユーザーの不存在はすべて「未認証」として
// falseを返し、エラーとして呼び出し元に伝播させない。
func (s *Server) verifyRequest(c *gin.Context) (apidb.User, bool) {
	tokenString, err := middleware.ExtractToken(c)
	if err != nil {
		return apidb.User{}, false
	}

	claims, err := middleware.ParseToken(s.jwtSecret, tokenString)
	if err != nil {
		return apidb.User{}, false
	}

	user, err := s.queries.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("認証ユーザーの取得エラー: %v", err)
		}
		return apidb.User{}, false
	}

	return user, true
}

// authRequired は認証を必須にするGinミドルウェアを返す。
// rolesを指定した場合、認証済みユーザーの役割がそのいずれかであることも要求する。
// 検証に成功するとコンテキストにユーザーを設定する。
func (s *Server) authRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.verifyRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// currentUser はauthRequiredミドルウェアが設定したユーザーを取得する。
func currentUser(c *gin.Context) apidb.User {
	user, _ := c.Get(contextKeyUser)
	if u, ok := user.(apidb.User); ok {
		return u
	}
	return apidb.User{}
}

// setAuthCookie は認証トークンをHttpOnly Cookieとして設定する。
// SameSite=Strict、有効期間7日、本番環境ではSecure属性を付与する。
func (s *Server) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, int(middleware.TokenExpiry.Seconds()), "/", "", s.secureCookie, true)
}

// signupRequest はユーザー登録リクエストのJSON構造。
type signupRequest struct {
	// Email はメールアドレス。
	Email string `json:"email" binding:"required,email"`
	// Username はユーザー名。
	Username string `json:"username" binding:"required"`
	// Password は平文パスワード。8文字以上を要求する。
	Password string `json:"password" binding:"required,min=8"`
	// Name は表示名。
	Name string `json:"name"`
	// ExamPrep は対策中の試験タグの一覧。
	ExamPrep []string `json:"examPrep"`
}

// handleSignup はユーザー登録を処理するハンドラを返す。
// メールアドレスまたはユーザー名が既に使われている場合は400を返す。
// 成功時はトークンを発行し、Cookieとレスポンスボディの両方で返す。
func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
			return
		}

		// メールアドレスとユーザー名の重複チェック
		_, err := s.queries.GetUserByEmailOrUsername(c.Request.Context(), apidb.GetUserByEmailOrUsernameParams{
			Email:    req.Email,
			Username: req.Username,
		})
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		if err != sql.ErrNoRows {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			log.Printf("ユーザー重複チェックエラー: %v", err)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			log.Printf("パスワードのハッシュエラー: %v", err)
			return
		}

		if req.ExamPrep == nil {
			req.ExamPrep = []string{}
		}
		examPrep, err := json.Marshal(req.ExamPrep)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid examPrep"})
			return
		}

		userID := uuid.New().String()
		if err := s.queries.CreateUser(c.Request.Context(), apidb.CreateUserParams{
			ID:           userID,
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: string(hashed),
			Name:         req.Name,
			Role:         "STUDENT",
			ExamPrep:     string(examPrep),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			log.Printf("ユーザー作成エラー: %v", err)
			return
		}

		user, err := s.queries.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			log.Printf("作成したユーザーの取得エラー: %v", err)
			return
		}

		token, err := middleware.GenerateToken(s.jwtSecret, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			log.Printf("JWT生成エラー: %v", err)
			return
		}

		s.setAuthCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"message": "User created successfully",
			"user":    toUserResponse(user),
			"token":   token,
		})
	}
}

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Email はメールアドレス。
	Email string `json:"email" binding:"required"`
	// Password は平文パスワード。
	Password string `json:"password" binding:"required"`
}

// handleLogin はログインを処理するハンドラを返す。
// メールアドレスの不存在とパスワード不一致は区別せず、同じ401を返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
			return
		}

		user, err := s.queries.GetUserByEmail(c.Request.Context(), req.Email)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
			log.Printf("ログインユーザーの取得エラー: %v", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := middleware.GenerateToken(s.jwtSecret, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
			log.Printf("JWT生成エラー: %v", err)
			return
		}

		s.setAuthCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    toUserResponse(user),
			"token":   token,
		})
	}
}

// handleLogout はログアウトを処理するハンドラを返す。
// サーバー側にセッション状態はないため、Cookieの削除のみを行う。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("token", "", -1, "/", "", s.secureCookie, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// handleMe は認証済みユーザー自身の情報を返すハンドラを返す。
func (s *Server) handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": toUserResponse(currentUser(c))})
	}
}
