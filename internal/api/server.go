package api

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	apidb "github.com/nao1215/ansacademy/internal/api/db"
	"github.com/nao1215/ansacademy/pkg/httpclient"
	"github.com/nao1215/ansacademy/pkg/middleware"
	"github.com/nao1215/ansacademy/pkg/migration"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// adminEmail は起動時にシードする管理者ユーザーのメールアドレス。
const adminEmail = "admin@ansacademymath.in"

// bcryptCost はパスワードハッシュのコストパラメータ。
const bcryptCost = 12

// Server はAPIサーバーのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *apidb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// jwtSecret はJWT署名用の秘密鍵。
	jwtSecret string
	// aiClient はAIサービス（Ollama）へのHTTPクライアント。
	aiClient *httpclient.Client
	// aiModel はAIサービスで使用するモデル名。
	aiModel string
	// uploadDir はアップロードファイルの保存先ディレクトリ。
	uploadDir string
	// secureCookie は認証CookieにSecure属性を付与するかどうか。
	// 本番環境でのみtrueにする。
	secureCookie bool
}

// NewServer は新しいAPIサーバーを生成する。
// SQLiteデータベースの初期化とマイグレーション、管理者ユーザーのシードを行う。
func NewServer(port string) (*Server, error) {
	dbPath := getEnvOr("DATABASE_PATH", "/data/ansacademy.db")
	sqlDB, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	s, err := newServerWithDB(port, sqlDB)
	if err != nil {
		return nil, err
	}

	if err := s.ensureAdminUser(context.Background()); err != nil {
		return nil, fmt.Errorf("管理者ユーザーのシードに失敗: %w", err)
	}

	return s, nil
}

// newServerWithDB は既存のDB接続からAPIサーバーを組み立てる。
// マイグレーションの適用とルーティング設定を行う。テストからも使用する。
func newServerWithDB(port string, sqlDB *sql.DB) (*Server, error) {
	if err := runMigrations(sqlDB); err != nil {
		return nil, fmt.Errorf("マイグレーションの適用に失敗: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:3000")

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{frontendURL}))

	s := &Server{
		router:       router,
		port:         port,
		queries:      apidb.New(sqlDB),
		db:           sqlDB,
		jwtSecret:    jwtSecret,
		aiClient:     httpclient.New(getEnvOr("OLLAMA_URL", "http://localhost:11434")),
		aiModel:      getEnvOr("AI_MODEL", "llama3:8b"),
		uploadDir:    getEnvOr("UPLOAD_DIR", "./uploads"),
		secureCookie: os.Getenv("APP_ENV") == "production",
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", s.handleSignup())
			auth.POST("/login", s.handleLogin())
			auth.POST("/logout", s.handleLogout())
			auth.GET("/me", s.authRequired(), s.handleMe())
		}

		community := api.Group("/community")
		{
			community.GET("/questions", s.handleListQuestions())
			community.GET("/questions/:id", s.handleGetQuestion())
			community.POST("/questions", s.authRequired(), s.handleCreateQuestion())
			community.POST("/questions/:id/answers", s.authRequired(), s.handleCreateAnswer())
		}

		sessions := api.Group("/sessions", s.authRequired())
		{
			sessions.POST("/book", s.handleBookSession())
			sessions.GET("/book", s.handleListSessions())
		}

		api.POST("/ai/answers", s.authRequired(), s.handleAIAnswer())
		api.POST("/upload", s.authRequired(), s.handleUpload())

		admin := api.Group("/admin", s.authRequired("ADMIN"))
		{
			admin.GET("/stats", s.handleAdminStats())
		}

		// ヘルスチェック（認証不要）
		api.GET("/health", s.handleHealth())
	}

	// アップロード済みファイルの配信
	s.router.Static("/uploads", s.uploadDir)
}

// runMigrations はembedされたマイグレーションをデータベースに適用する。
func runMigrations(sqlDB *sql.DB) error {
	return migration.Run(sqlDB, migrationsFS, "migrations")
}

// ensureAdminUser は管理者ユーザーが存在することを確認し、なければ作成する。
// prismaのseedスクリプト相当の処理で、既存ユーザーは変更しない。
func (s *Server) ensureAdminUser(ctx context.Context) error {
	_, err := s.queries.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("管理者ユーザーの取得に失敗: %w", err)
	}

	password := getEnvOr("ADMIN_PASSWORD", "admin123")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("管理者パスワードのハッシュに失敗: %w", err)
	}

	examPrep, _ := json.Marshal([]string{})
	if err := s.queries.CreateUser(ctx, apidb.CreateUserParams{
		ID:           uuid.New().String(),
		Email:        adminEmail,
		Username:     "admin",
		PasswordHash: string(hashed),
		Name:         "Admin User",
		Role:         "ADMIN",
		ExamPrep:     string(examPrep),
	}); err != nil {
		return fmt.Errorf("管理者ユーザーの作成に失敗: %w", err)
	}

	log.Printf("管理者ユーザーを作成しました: %s", adminEmail)
	return nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
