package relay

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nao1215/ansacademy/pkg/middleware"
)

// Server はリレーサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// registry は部屋とクライアントの対応表。
	registry *Registry
	// jwtSecret はJWT検証用の秘密鍵。APIサーバーと共有する。
	jwtSecret string
	// upgrader はHTTP接続をWebSocketにアップグレードする。
	upgrader websocket.Upgrader
}

// NewServer は新しいリレーサーバーを生成する。
func NewServer(port string) *Server {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{frontendURL}))

	s := &Server{
		router:    router,
		port:      port,
		registry:  NewRegistry(),
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Originヘッダーを送らないクライアント（テストやCLI）は許可する
				return origin == "" || origin == frontendURL
			},
		},
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.GET("/ws", s.handleWebSocket())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// handleWebSocket はWebSocket接続の受け付けを処理するハンドラを返す。
// アップグレード後の接続ごとに読み書きのゴルーチンを起動する。
func (s *Server) handleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgradeが失敗した場合はエラーレスポンス送信済み
			log.Printf("WebSocketアップグレードエラー: %v", err)
			return
		}

		client := newClient(s, conn)
		client.start()
	}
}

// dispatch は受信したフレームをイベントの種類に応じて処理する。
func (s *Server) dispatch(c *Client, frame Frame) {
	switch frame.Event {
	case EventJoinUserRoom:
		s.handleJoinUserRoom(c, frame)
	case EventPrivateMessage:
		s.handlePrivateMessage(c, frame)
	default:
		// 未知のイベントは無視する
	}
}

// handleJoinUserRoom は部屋への参加要求を処理する。
// トークンの署名を検証し、申告されたユーザーIDとトークンのユーザーIDが
// 一致する場合のみ参加を許可する。検証なしの参加は認められない。
func (s *Server) handleJoinUserRoom(c *Client, frame Frame) {
	var data JoinUserRoomData
	if err := json.Unmarshal(frame.Data, &data); err != nil || data.UserID == "" {
		s.sendToClient(c, errorFrame("invalid join-user-room payload"))
		return
	}

	claims, err := middleware.ParseToken(s.jwtSecret, data.Token)
	if err != nil {
		s.sendToClient(c, errorFrame("authentication required"))
		return
	}
	if claims.UserID != data.UserID {
		s.sendToClient(c, errorFrame("user id mismatch"))
		return
	}

	s.registry.Join(roomName(data.UserID), c)
}

// handlePrivateMessage はダイレクトメッセージを宛先の部屋に転送する。
// 宛先の部屋に接続中のクライアントがいない場合は黙って破棄する。
func (s *Server) handlePrivateMessage(c *Client, frame Frame) {
	var data PrivateMessageData
	if err := json.Unmarshal(frame.Data, &data); err != nil || data.ReceiverID == "" {
		s.sendToClient(c, errorFrame("invalid private-message payload"))
		return
	}

	s.registry.Broadcast(roomName(data.ReceiverID), frame)
}

// sendToClient は1つのクライアントにフレームを送信する。
// 送信バッファが詰まっている場合は破棄する。
func (s *Server) sendToClient(c *Client, frame Frame) {
	select {
	case c.send <- frame:
	default:
	}
}
