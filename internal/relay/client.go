package relay

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait は1回の書き込みに許容する最大時間。
	writeWait = 10 * time.Second
	// pongWait はpong応答を待つ最大時間。これを超えると接続を切断する。
	pongWait = 60 * time.Second
	// pingPeriod はpingを送信する間隔。pongWaitより短くすること。
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize は受信メッセージの最大サイズ（バイト）。
	maxMessageSize = 64 * 1024
	// sendBufferSize は送信チャネルのバッファサイズ。
	sendBufferSize = 256
)

// Client は1つのWebSocket接続を表す。
// readPumpで受信したフレームをサーバーに渡し、
// sendチャネル経由で届いたフレームをwritePumpで接続に書き出す。
type Client struct {
	// srv は接続元のリレーサーバー。
	srv *Server
	// conn はWebSocket接続。
	conn *websocket.Conn
	// send は配信待ちフレームのバッファ付きチャネル。
	send chan Frame
}

// newClient は新しいClientを生成する。
func newClient(srv *Server, conn *websocket.Conn) *Client {
	return &Client{
		srv:  srv,
		conn: conn,
		send: make(chan Frame, sendBufferSize),
	}
}

// start は読み書きのゴルーチンを起動する。
func (c *Client) start() {
	go c.writePump()
	go c.readPump()
}

// readPump は接続からフレームを読み取りサーバーに渡し続ける。
// 接続が閉じられたら部屋の対応表から自身を取り除いて終了する。
// 部屋のメンバーシップが接続より長生きすることはない。
func (c *Client) readPump() {
	defer func() {
		c.srv.registry.Leave(c)
		close(c.send)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("読み取りデッドラインの設定エラー: %v", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("WebSocket読み取りエラー: %v", err)
			}
			return
		}
		c.srv.dispatch(c, frame)
	}
}

// writePump はsendチャネルのフレームを接続に書き出し続ける。
// 定期的にpingを送信して接続の生存を確認する。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// readPumpがチャネルを閉じた
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
