package relay

import (
	"encoding/json"
	"fmt"
)

// Event はWebSocket上でやり取りするイベントの種類を表す。
type Event string

const (
	// EventJoinUserRoom はユーザーIDに対応する部屋への参加要求を表す。
	EventJoinUserRoom Event = "join-user-room"
	// EventPrivateMessage はユーザー間のダイレクトメッセージを表す。
	EventPrivateMessage Event = "private-message"
	// EventError はサーバーからのエラー通知を表す。
	EventError Event = "error"
)

// Frame は1つのWebSocketメッセージ。イベント名とペイロードを持つ。
type Frame struct {
	// Event はイベントの種類。
	Event Event `json:"event"`
	// Data はイベント固有のペイロード（JSON形式）。
	Data json.RawMessage `json:"data,omitempty"`
}

// JoinUserRoomData はjoin-user-roomイベントのペイロード。
type JoinUserRoomData struct {
	// UserID は参加を申告するユーザーのID。
	UserID string `json:"userId"`
	// Token はAPIサーバーが発行したJWTトークン。
	// 申告されたユーザーIDとトークンのユーザーIDが一致しない場合、参加は拒否される。
	Token string `json:"token"`
}

// PrivateMessageData はprivate-messageイベントのペイロードのうち、
// 中継に必要な宛先フィールドのみを取り出した構造。
// ペイロード全体は加工せずそのまま宛先の部屋に転送する。
type PrivateMessageData struct {
	// ReceiverID は宛先ユーザーのID。
	ReceiverID string `json:"receiverId"`
}

// errorFrame はエラー通知のFrameを組み立てる。
func errorFrame(message string) Frame {
	data, _ := json.Marshal(map[string]string{"message": message})
	return Frame{Event: EventError, Data: data}
}

// roomName はユーザーIDから部屋名を導出する。
func roomName(userID string) string {
	return fmt.Sprintf("user-%s", userID)
}
