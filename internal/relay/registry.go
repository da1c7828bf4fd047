package relay

import (
	"sync"
)

// Registry は部屋名から接続中クライアントの集合への対応表。
// リレープロセス内で全接続から共有される唯一の可変状態であり、
// ミューテックスで保護する。モジュールレベルの変数ではなく
// 注入可能なオブジェクトとして持つことで、テスト間のリセットや
// 将来の分散バックエンドへの置き換えを可能にする。
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewRegistry は空のRegistryを生成する。
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Join はクライアントを指定された部屋に追加する。
// 同じクライアントが同じ部屋に複数回参加しても、メンバーは1つのまま（冪等）。
func (r *Registry) Join(room string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		r.rooms[room] = members
	}
	members[c] = struct{}{}
}

// Leave はクライアントを所属するすべての部屋から削除する。
// 空になった部屋は対応表から取り除く。ピアへの通知は行わない。
func (r *Registry) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room, members := range r.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}

// Broadcast は指定された部屋の全メンバーにフレームを配信し、配信数を返す。
// 部屋が存在しない場合は何もせず0を返す（サイレントドロップ）。
// 送信バッファが詰まっているクライアントへの配信はスキップする。
func (r *Registry) Broadcast(room string, frame Frame) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for c := range r.rooms[room] {
		select {
		case c.send <- frame:
			delivered++
		default:
		}
	}
	return delivered
}

// RoomSize は指定された部屋のメンバー数を返す。
func (r *Registry) RoomSize(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

// Reset は対応表を空にする。テストでの初期化に使用する。
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = make(map[string]map[*Client]struct{})
}
