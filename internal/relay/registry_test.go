package relay

import (
	"encoding/json"
	"testing"
)

// newTestClient はRegistryのテスト用に送信チャネルだけを持つClientを生成する。
func newTestClient() *Client {
	return &Client{send: make(chan Frame, 4)}
}

func TestRegistryJoin(t *testing.T) {
	t.Parallel()

	t.Run("クライアントを部屋に追加できること", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		c := newTestClient()

		r.Join("user-1", c)

		if got := r.RoomSize("user-1"); got != 1 {
			t.Errorf("部屋のメンバー数が1であること, got %d", got)
		}
	})

	t.Run("同じクライアントの重複参加は冪等であること", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		c := newTestClient()

		r.Join("user-1", c)
		r.Join("user-1", c)
		r.Join("user-1", c)

		if got := r.RoomSize("user-1"); got != 1 {
			t.Errorf("重複参加後もメンバー数が1であること, got %d", got)
		}
	})

	t.Run("複数のクライアントが同じ部屋に参加できること", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()

		r.Join("user-1", newTestClient())
		r.Join("user-1", newTestClient())

		if got := r.RoomSize("user-1"); got != 2 {
			t.Errorf("部屋のメンバー数が2であること, got %d", got)
		}
	})
}

func TestRegistryLeave(t *testing.T) {
	t.Parallel()

	t.Run("所属するすべての部屋から削除されること", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		c := newTestClient()
		other := newTestClient()

		r.Join("user-1", c)
		r.Join("user-2", c)
		r.Join("user-2", other)

		r.Leave(c)

		if got := r.RoomSize("user-1"); got != 0 {
			t.Errorf("user-1の部屋が空になること, got %d", got)
		}
		if got := r.RoomSize("user-2"); got != 1 {
			t.Errorf("user-2の部屋には他のクライアントが残ること, got %d", got)
		}
	})

	t.Run("未参加のクライアントの削除は何もしないこと", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Join("user-1", newTestClient())

		r.Leave(newTestClient())

		if got := r.RoomSize("user-1"); got != 1 {
			t.Errorf("既存のメンバーが影響を受けないこと, got %d", got)
		}
	})
}

func TestRegistryBroadcast(t *testing.T) {
	t.Parallel()

	t.Run("部屋の全メンバーに配信されること", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		c1 := newTestClient()
		c2 := newTestClient()
		outsider := newTestClient()
		r.Join("user-1", c1)
		r.Join("user-1", c2)
		r.Join("user-2", outsider)

		frame := Frame{Event: EventPrivateMessage, Data: json.RawMessage(`{"receiverId":"1"}`)}
		delivered := r.Broadcast("user-1", frame)

		if delivered != 2 {
			t.Errorf("配信数が2であること, got %d", delivered)
		}
		for _, c := range []*Client{c1, c2} {
			select {
			case got := <-c.send:
				if got.Event != EventPrivateMessage {
					t.Errorf("イベントが一致すること, got %s", got.Event)
				}
			default:
				t.Error("部屋のメンバーにフレームが届くこと")
			}
		}
		select {
		case <-outsider.send:
			t.Error("部屋外のクライアントにフレームが届かないこと")
		default:
		}
	})

	t.Run("存在しない部屋への配信は黙って破棄されること", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()

		delivered := r.Broadcast("user-ghost", Frame{Event: EventPrivateMessage})

		if delivered != 0 {
			t.Errorf("配信数が0であること, got %d", delivered)
		}
	})

	t.Run("送信バッファが満杯のクライアントはスキップされること", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		full := &Client{send: make(chan Frame)} // バッファなし、受信側なし
		ready := newTestClient()
		r.Join("user-1", full)
		r.Join("user-1", ready)

		delivered := r.Broadcast("user-1", Frame{Event: EventPrivateMessage})

		if delivered != 1 {
			t.Errorf("受信可能なクライアントにのみ配信されること, got %d", delivered)
		}
	})
}

func TestRegistryReset(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Join("user-1", newTestClient())
	r.Join("user-2", newTestClient())

	r.Reset()

	if got := r.RoomSize("user-1"); got != 0 {
		t.Errorf("リセット後は部屋が空であること, got %d", got)
	}
	if got := r.RoomSize("user-2"); got != 0 {
		t.Errorf("リセット後は部屋が空であること, got %d", got)
	}
}
