// リレーサーバーのエントリポイント。
// WebSocketで接続したクライアント間のダイレクトメッセージを
// ユーザーIDに対応する部屋単位で中継する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/ansacademy/internal/relay"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	server := relay.NewServer(port)

	log.Printf("リレーサーバーを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("リレーサーバーの起動に失敗: %v", err)
	}
}
