// APIサーバーのエントリポイント。
// ユーザー認証、コミュニティQ&A、セッション予約、AI回答プロキシ、
// ファイルアップロード、ヘルスチェックのREST APIを提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/ansacademy/internal/api"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server, err := api.NewServer(port)
	if err != nil {
		log.Fatalf("APIサーバーの初期化に失敗: %v", err)
	}

	log.Printf("APIサーバーを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("APIサーバーの起動に失敗: %v", err)
	}
}
