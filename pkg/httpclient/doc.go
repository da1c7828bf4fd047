// Package httpclient は外部HTTPサービスとのJSON通信を行うクライアントを提供する。
//
// AIサービス（Ollama）への推論リクエスト送信や、
// ヘルスチェックでの死活確認など、外部サービスとの通信パターンを統一する。
package httpclient
