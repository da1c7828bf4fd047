// Package relay はリアルタイムメッセージ中継サーバーの内部実装を提供する。
//
// WebSocketで接続したクライアントはユーザーIDに対応する部屋に参加し、
// その部屋宛てのメッセージを受け取る。部屋への参加にはAPIサーバーが
// 発行したJWTトークンの提示を必須とし、トークンのユーザーIDと
// 申告されたユーザーIDの一致を検証する。
//
// 部屋の対応表はプロセス内メモリのみで保持し、プロセス再起動で消える。
// 宛先の部屋に接続中のクライアントがいない場合、メッセージは
// エラーを返さずに破棄される（ベストエフォート配信）。
package relay
