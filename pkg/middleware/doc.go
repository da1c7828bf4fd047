// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアと
// 認証トークンのユーティリティを提供する。
//
// JWTトークンの発行・検証、リクエストからのトークン抽出、
// CORS設定、パニックリカバリなど、APIサーバーとリレーサーバーで
// 共通して使用する処理を含む。
package middleware
