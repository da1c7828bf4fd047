// Package api は試験対策プラットフォームのREST APIサーバーの内部実装を提供する。
//
// ユーザー認証（signup/login/JWT発行）、コミュニティQ&A、
// 個別指導セッションの予約、AIサービスへの回答プロキシ、
// ファイルアップロード、ヘルスチェックを担当する。
// 永続化はSQLiteに対して行い、認証が必要なルートは共通の
// authRequiredミドルウェアで保護する。
package api
