package usecase

import "errors"

var (
	//404 対象なし
	ErrNotFound = errors.New("not found")
	//409 一意キー重複
	ErrConflict = errors.New("conflict")
	//台帳ルール違反（INITIAL重複など）
	ErrInvariant = errors.New("invariant violation")
	//400 入力不正
	ErrInvalidArgument = errors.New("invalid argument")
	//403 権限
	ErrForbidden = errors.New("forbidden")
	//出庫数が現在庫を超えている
	ErrInsufficientStock = errors.New("insufficient stock")
	//認証失敗。ユーザーなし/パスワード違い/未承認は内部で区別するが
	//ユーザー名の列挙を防ぐため表示は必ずこの1つにまとめる
	ErrInvalidCredentials = errors.New("invalid credentials or not yet approved")
	//セッション期限切れ
	ErrSessionExpired = errors.New("session expired")
	//セッション不正
	ErrSessionInvalid = errors.New("invalid session")
	//DB障害。リトライせずそのリクエストを中断する
	ErrStore = errors.New("store error")
)
