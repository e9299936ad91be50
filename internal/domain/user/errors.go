package user

import "errors"

// User ドメインのエラー定義
var (
	ErrUserNotFound             = errors.New("ユーザーが見つかりません")
	ErrNameRequired             = errors.New("ユーザー名は必須です")
	ErrEmailRequired            = errors.New("メールアドレスは必須です")
	ErrInvalidRole              = errors.New("ロールが不正です")
	ErrEmailAlreadyRegistered   = errors.New("このメールアドレスは既に登録されています")
	ErrAdminRegistrationDenied  = errors.New("管理者ロールでの登録はできません")
	ErrInvalidCredentials       = errors.New("メールアドレスまたはパスワードが正しくありません")
)
