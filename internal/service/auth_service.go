package service

import (
	"context"

	"github.com/designflow/backend/internal/model"
)

// DemoMember はデモログインで使うスタジオメンバー
var DemoMember = model.Member{
	ID:     "u1",
	Name:   "Alex Chen",
	Role:   "Senior Industrial Designer",
	Avatar: "https://api.dicebear.com/7.x/notionists/svg?seed=Alex&backgroundColor=e0e7ff",
}

// AuthService は認証に関するビジネスロジックのインターフェース
type AuthService interface {
	// Login はメールアドレスでメンバーを取得または作成する（パスワードは検証しないモック認証）
	Login(ctx context.Context, email, password string) (*model.Member, error)
	// DemoLogin はデモメンバーを返す
	DemoLogin(ctx context.Context) (*model.Member, error)
	// Me はメンバー ID からメンバーを返す
	Me(ctx context.Context, memberID string) (*model.Member, error)
}
