package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/google/uuid"
)

// AuthServiceImpl は AuthService の実装
type AuthServiceImpl struct {
	memberRepo repository.MemberRepository
}

// NewAuthService は AuthServiceImpl を生成する（DI: MemberRepository を注入）
func NewAuthService(memberRepo repository.MemberRepository) AuthService {
	return &AuthServiceImpl{memberRepo: memberRepo}
}

// Login はメールアドレスに対応するメンバーを返す。未登録なら作成する。
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*model.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	m, err := s.memberRepo.FindByEmail(ctx, email)
	if err == nil {
		slog.Debug("member found", "member_id", m.ID)
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find member: %w", err)
	}

	name, _, _ := strings.Cut(email, "@")
	if name == "" {
		name = "Designer"
	}
	newMember := &model.Member{
		ID:     "u_" + uuid.NewString(),
		Name:   name,
		Role:   "Design Lead",
		Avatar: "https://api.dicebear.com/7.x/notionists/svg?seed=" + url.QueryEscape(email) + "&backgroundColor=e5e7eb",
	}
	if err := s.memberRepo.Upsert(ctx, newMember, email); err != nil {
		slog.Error("create member failed", "error", err)
		return nil, fmt.Errorf("create member: %w", err)
	}
	slog.Info("new member created", "member_id", newMember.ID)
	return newMember, nil
}

// DemoLogin はデモメンバーを登録して返す
func (s *AuthServiceImpl) DemoLogin(ctx context.Context) (*model.Member, error) {
	m := DemoMember
	if err := s.memberRepo.Upsert(ctx, &m, ""); err != nil {
		return nil, fmt.Errorf("upsert demo member: %w", err)
	}
	return &m, nil
}

// Me はメンバーを取得する
func (s *AuthServiceImpl) Me(ctx context.Context, memberID string) (*model.Member, error) {
	return s.memberRepo.FindByID(ctx, memberID)
}
