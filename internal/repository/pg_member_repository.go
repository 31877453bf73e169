package repository

import (
	"context"
	"strings"

	"github.com/designflow/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgMemberRepository は MemberRepository の PostgreSQL 実装
type PgMemberRepository struct {
	pool *pgxpool.Pool
}

// NewPgMemberRepository は PgMemberRepository を生成する
func NewPgMemberRepository(pool *pgxpool.Pool) *PgMemberRepository {
	return &PgMemberRepository{pool: pool}
}

// FindByID は ID でメンバーを取得する
func (r *PgMemberRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	var m model.Member
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, role, avatar FROM members WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Role, &m.Avatar)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// FindByEmail はメールアドレス（大文字小文字を区別しない）でメンバーを取得する
func (r *PgMemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var m model.Member
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, role, avatar FROM members WHERE email = $1`, strings.ToLower(email),
	).Scan(&m.ID, &m.Name, &m.Role, &m.Avatar)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// Upsert はメンバーを作成または更新する。email が空なら NULL として保存する。
func (r *PgMemberRepository) Upsert(ctx context.Context, member *model.Member, email string) error {
	var emailArg *string
	if email != "" {
		e := strings.ToLower(email)
		emailArg = &e
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO members (id, name, role, avatar, email)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, role = EXCLUDED.role, avatar = EXCLUDED.avatar,
		     email = COALESCE(EXCLUDED.email, members.email)`,
		member.ID, member.Name, member.Role, member.Avatar, emailArg,
	)
	return err
}
