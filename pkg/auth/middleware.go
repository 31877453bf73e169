package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const memberIDKey contextKey = "member_id"

// MemberIDFromContext は context からメンバーIDを取得する
func MemberIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(memberIDKey).(string)
	return v, ok && v != ""
}

// WithMemberID は context にメンバーIDをセットする
func WithMemberID(ctx context.Context, memberID string) context.Context {
	return context.WithValue(ctx, memberIDKey, memberID)
}

// RequireAuth は認証必須ミドルウェア。セッションを検証し、メンバーIDを context にセットする
func RequireAuth(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName())
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			memberID, err := VerifySessionToken(cookie.Value, sessionSecret)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_session"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithMemberID(r.Context(), memberID)))
		})
	}
}

// DevMemberID は開発用のデモアカウント（AUTH_REQUIRED=false 時に使用）
const DevMemberID = "u1"

// DevAuth は開発用ミドルウェア。有効なセッションがあればそのメンバー、なければデモアカウントを使う
func DevAuth(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			memberID := DevMemberID
			if cookie, err := r.Cookie(SessionCookieName()); err == nil {
				if id, err := VerifySessionToken(cookie.Value, sessionSecret); err == nil {
					memberID = id
				}
			}
			next.ServeHTTP(w, r.WithContext(WithMemberID(r.Context(), memberID)))
		})
	}
}
