package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SessionMaxAge はセッショントークンの有効期間
const SessionMaxAge = 30 * 24 * time.Hour

var (
	errInvalidFormat    = errors.New("invalid token format")
	errInvalidSignature = errors.New("invalid signature")
	errExpired          = errors.New("session expired")
)

// CreateSessionToken はメンバーIDと発行時刻から署名付きセッショントークンを生成する
func CreateSessionToken(memberID string, secret []byte) string {
	return createSessionToken(memberID, secret, time.Now())
}

func createSessionToken(memberID string, secret []byte, issuedAt time.Time) string {
	payload := []byte(memberID + "|" + strconv.FormatInt(issuedAt.Unix(), 10))
	return base64.URLEncoding.EncodeToString(payload) + "." + sign(payload, secret)
}

// VerifySessionToken はトークンを検証しメンバーIDを返す
func VerifySessionToken(token string, secret []byte) (string, error) {
	return verifySessionToken(token, secret, time.Now())
}

func verifySessionToken(token string, secret []byte, now time.Time) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", errInvalidFormat
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", err
	}
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(parts[1])) {
		return "", errInvalidSignature
	}

	i := strings.LastIndexByte(string(payload), '|')
	if i <= 0 {
		return "", errInvalidFormat
	}
	issued, err := strconv.ParseInt(string(payload[i+1:]), 10, 64)
	if err != nil {
		return "", errInvalidFormat
	}
	if now.Sub(time.Unix(issued, 0)) > SessionMaxAge {
		return "", errExpired
	}
	return string(payload[:i]), nil
}

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

const sessionCookieName = "designflow_session"
const minSecretLen = 32

// SessionCookieName はセッションクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// SessionCookie はログイン時に返すクッキーを組み立てる
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie はログアウト用の失効クッキー
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionSecretBytes は文字列からセッション署名用のバイト列を生成する（最低32バイト）
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
