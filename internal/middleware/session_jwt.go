package middleware

import (
	"errors"
	"net/http"
	"time"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey = "session_id" // string

	SessionCookieName = "sid"
)

// sidクッキーの有効期限
const sessionTokenTTL = 30 * 24 * time.Hour

// SessionJWT はsidクッキー（HS256のJWT）からセッションIDを取り出す。
// 無い・不正なら新しいセッションを発行する。
func SessionJWT(cfg config.SessionConfig) echo.MiddlewareFunc {
	secret := []byte(cfg.Secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//既存のクッキーを検証
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				if sid, err := ParseSessionToken(ck.Value, secret); err == nil {
					c.Set(CtxSessionIDKey, sid)
					return next(c)
				}
			}

			//新しいセッションを発行
			sid := uuid.NewString()
			now := time.Now()
			token, err := IssueSessionToken(sid, secret, now)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.SetCookie(&http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				Expires:  now.Add(sessionTokenTTL),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(CtxSessionIDKey, sid)

			return next(c)
		}
	}
}

// IssueSessionToken はセッションIDを sub に入れたJWTを作る。
func IssueSessionToken(sessionID string, secret []byte, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseSessionToken は検証してセッションIDを返す。
func ParseSessionToken(raw string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid session id")
	}
	return claims.Subject, nil
}

// handlerから使う
func SessionID(c echo.Context) (string, bool) {
	v, ok := c.Get(CtxSessionIDKey).(string)
	return v, ok && v != ""
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
