package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/pkg/httpcontext"
)

// SessionChecker verifies that the session referenced by a token is
// still live. Logged-out sessions fail the check even when the token
// itself has not expired yet.
type SessionChecker interface {
	SessionAlive(ctx context.Context, sessionID string) error
}

// JWTAuth validates the bearer token, checks the referenced session and
// projects the verified identity into the X-User-* request headers for
// the handlers downstream. Inbound copies of those headers are dropped
// first so callers cannot smuggle an identity past the token check.
func JWTAuth(secret string, sessions SessionChecker, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Del(httpcontext.HeaderUserID)
			ctx.Request.Header.Del(httpcontext.HeaderUserName)
			ctx.Request.Header.Del(httpcontext.HeaderUserRole)

			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			if sessions != nil {
				sessionID, _ := claims["session_id"].(string)
				checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				err := sessions.SessionAlive(checkCtx, sessionID)
				cancel()
				if err != nil {
					logger.Debug("session rejected", zap.String("session_id", sessionID), zap.Error(err))
					ctx.SetStatusCode(fasthttp.StatusUnauthorized)
					return
				}
			}

			if userID, ok := claims["user_id"].(string); ok {
				ctx.Request.Header.Set(httpcontext.HeaderUserID, userID)
			}
			if name, ok := claims["name"].(string); ok {
				ctx.Request.Header.Set(httpcontext.HeaderUserName, name)
			}
			if role, ok := claims["role"].(string); ok {
				ctx.Request.Header.Set(httpcontext.HeaderUserRole, role)
			}

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
