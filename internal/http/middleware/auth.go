// README: Caller identity middleware (Firebase bearer tokens or anonymous client ids).
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skyplan/internal/infra"
)

const (
	ctxKeyUID    = "caller_uid"
	ctxKeyClaims = "caller_claims"

	// AnonymousUID is the caller id used when no identity is supplied.
	AnonymousUID = "anonymous"
	// ClientIDHeader lets unauthenticated front-ends keep separate history.
	ClientIDHeader = "X-Client-ID"
)

// Auth requires a valid "Authorization: Bearer <firebase id token>" header.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil || token == nil || token.UID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxKeyUID, token.UID)
		c.Set(ctxKeyClaims, token.Claims)
		c.Next()
	}
}

// Anonymous identifies callers by the X-Client-ID header when it is a
// well-formed id, otherwise as AnonymousUID. The header is caller-chosen, so
// quota and history are only enforced per caller once Auth is in use; callers
// without the header all share the AnonymousUID bucket.
func Anonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if !isValidClientID(uid) {
			uid = AnonymousUID
		}
		c.Set(ctxKeyUID, uid)
		c.Next()
	}
}

// CallerUID returns the id set by Auth or Anonymous, or AnonymousUID.
func CallerUID(c *gin.Context) string {
	if uid := c.GetString(ctxKeyUID); uid != "" {
		return uid
	}
	return AnonymousUID
}

// CallerClaims returns the verified token claims, nil for anonymous callers.
func CallerClaims(c *gin.Context) map[string]interface{} {
	v, ok := c.Get(ctxKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(map[string]interface{})
	return claims
}

// isValidClientID accepts 1-64 characters of [A-Za-z0-9_-].
func isValidClientID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}
