package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davideme94/sad-proyecto/internal/models"
	"github.com/davideme94/sad-proyecto/internal/repository"
	"github.com/davideme94/sad-proyecto/pkg/jobs"
)

// HashClientIP returns the sha256 hex digest of the caller's address. The
// first X-Forwarded-For hop wins when the proxy sets one. The raw address is
// never stored or logged, only this digest.
func HashClientIP(c *gin.Context) string {
	addr := c.ClientIP()
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		addr = strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	sum := sha256.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:])
}

// Audit creates a middleware that records audit logs after successful
// requests. Writes go through the pool so a slow store never delays the
// response; with a nil pool they happen inline on the request context.
func Audit(repo *repository.UserRepository, pool *jobs.Pool, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if claims, ok := c.Get(ContextUserKey); ok {
			user := claims.(*models.JWTClaims)
			userID = &user.UserID
		}

		detail, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		entry := &models.AuditLog{
			UserID:    userID,
			Action:    action,
			Resource:  resource,
			Detail:    detail,
			IPHash:    HashClientIP(c),
			UserAgent: c.GetHeader("User-Agent"),
		}

		if pool != nil {
			_ = pool.Submit(func(ctx context.Context) error {
				return repo.CreateAuditLog(ctx, entry)
			})
			return
		}
		_ = repo.CreateAuditLog(c.Request.Context(), entry)
	}
}
