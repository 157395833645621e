package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-recommender/internal/pkg/common"
)

var (
	// Recent request fingerprints, used to suppress accidental duplicates
	// (double-clicked submit buttons, client retries).
	requestCache = struct {
		sync.RWMutex
		requests map[string]time.Time
	}{
		requests: make(map[string]time.Time),
	}

	cleanupOnce sync.Once
)

func startDeduplicationCleanup(window time.Duration) {
	cleanupOnce.Do(func() {
		interval := 10 * window
		if interval < time.Minute {
			interval = time.Minute
		}
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for range ticker.C {
				cutoff := time.Now().Add(-window)
				requestCache.Lock()
				for key, seen := range requestCache.requests {
					if seen.Before(cutoff) {
						delete(requestCache.requests, key)
					}
				}
				requestCache.Unlock()
			}
		}()
	})
}

// Deduplication rejects a request identical to one seen within the window.
// The fingerprint covers method, path, and body.
func Deduplication(window time.Duration) gin.HandlerFunc {
	startDeduplicationCleanup(window)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.Sum256(append([]byte(c.Request.Method+c.Request.URL.Path), body...))
		key := hex.EncodeToString(sum[:])

		now := time.Now()

		requestCache.Lock()
		seen, exists := requestCache.requests[key]
		if exists && now.Sub(seen) < window {
			requestCache.Unlock()
			common.LogInfo("duplicate request suppressed",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Duplicate request",
				"code":  common.ErrCodeTooManyRequests,
			})
			return
		}
		requestCache.requests[key] = now
		requestCache.Unlock()

		c.Next()
	}
}
