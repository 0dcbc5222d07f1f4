package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	businessRepo "trylocal/database/repository/business"
	"trylocal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "auth:owner:"
	authCacheTTL    = 10 * time.Minute
)

// JWTAuthOwnerMiddleware validates the business owner's session token,
// with Redis caching of known-good token hashes.
func JWTAuthOwnerMiddleware(repo businessRepo.BusinessRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		businessID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || businessID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + computedHash

		// Check the authorization cache.
		authCache := utils.GetCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == businessID {
			// Refresh TTL (sliding expiration) and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("businessID", businessID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: query the business repository.
		biz, err := repo.GetByID(ctx, businessID)
		if err != nil || biz == nil {
			logger.Error("Business not found when validating token", zap.String("businessID", businessID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Business not found"})
			return
		}

		if computedHash != biz.Security.TokenHash {
			logger.Error("Token hash mismatch", zap.String("businessID", businessID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, businessID, authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("businessID", businessID)
		c.Next()
	}
}
