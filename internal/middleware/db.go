package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbKey = "db"

// WithDB injects the application database pool into the request context.
// The pool is constructed once at startup and owned by main; handlers never
// touch global connection state.
func WithDB(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, pool)
		c.Next()
	}
}

// GetDB retrieves the database pool from context
func GetDB(c *gin.Context) (*pgxpool.Pool, bool) {
	val, exists := c.Get(dbKey)
	if !exists {
		return nil, false
	}
	db, ok := val.(*pgxpool.Pool)
	return db, ok
}
