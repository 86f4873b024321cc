// Package healthz reports whether the backend can reach its database.
package healthz

import (
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type httpError struct {
	Error string `json:"error" example:"the database cannot be reached"`
}

// RegisterRoutes registers the health endpoint for db with the RouterGroup
// that is passed.
func RegisterRoutes(db *gorm.DB, r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get(db))
}

// Options returns the allowed HTTP methods
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns a handler responding with 204 when the database answers a ping
// and 500 otherwise.
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}

		if err != nil {
			log.Error().Err(err).Msg("healthz")
			c.JSON(http.StatusInternalServerError, httpError{Error: "the database cannot be reached"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
