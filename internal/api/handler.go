package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"dog-daycare-backend/internal/auth"
	"dog-daycare-backend/internal/mailer"
	"dog-daycare-backend/internal/notification"
	"dog-daycare-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	sessions   *auth.Sessions
	pool       *notification.WorkerPool
	mailer     mailer.Mailer
	webpush    *webpush.Options
	bcryptCost int
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sessions *auth.Sessions, pool *notification.WorkerPool, m mailer.Mailer, webpushOptions *webpush.Options, bcryptCost int) *Handler {
	return &Handler{
		store:      s,
		sessions:   sessions,
		pool:       pool,
		mailer:     m,
		webpush:    webpushOptions,
		bcryptCost: bcryptCost,
	}
}

// fail maps store errors onto the HTTP error taxonomy: validation -> 400,
// not found -> 404, everything else -> logged and a generic 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[internal] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
