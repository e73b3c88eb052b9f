package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"github.com/mahmoudbymassen/station-managment/internal/auth"
	"github.com/mahmoudbymassen/station-managment/internal/scope"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	scope    *scope.Scope
	secret   []byte
	tokenTTL time.Duration
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sc *scope.Scope, secret []byte, tokenTTL time.Duration, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		scope:    sc,
		secret:   secret,
		tokenTTL: tokenTTL,
		webpush:  webpushOptions,
	}
}

// mustIdentity returns the identity attached by the auth middleware.
// Routes reaching a handler without one are a wiring bug.
func mustIdentity(c *gin.Context) auth.Identity {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
	}
	return ident
}

// abortScope translates a scope error into the HTTP response the client
// expects. action completes the "Access denied: ..." message, e.g.
// "Can only edit tanks in your station".
func abortScope(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, scope.ErrStationNotFound):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Manager's station not found"})
	case errors.Is(err, scope.ErrAdminOnly):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: Admins only"})
	case errors.Is(err, scope.ErrStationChange):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: Cannot change station"})
	case errors.Is(err, scope.ErrCrossStation):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: " + action})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
	}
}
