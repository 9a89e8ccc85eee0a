package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"parkmate-backend/config"
	"parkmate-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	search config.SearchConfig
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, search config.SearchConfig) *Handler {
	return &Handler{
		store:  s,
		search: search,
	}
}

// fail writes the uniform failure envelope and aborts the request.
func fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": msg})
}

// failFromStore maps a store error onto the HTTP error taxonomy:
// not-found 404, duplicate check-in 409, everything else 500 with a
// generic message (the wrapped cause goes to the log, not the wire).
func failFromStore(c *gin.Context, err error) {
	var conflict *store.AlreadyCheckedInError
	switch {
	case errors.As(err, &conflict):
		fail(c, http.StatusConflict, conflict.Error())
	case errors.Is(err, store.ErrSpaceNotFound):
		fail(c, http.StatusNotFound, store.ErrSpaceNotFound.Error())
	case errors.Is(err, store.ErrNoActiveSession):
		fail(c, http.StatusNotFound, store.ErrNoActiveSession.Error())
	default:
		log.Printf("store error on %s: %v", c.FullPath(), err)
		fail(c, http.StatusInternalServerError, "Server error")
	}
}
