package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves repeated GET requests from an in-memory store. Listing
// dashboards tolerate a short staleness window; anything that mutates
// session state must never sit behind this middleware.
func Cache(store *cache.Cache, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if resp, found := store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Error responses carry per-request messages; cache successes only.
		if blw.Status() >= 200 && blw.Status() < 300 {
			store.Set(key, cachedResponse{
				status:  blw.Status(),
				headers: blw.Header().Clone(),
				body:    blw.body.Bytes(),
			}, duration)
		}
	}
}
