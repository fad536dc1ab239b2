package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fridge-chef/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newDedupRouter(window time.Duration, path string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Deduplication(&config.Config{DedupWindow: window}))
	r.POST(path, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postBody(r *gin.Engine, path, body string) int {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestDeduplicationWithinWindow(t *testing.T) {
	r := newDedupRouter(time.Minute, "/dedup-window")

	assert.Equal(t, http.StatusOK, postBody(r, "/dedup-window", `{"a":1}`))
	assert.Equal(t, http.StatusTooManyRequests, postBody(r, "/dedup-window", `{"a":1}`))

	// A different body is a different request.
	assert.Equal(t, http.StatusOK, postBody(r, "/dedup-window", `{"a":2}`))
}

func TestDeduplicationExpires(t *testing.T) {
	r := newDedupRouter(20*time.Millisecond, "/dedup-expiry")

	assert.Equal(t, http.StatusOK, postBody(r, "/dedup-expiry", `{"b":1}`))
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, http.StatusOK, postBody(r, "/dedup-expiry", `{"b":1}`))
}

func TestDeduplicationConcurrentIdenticalRequests(t *testing.T) {
	r := newDedupRouter(time.Minute, "/dedup-race")

	const n = 8
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = postBody(r, "/dedup-race", `{"c":1}`)
		}(i)
	}
	wg.Wait()

	passed := 0
	for _, code := range codes {
		if code == http.StatusOK {
			passed++
		}
	}
	// Exactly one identical request may land inside the window.
	assert.Equal(t, 1, passed)
}
