package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fridge-chef/internal/core/recipe"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDetector struct {
	classes []string
	err     error
	enabled bool
	calls   int
}

func (d *stubDetector) Detect(ctx context.Context, imageData []byte, requestID string) ([]string, error) {
	d.calls++
	return d.classes, d.err
}

func (d *stubDetector) Enabled() bool { return d.enabled }

func newTestRouter(detector *stubDetector) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := recipe.NewStore(recipe.DefaultCatalog(), recipe.DefaultPantry())
	h := NewHandler(store, detector, 5*1024*1024)

	r := gin.New()
	r.POST("/api/v1/suggest", h.HandleSuggest)
	r.POST("/api/v1/suggest/image", h.HandleSuggestImage)
	r.GET("/api/v1/catalog", h.HandleCatalog)
	r.GET("/api/v1/pantry", h.HandlePantry)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleSuggest(t *testing.T) {
	r := newTestRouter(&stubDetector{})

	t.Run("manual ingredients rank matching recipes", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/suggest", Request{
			Manual: "eggs, milk; butter",
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)

		assert.Equal(t, []string{"egg", "milk", "butter"}, resp.Ingredients)
		require.NotEmpty(t, resp.Matches)

		// Scrambled Eggs needs exactly egg, milk and butter.
		assert.Equal(t, "Scrambled Eggs", resp.Matches[0].Name)
		assert.Equal(t, 1.0, resp.Matches[0].Coverage)
		assert.Empty(t, resp.Matches[0].Result.Missing)
	})

	t.Run("ingredient list is normalized and deduplicated", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/suggest", Request{
			Ingredients: []string{"Tomatoes", "olive_oil", "tomato"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, []string{"tomato", "olive oil"}, resp.Ingredients)
	})

	t.Run("pantry items merge after manual", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/suggest", Request{
			Manual: "pasta",
			Pantry: []string{"garlic", "olive oil"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, []string{"pasta", "garlic", "olive oil"}, resp.Ingredients)

		names := make([]string, 0, len(resp.Matches))
		for _, m := range resp.Matches {
			names = append(names, m.Name)
		}
		assert.Contains(t, names, "Tomato Pasta")
	})

	t.Run("empty body falls back to the demo basket", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, []string{"egg", "milk", "tomato", "olive oil"}, resp.Ingredients)
		assert.NotEmpty(t, resp.Matches)
	})

	t.Run("a request id is assigned when the client sends none", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/suggest", Request{Manual: "egg"})

		require.Equal(t, http.StatusOK, w.Code)
		id := w.Header().Get("X-Request-ID")
		assert.NotEmpty(t, id)
		assert.Len(t, id, 36)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("matches are sorted by coverage then name", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/suggest", Request{
			Ingredients: []string{"egg", "milk", "butter", "flour"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		for i := 1; i < len(resp.Matches); i++ {
			prev, cur := resp.Matches[i-1], resp.Matches[i]
			if prev.Coverage == cur.Coverage {
				assert.LessOrEqual(t,
					strings.ToLower(prev.Name), strings.ToLower(cur.Name))
			} else {
				assert.Greater(t, prev.Coverage, cur.Coverage)
			}
		}
	})
}

func postImage(t *testing.T, r *gin.Engine, filename string, fields map[string]string, arrays map[string][]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("not-a-real-image"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for k, vs := range arrays {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleSuggestImage(t *testing.T) {
	t.Run("detected classes drive the suggestion", func(t *testing.T) {
		det := &stubDetector{classes: []string{"egg", "tomato"}, enabled: true}
		r := newTestRouter(det)

		w := postImage(t, r, "fridge.jpg", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, det.calls)

		resp := decodeResponse(t, w)
		assert.Equal(t, []string{"egg", "tomato"}, resp.Ingredients)
	})

	t.Run("filename hints fill in when detection is empty", func(t *testing.T) {
		r := newTestRouter(&stubDetector{})

		w := postImage(t, r, "eggs-and-tomato.jpeg", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, []string{"egg", "tomato"}, resp.Ingredients)
	})

	t.Run("manual field overrides nothing but merges", func(t *testing.T) {
		r := newTestRouter(&stubDetector{classes: []string{"milk"}, enabled: true})

		w := postImage(t, r, "fridge.jpg", map[string]string{"manual": "cheese"},
			map[string][]string{"pantry[]": {"butter"}})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, []string{"milk", "cheese", "butter"}, resp.Ingredients)
	})

	t.Run("unsupported extension is rejected", func(t *testing.T) {
		r := newTestRouter(&stubDetector{})

		w := postImage(t, r, "list.txt", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		r := newTestRouter(&stubDetector{})

		w := postImage(t, r, "", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("detector failure degrades to filename hints", func(t *testing.T) {
		det := &stubDetector{err: assert.AnError, enabled: true}
		r := newTestRouter(det)

		w := postImage(t, r, "sample1.jpg", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, []string{"egg", "milk", "butter"}, resp.Ingredients)
	})
}

func TestHandleCatalog(t *testing.T) {
	r := newTestRouter(&stubDetector{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Recipes []recipe.Recipe `json:"recipes"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, len(body.Recipes), body.Count)
	assert.Equal(t, "Omelette", body.Recipes[0].Name)
}

func TestHandlePantry(t *testing.T) {
	r := newTestRouter(&stubDetector{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pantry", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Pantry []string `json:"pantry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Pantry, "salt")
}
