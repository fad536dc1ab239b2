package suggest

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"fridge-chef/internal/core/detect"
	"fridge-chef/internal/core/ingest"
	"fridge-chef/internal/core/ingredient"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// allowedExtensions whitelists upload file types.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// Request is the JSON body for text-only suggestions. All fields are
// optional; an empty request falls back to the demo ingredient list.
type Request struct {
	Ingredients []string `json:"ingredients,omitempty"` // raw tokens, any source
	Manual      string   `json:"manual,omitempty"`      // comma/semicolon-delimited
	Pantry      []string `json:"pantry,omitempty"`      // checked pantry staples
}

// Response carries the normalized working set and the ranked matches.
type Response struct {
	Ingredients []string             `json:"ingredients"`
	Matches     []recipe.RankedEntry `json:"matches"`
}

// Handler serves recipe suggestion requests.
type Handler struct {
	store        *recipe.Store
	detector     detect.Detector
	maxImageSize int64
}

// NewHandler creates a suggestion handler.
func NewHandler(store *recipe.Store, detector detect.Detector, maxImageSize int64) *Handler {
	return &Handler{
		store:        store,
		detector:     detector,
		maxImageSize: maxImageSize,
	}
}

func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = common.GenerateUUID()
		c.Header("X-Request-ID", id)
	}
	return id
}

// respond runs the merged sources through the matching engine and writes
// the ranked result.
func (h *Handler) respond(c *gin.Context, src ingest.Sources) {
	merged := ingest.Merge(src)
	catalog := h.store.Catalog()

	results := recipe.Match(ingredient.Set(merged), catalog)
	ranked := recipe.Rank(results, catalog)

	common.LogInfo("suggestions computed",
		zap.Int("ingredients", len(merged)),
		zap.Int("matches", len(ranked)),
		zap.String("request_id", requestID(c)),
	)

	c.JSON(http.StatusOK, Response{
		Ingredients: merged,
		Matches:     ranked,
	})
}

// HandleSuggest serves POST /api/v1/suggest.
func (h *Handler) HandleSuggest(c *gin.Context) {
	reqID := requestID(c)

	// An empty body is a valid request: every source empty, fallback applies.
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		common.LogError("invalid request format",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	h.respond(c, ingest.Sources{
		Detected: req.Ingredients,
		Manual:   req.Manual,
		Pantry:   req.Pantry,
	})
}

// HandleSuggestImage serves POST /api/v1/suggest/image. The multipart form
// carries the image under "file" plus optional "manual" and "pantry[]"
// fields. Detection failures degrade to filename guessing; the request as a
// whole never fails because the detector did.
func (h *Handler) HandleSuggestImage(c *gin.Context) {
	reqID := requestID(c)

	file, err := c.FormFile("file")
	if err != nil {
		common.LogError("missing upload file",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing upload file"})
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid file type. Only JPEG, JPG, and PNG images are allowed.",
			"code":  common.ErrInvalidImageFormat.Code,
		})
		return
	}
	if file.Size > h.maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Image exceeds size limit",
			"code":     common.ErrInvalidImageSize.Code,
			"max_size": h.maxImageSize,
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		common.LogError("failed to open upload",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		common.LogError("failed to read upload",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	var detected []string
	if h.detector != nil && h.detector.Enabled() {
		detected, err = h.detector.Detect(c.Request.Context(), imageData, reqID)
		if err != nil {
			// Degrade to filename guessing rather than failing the request.
			common.LogWarn("detection failed, falling back to filename heuristics",
				zap.Error(err),
				zap.String("request_id", reqID),
			)
			detected = nil
		}
	}

	var guessed []string
	if len(detected) == 0 {
		guessed = detect.GuessFromFilename(file.Filename)
	}

	h.respond(c, ingest.Sources{
		Detected: detected,
		Guessed:  guessed,
		Manual:   c.PostForm("manual"),
		Pantry:   c.PostFormArray("pantry[]"),
	})
}

// HandleCatalog serves GET /api/v1/catalog.
func (h *Handler) HandleCatalog(c *gin.Context) {
	catalog := h.store.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"recipes": catalog.Recipes(),
		"count":   catalog.Len(),
	})
}

// HandlePantry serves GET /api/v1/pantry.
func (h *Handler) HandlePantry(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pantry": h.store.Pantry(),
	})
}
