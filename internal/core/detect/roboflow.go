package detect

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"fridge-chef/internal/core/detect/cache"
	"fridge-chef/internal/core/ingredient"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Detector turns an uploaded image into a list of canonical ingredients.
type Detector interface {
	// Detect returns the normalized, deduplicated ingredient classes found
	// in the image, or nil when detection is unavailable or found nothing.
	Detect(ctx context.Context, imageData []byte, requestID string) ([]string, error)

	// Enabled reports whether the detector is configured to make calls.
	Enabled() bool
}

// prediction is one detection in the Roboflow response.
type prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// detectResponse is the Roboflow hosted-inference response envelope.
type detectResponse struct {
	Predictions []prediction `json:"predictions"`
}

// RoboflowClient calls the Roboflow hosted inference endpoint.
type RoboflowClient struct {
	http   *resty.Client
	config *config.Config
	cache  cache.Store
}

// NewRoboflowClient creates a detector client. cacheStore may be nil, in
// which case every call goes to the network.
func NewRoboflowClient(cfg *config.Config, cacheStore cache.Store) *RoboflowClient {
	client := resty.New().
		SetTimeout(cfg.Detector.Timeout).
		SetRetryCount(1).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Resty only retries transport errors on its own; a 5xx from
			// the inference endpoint is worth one more attempt too.
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &RoboflowClient{
		http:   client,
		config: cfg,
		cache:  cacheStore,
	}
}

// Enabled reports whether both the API key and the model URL are set.
func (c *RoboflowClient) Enabled() bool {
	return c.config.Detector.Enabled()
}

// Detect posts the image to the configured model and collects the predicted
// class labels, normalized and deduplicated. Results are cached by image
// hash. When the detector is not configured the result is nil, nil.
func (c *RoboflowClient) Detect(ctx context.Context, imageData []byte, requestID string) ([]string, error) {
	if !c.Enabled() {
		return nil, nil
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	key := cache.HashImage(imageData)
	if c.cache != nil {
		if val, err := c.cache.Get(ctx, key); err == nil && val != "" {
			var cached []string
			if err := common.ParseJSON(val, &cached); err == nil {
				return cached, nil
			}
		}
	}

	start := time.Now()
	var result detectResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.config.Detector.APIKey).
		SetFileReader("file", "upload.jpg", bytes.NewReader(imageData)).
		SetResult(&result).
		Post(c.config.Detector.ModelURL)

	if err != nil {
		common.LogDetectorCall(time.Since(start), 0, err, requestID)
		return nil, fmt.Errorf("failed to call detector: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("detector returned status %d", resp.StatusCode())
		common.LogDetectorCall(time.Since(start), 0, err, requestID)
		return nil, err
	}

	classes := make([]string, 0, len(result.Predictions))
	for _, p := range result.Predictions {
		if p.Class != "" {
			classes = append(classes, p.Class)
		}
	}
	detected := ingredient.Dedupe(classes)

	common.LogDetectorCall(time.Since(start), len(detected), nil, requestID)

	if c.cache != nil {
		if val, err := common.ToJSON(detected); err == nil {
			if err := c.cache.Set(ctx, key, val); err != nil {
				common.LogWarn("failed to cache detection result",
					zap.Error(err),
					zap.String("request_id", requestID),
				)
			}
		}
	}

	return detected, nil
}
