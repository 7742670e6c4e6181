package sdk

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// CallFunc performs one remote operation. The path is either relative to the
// branch-qualified base URL or an absolute URL; contentType may be empty for
// body-less requests. Implementations return the response envelope for every
// completed HTTP exchange, successful or not, and an error only when the
// exchange itself could not be carried out.
type CallFunc func(method, path, contentType string, body []byte) (*Response, error)

// HTTPCall returns the default transport bound to the resolved runtime
// configuration. Construction is pure; no connection is established until
// the first call.
func HTTPCall(runtime RuntimeConfig, client *http.Client) CallFunc {
	if client == nil {
		client = http.DefaultClient
	}
	logger := runtime.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(method, path, contentType string, body []byte) (*Response, error) {
		url := path
		if !isAbsolute(path) {
			base := runtime.BaseURL()
			if base == "" {
				return nil, ErrNoDatabaseURL
			}
			url = base + path
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequest(method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+runtime.APIKey)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		logger.Debug("api call",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)

		return &Response{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       payload,
		}, nil
	}
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://")
}
