package groupme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/guarzo/groupmeapi/common"
	"github.com/guarzo/groupmeapi/common/model"
)

// Default endpoint roots. The media base only handles binary uploads; every
// JSON endpoint lives under the API base.
const (
	DefaultBaseURL  = "https://api.groupme.com/v3"
	DefaultImageURL = "https://image.groupme.com"
)

// Client defines the lower-level HTTP operations against the API:
// URL building, token injection, response caching, envelope decoding.
type Client interface {
	// Do builds and executes one request. media selects the upload base
	// instead of the JSON API base.
	Do(ctx context.Context, method, path string, params map[string]string, body interface{}, media bool) (*model.Response, error)
	Get(ctx context.Context, path string, params map[string]string) (*model.Response, error)
	Post(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error)
	Upload(ctx context.Context, path string, payload *model.UploadPayload) (*model.Response, error)

	// Cache configuration surface.
	SetCaching(enabled bool, ttl time.Duration)
	ClearCache()
	PurgeExpiredCache() int
}

type client struct {
	baseURL  string
	imageURL string
	http     common.HttpClient
	cache    common.ResponseCache
	tokens   oauth2.TokenSource
	log      *slog.Logger
}

// NewClient constructs a Client. logger may be nil for a silent client.
func NewClient(baseURL, imageURL string, httpClient common.HttpClient, cache common.ResponseCache, tokens oauth2.TokenSource, logger *slog.Logger) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if imageURL == "" {
		imageURL = DefaultImageURL
	}
	if cache == nil {
		cache = common.NewResponseCache()
	}
	return &client{
		baseURL:  baseURL,
		imageURL: imageURL,
		http:     httpClient,
		cache:    cache,
		tokens:   tokens,
		log:      logger,
	}
}

func (c *client) Get(ctx context.Context, path string, params map[string]string) (*model.Response, error) {
	return c.Do(ctx, http.MethodGet, path, params, nil, false)
}

func (c *client) Post(ctx context.Context, path string, params map[string]string, body interface{}) (*model.Response, error) {
	return c.Do(ctx, http.MethodPost, path, params, body, false)
}

func (c *client) Upload(ctx context.Context, path string, payload *model.UploadPayload) (*model.Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, payload, true)
}

// Do is the core method that performs one HTTP round trip or serves it from
// the response cache. The cache check runs before dispatch for every verb,
// matching the original client; since only idempotent GETs are issued twice
// with identical identity in practice, that is harmless.
func (c *client) Do(ctx context.Context, method, path string, params map[string]string, body interface{}, media bool) (*model.Response, error) {
	urlStr, err := c.buildURL(path, params, media)
	if err != nil {
		return nil, err
	}
	key := common.Fingerprint(method, urlStr)

	if c.cache.IsCached(key) {
		if cached, found := c.cache.Get(key); found {
			c.debug("cache hit", "method", method, "path", path)
			return c.decode(cached, http.StatusOK)
		}
	}

	req, err := c.buildRequest(ctx, method, urlStr, body, media)
	if err != nil {
		return nil, err
	}

	c.debug("dispatch", "method", method, "path", path, "media", media)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Write-through before parsing; a no-op when caching is disabled.
	data = c.cache.Put(key, data)

	return c.decode(data, resp.StatusCode)
}

// buildRequest assembles the outgoing request: JSON body for ordinary POSTs,
// multipart form for media uploads.
func (c *client) buildRequest(ctx context.Context, method, urlStr string, body interface{}, media bool) (*http.Request, error) {
	var reader io.Reader
	contentType := ""

	switch {
	case media && body != nil:
		payload, ok := body.(*model.UploadPayload)
		if !ok {
			return nil, fmt.Errorf("media upload requires *model.UploadPayload, got %T", body)
		}
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for field, value := range payload.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, fmt.Errorf("failed to write form field %q: %w", field, err)
			}
		}
		if f := payload.File; f != nil {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, f.FieldName, f.FileName))
			contentType := f.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			header.Set("Content-Type", contentType)
			part, err := w.CreatePart(header)
			if err != nil {
				return nil, fmt.Errorf("failed to create form file: %w", err)
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, fmt.Errorf("failed to write form file: %w", err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
		}
		reader = buf
		contentType = w.FormDataContentType()
	case body != nil:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// decode parses a response body into the envelope. A body that is not valid
// JSON yields an HTTPError when the status already signalled failure, and a
// DecodeError otherwise; it is never conflated with an empty result.
func (c *client) decode(data []byte, status int) (*model.Response, error) {
	var env model.Response
	if err := json.Unmarshal(data, &env); err != nil {
		if status < 200 || status >= 300 {
			return nil, &common.HTTPError{StatusCode: status, Body: data}
		}
		return nil, &common.DecodeError{Body: data, Err: err}
	}
	// The media service answers without the meta envelope; surface the whole
	// document as the payload in that case.
	if env.Meta == nil && env.Response == nil {
		env.Response = json.RawMessage(data)
	}
	return &env, nil
}

// buildURL merges the base for the target service with the endpoint path,
// the caller's query parameters and the access token. The token rides in the
// query string, which also makes it part of the cache fingerprint.
func (c *client) buildURL(path string, params map[string]string, media bool) (string, error) {
	base := c.baseURL
	if media {
		base = c.imageURL
	}
	u, err := url.Parse(base + "/" + trimLeadingSlash(path))
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return "", fmt.Errorf("failed to obtain access token: %w", err)
		}
		q.Set("token", tok.AccessToken)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *client) SetCaching(enabled bool, ttl time.Duration) {
	c.cache.SetCaching(enabled, ttl)
}

func (c *client) ClearCache() {
	c.cache.Clear()
}

func (c *client) PurgeExpiredCache() int {
	return c.cache.PurgeExpired()
}

func (c *client) debug(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}

func trimLeadingSlash(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s
}
