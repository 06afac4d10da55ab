package uniqueness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Paths of the validation endpoint relative to the API base.
const (
	CreatePath = "/validation/unique"
	EditPath   = "/validation/unique/edit"
)

// Envelope is the generic response wrapper of the HR API.
type Envelope struct {
	Flag     bool            `json:"flag"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

/*
HTTPClient calls the uniqueness endpoint of a remote HR API.

	GET <base>/validation/unique?field=EMAIL&value=a@b.in
	GET <base>/validation/unique/edit?field=EMAIL&value=a@b.in&excludeId=<id>&fieldColumn=email

A truthy "response" in the envelope means the value is taken.
*/
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// URL builds the request URL for req.
func (h *HTTPClient) URL(req Request) string {
	q := url.Values{}
	q.Set("field", string(req.Field))
	q.Set("value", req.Value)

	path := CreatePath
	if req.Mode == ModeEdit {
		path = EditPath
		if req.ExcludeID != "" {
			q.Set("excludeId", req.ExcludeID)
		}
		if req.FieldColumn != "" {
			q.Set("fieldColumn", req.FieldColumn)
		}
	}
	return h.baseURL + path + "?" + q.Encode()
}

func (h *HTTPClient) Exists(ctx context.Context, req Request) (bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL(req), nil)
	if err != nil {
		return false, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if h.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.token)
	}

	res, err := h.client.Do(httpReq)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return false, err
	}
	if res.StatusCode >= 300 {
		return false, fmt.Errorf("uniqueness check error: %s | %s", res.Status, string(body))
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false, fmt.Errorf("uniqueness check: decode envelope: %w", err)
	}
	if !env.Flag {
		return false, fmt.Errorf("uniqueness check rejected: %s", env.Message)
	}
	return truthy(env.Response), nil
}

// truthy interprets the envelope payload: booleans,
// non-zero numbers, non-empty strings other than "false"/"0", and objects
// carrying a truthy "exists".
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return s != ""
	case map[string]any:
		if e, ok := x["exists"]; ok {
			b, _ := json.Marshal(e)
			return truthy(b)
		}
		return len(x) > 0
	case []any:
		return len(x) > 0
	}
	return false
}
