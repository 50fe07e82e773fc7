// Package youdao implements the signed request builder and HTTP
// transport for the Youdao openapi text-translation endpoint.
//
// The vendor signature scheme is replicated exactly as documented, not
// normalized: the public application id is sent as the "appKey" form
// field and fills the first slot of the signed concatenation, while the
// held-back secret fills only the last slot.
package youdao

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Endpoint is the fixed translation API endpoint.
const Endpoint = "https://openapi.youdao.com/api"

// Error codes reported in Response.ErrorCode.
const (
	// CodeSuccess is a fully successful lookup.
	CodeSuccess = "0"
	// CodeWarning is success-with-warning: the result is rendered, and
	// the raw payload is surfaced in a non-blocking notice.
	CodeWarning = "207"
	// CodeNoQuery is a local sentinel, never sent by the server: no
	// query has been issued yet (or the request never reached the API).
	CodeNoQuery = "-1"
)

// Credentials holds the API credentials from the user preferences.
type Credentials struct {
	// AppID is the public application id.
	AppID string
	// AppKey is the application secret used for signing.
	AppKey string
}

// Basic is the optional dictionary block of a response.
type Basic struct {
	Phonetic   string   `json:"phonetic"`
	USPhonetic string   `json:"us-phonetic"`
	UKPhonetic string   `json:"uk-phonetic"`
	Explains   []string `json:"explains"`
}

// WebEntry is one web-translation result: a source phrase and its
// observed renderings.
type WebEntry struct {
	Key   string   `json:"key"`
	Value []string `json:"value"`
}

// Response is the decoded translation payload. Optional blocks decode
// to nil when absent, so callers distinguish "no phonetic" and "no web
// results" explicitly instead of relying on loose JSON access.
type Response struct {
	ErrorCode   string     `json:"errorCode"`
	L           string     `json:"l"` // language pair, "src2dst"
	Translation []string   `json:"translation"`
	Basic       *Basic     `json:"basic"`
	Web         []WebEntry `json:"web"`
}

// Sign computes the request signature: the uppercase hex MD5 digest of
// appID + query + salt + appKey, truncated to its first 32 characters.
func Sign(query, salt string, creds Credentials) string {
	sum := md5.Sum([]byte(creds.AppID + query + salt + creds.AppKey))
	hex := strings.ToUpper(fmt.Sprintf("%x", sum))
	return hex[:32]
}

// BuildRequest assembles the url-encoded form for one translation call.
// The query text goes out as raw UTF-8 with no extra encoding beyond
// the form escaping itself.
func BuildRequest(query, targetID, salt string, creds Credentials) url.Values {
	return url.Values{
		"q":      {query},
		"appKey": {creds.AppID},
		"from":   {"auto"},
		"to":     {targetID},
		"salt":   {salt},
		"sign":   {Sign(query, salt, creds)},
	}
}

// Client calls the translation endpoint.
type Client struct {
	Credentials Credentials
	// Endpoint overrides the API URL (tests); empty means Endpoint.
	Endpoint string
	// HTTPClient overrides the transport; nil means a default client
	// with environment proxy support and a 15s timeout.
	HTTPClient *http.Client
}

func (c *Client) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return Endpoint
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyFromEnvironment
	return &http.Client{
		Transport: transport,
		Timeout:   15 * time.Second,
	}
}

// Translate performs one signed POST for query towards targetID and
// decodes the response. Transport failures and non-2xx statuses return
// an error; the caller treats those as the CodeNoQuery sentinel. The
// call is never retried: the user retries by typing again.
func (c *Client) Translate(ctx context.Context, query, targetID string) (*Response, error) {
	salt := strconv.FormatInt(time.Now().UnixMilli(), 10)
	form := BuildRequest(query, targetID, salt, c.Credentials)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + ".."
}
