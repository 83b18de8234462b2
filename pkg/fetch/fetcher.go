// Package fetch retrieves résumé documents and translation files from disk
// or over HTTP.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

// UserAgent is sent with HTTP requests.
const UserAgent = "resume-render/1.0"

// LocalePlaceholder is replaced by the locale tag in overlay locations.
const LocalePlaceholder = "{locale}"

// Fetcher retrieves the bytes at a location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (data []byte, err error)
}

// Client fetches local files and http(s) URLs.
type Client struct {
	HTTP *http.Client
}

// NewClient returns a Client with DefaultTimeout.
func NewClient() (c *Client) {
	c = &Client{
		HTTP: &http.Client{Timeout: DefaultTimeout},
	}
	return c
}

// Fetch retrieves location with the default client and timeout.
func Fetch(location string) (data []byte, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	data, err = NewClient().Fetch(ctx, location)
	return data, err
}

// Fetch retrieves location: an http or https URL is fetched with GET,
// anything else is read as a file path.
func (c *Client) Fetch(ctx context.Context, location string) (data []byte, err error) {
	if IsURL(location) {
		data, err = c.fetchFromURL(ctx, location)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch %s", location)
			return data, err
		}
		return data, err
	}

	data, err = fetchFromFile(location)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch %s", location)
		return data, err
	}
	return data, err
}

// IsURL reports whether location is an http or https URL.
func IsURL(location string) (ok bool) {
	parsed, err := url.Parse(location)
	ok = err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https")
	return ok
}

// OverlayLocation substitutes tag into pattern.
func OverlayLocation(pattern, tag string) (location string) {
	location = strings.ReplaceAll(pattern, LocalePlaceholder, tag)
	return location
}

func fetchFromFile(path string) (data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("file is empty")
		return data, err
	}
	return data, err
}

func (c *Client) fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("fetched content is empty")
		return data, err
	}
	return data, err
}
