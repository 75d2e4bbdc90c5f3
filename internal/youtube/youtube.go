// Package youtube resolves YouTube watch URLs and fetches video metadata from
// the YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
)

const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

var videoIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)

// watchHosts serve /watch?v=<id> pages.
var watchHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
}

// Metadata is the subset of a video resource that the catalog stores.
type Metadata struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"`
	ViewCount   string `json:"view_count"`
	Thumbnail   string `json:"thumbnail"`
}

// ExtractVideoID returns the video ID of a short link (youtu.be/<id>) or a
// watch URL (youtube.com/watch?v=<id>). Any other host is rejected.
func ExtractVideoID(rawURL string) (string, error) {
	invalid := apperror.New(apperror.ErrInvalidURL, "Invalid YouTube URL format")

	raw := strings.TrimSpace(rawURL)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", invalid
	}

	var id string
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		id, _, _ = strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	case watchHosts[host] && strings.TrimSuffix(u.Path, "/") == "/watch":
		id = u.Query().Get("v")
	}
	if !videoIDPattern.MatchString(id) {
		return "", invalid
	}
	return id, nil
}

// Client talks to the videos endpoint of the Data API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount *string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// FetchMetadata looks up the video behind rawURL. A URL that cannot be parsed
// fails with ErrInvalidURL, an unknown video with ErrNotFound, and every other
// failure with ErrMetadataFetch.
func (c *Client) FetchMetadata(ctx context.Context, rawURL string) (Metadata, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return Metadata{}, err
	}

	query := url.Values{}
	query.Set("part", "snippet,statistics")
	query.Set("id", videoID)
	query.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/videos?"+query.Encode(), nil)
	if err != nil {
		return Metadata{}, fetchError(err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Metadata{}, fetchError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Metadata{}, fetchError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fetchError(fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var payload videoListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Metadata{}, fetchError(err)
	}
	if len(payload.Items) == 0 {
		return Metadata{}, apperror.NotFound("YouTube video not found")
	}

	item := payload.Items[0]
	viewCount := "N/A"
	if item.Statistics.ViewCount != nil {
		viewCount = *item.Statistics.ViewCount
	}

	return Metadata{
		VideoID:     videoID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		PublishedAt: item.Snippet.PublishedAt,
		ViewCount:   viewCount,
		Thumbnail:   item.Snippet.Thumbnails["high"].URL,
	}, nil
}

// fetchError reports err to the caller without the request URL, which
// carries the API key.
func fetchError(err error) error {
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = urlErr.Err.Error()
	}
	return &apperror.AppError{
		Err:     fmt.Errorf("%w: %w", apperror.ErrMetadataFetch, err),
		Message: "Error fetching metadata: " + msg,
	}
}
