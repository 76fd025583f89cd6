package httpclient

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register gif
	_ "image/jpeg" // register jpeg
	_ "image/png"  // register png
	"net/http"
	"path"
	"strings"
	"time"
)

const flagCDNTemplate = "https://flagcdn.com/w160/%s.png"

type FlagClient struct {
	http    *http.Client
	timeout time.Duration
}

// GetFlag downloads and decodes a flag image. SVG flags are not decodable and fail.
func (c *FlagClient) GetFlag(ctx context.Context, flagURL string) (image.Image, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	imgURL := FlagImageURL(flagURL)
	resp, err := get(reqCtx, c.http, imgURL)
	if err != nil {
		return nil, fmt.Errorf("flag %q: %w", imgURL, err)
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode flag %q: %w", imgURL, err)
	}
	return img, nil
}

// FlagImageURL maps flag references from flagcdn.com and restcountries.eu to the
// flagcdn PNG endpoint. Other URLs are returned unchanged.
func FlagImageURL(flagURL string) string {
	if !strings.Contains(flagURL, "flagcdn.com") && !strings.Contains(flagURL, "restcountries.eu") {
		return flagURL
	}
	base := path.Base(flagURL)
	code, _, _ := strings.Cut(base, ".")
	if code == "" || code == "." || code == "/" {
		return flagURL
	}
	return fmt.Sprintf(flagCDNTemplate, strings.ToLower(code))
}

func NewFlagClient(httpClient *http.Client, timeout time.Duration) *FlagClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FlagClient{http: httpClient, timeout: timeout}
}
