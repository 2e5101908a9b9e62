package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultImageTimeout = 15 * time.Second
	MaxImageSize        = 10 * 1024 * 1024 // 10MB
)

// DownloadedImage represents fetched image bytes with their metadata
type DownloadedImage struct {
	Content     []byte
	ContentType string
	Size        int64
}

// ImageDownloader fetches attachment images referenced by webhook payloads.
type ImageDownloader struct {
	client  *http.Client
	maxSize int64
}

func NewImageDownloader() *ImageDownloader {
	return &ImageDownloader{
		client: &http.Client{
			Timeout: DefaultImageTimeout,
		},
		maxSize: MaxImageSize,
	}
}

// Download fetches the image at url with a bounded timeout and size cap.
func (d *ImageDownloader) Download(ctx context.Context, url string) (*DownloadedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
	}

	if resp.ContentLength > d.maxSize {
		return nil, fmt.Errorf("image exceeds maximum allowed size: %d bytes", d.maxSize)
	}

	limitedReader := io.LimitReader(resp.Body, d.maxSize)
	content, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image content: %w", err)
	}

	Zlog.Debug("Image downloaded",
		zap.String("url", url),
		zap.Int("size", len(content)))

	return &DownloadedImage{
		Content:     content,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        int64(len(content)),
	}, nil
}
