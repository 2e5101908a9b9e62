package utils

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestImageDownloaderDownload(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer srv.Close()

	img, err := NewImageDownloader().Download(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(img.Content, payload) {
		t.Errorf("content mismatch: %v", img.Content)
	}
	if img.ContentType != "image/png" {
		t.Errorf("got content type %q", img.ContentType)
	}
	if img.Size != int64(len(payload)) {
		t.Errorf("got size %d, want %d", img.Size, len(payload))
	}
}

func TestImageDownloaderNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewImageDownloader().Download(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestImageDownloaderSizeCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "999999999")
		w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	if _, err := NewImageDownloader().Download(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for oversized image")
	}
}
