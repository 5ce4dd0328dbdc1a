// Package images decodes image resources for the snapshot renderer.
package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"go.uber.org/zap"

	"l14ui/pkg/resource"
)

// Loader decodes images from data URIs or through a resource fetcher and
// caches them by source.
type Loader struct {
	fetcher resource.Fetcher
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewLoader returns a loader. fetcher may be nil, in which case only data
// URIs load.
func NewLoader(fetcher resource.Fetcher, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fetcher: fetcher,
		logger:  logger.Named("images"),
		cache:   make(map[string]image.Image),
	}
}

// Load returns the decoded image for src.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	l.mu.RLock()
	img, ok := l.cache[src]
	l.mu.RUnlock()
	if ok {
		return img, nil
	}

	var err error
	if IsDataURI(src) {
		img, err = DecodeDataURI(src)
	} else if l.fetcher == nil {
		err = errors.New("no fetcher configured")
	} else {
		var body []byte
		if body, _, err = l.fetcher.Fetch(ctx, src); err == nil {
			img, _, err = image.Decode(bytes.NewReader(body))
		}
	}
	if err != nil {
		l.logger.Debug("image load failed", zap.String("src", src), zap.Error(err))
		return nil, fmt.Errorf("images: load %s: %w", src, err)
	}

	l.mu.Lock()
	l.cache[src] = img
	l.mu.Unlock()
	return img, nil
}

// IsDataURI reports whether s is a data: URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURI decodes a base64 data URI holding an image.
func DecodeDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, errors.New("not a data URI")
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, errors.New("data URI has no payload")
	}
	if !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, errors.New("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
