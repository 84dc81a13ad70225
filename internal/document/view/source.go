package view

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	apperrors "document-workers/internal/common/errors"
	commonhttp "document-workers/internal/common/http"
)

// Fetcher retrieves remote template sources.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// loadSource reads a template from http(s), file:// or a plain filesystem path.
func loadSource(ctx context.Context, fetcher Fetcher, location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", apperrors.NewTemplateFetchFailedError(location, err)
	}

	switch u.Scheme {
	case "http", "https":
		body, err := fetcher.Fetch(ctx, location)
		if err != nil {
			return "", fetchError(location, err)
		}
		return string(body), nil
	case "file":
		return readFile(location, u.Path)
	case "":
		return readFile(location, location)
	default:
		return "", apperrors.NewTemplateFetchFailedError(location,
			fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
}

func readFile(location, path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperrors.NewTemplateNotFoundError(strings.TrimPrefix(location, "file://"), err)
		}
		return "", apperrors.NewTemplateFetchFailedError(location, err)
	}
	return string(body), nil
}

// fetchError keeps transient http failures retryable and turns a missing
// template into a terminal error.
func fetchError(location string, err error) error {
	var statusErr *commonhttp.StatusError
	if errors.As(err, &statusErr) && !statusErr.Temporary() {
		stdErr := apperrors.NewTemplateNotFoundError(location, err)
		stdErr.Details = statusErr.Error()
		return stdErr
	}
	return apperrors.NewTemplateFetchFailedError(location, err)
}
