// Package view resolves and renders the HTML templates behind application
// documents.
package view

import (
	"fmt"
	"strings"

	apperrors "document-workers/internal/common/errors"
)

// PathProvider maps template names to paths. Lookups ignore case because
// viper lower-cases map keys.
type PathProvider struct {
	paths map[string]string
}

func NewPathProvider(paths map[string]string) (*PathProvider, error) {
	normalized := make(map[string]string, len(paths))
	for name, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			return nil, fmt.Errorf("template %q has an empty path", name)
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		normalized[strings.ToLower(name)] = path
	}
	return &PathProvider{paths: normalized}, nil
}

func (p *PathProvider) PathFor(name string) (string, error) {
	path, ok := p.paths[strings.ToLower(name)]
	if !ok {
		return "", apperrors.NewTemplateNotFoundError(name, nil)
	}
	return path, nil
}
