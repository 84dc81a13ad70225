package view

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	apperrors "document-workers/internal/common/errors"

	"github.com/flosch/pongo2/v6"
	"github.com/shopspring/decimal"
)

var registerFilters sync.Once

// Renderer renders pongo2 templates loaded from a URL. The view model is
// exposed to templates as "model".
type Renderer struct {
	fetcher Fetcher
	set     *pongo2.TemplateSet
	cache   bool

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

type RendererOption func(*Renderer)

// WithoutCache recompiles the template on every render.
func WithoutCache() RendererOption {
	return func(r *Renderer) {
		r.cache = false
	}
}

func NewRenderer(fetcher Fetcher, opts ...RendererOption) *Renderer {
	registerFilters.Do(func() {
		if !pongo2.FilterExists("money") {
			_ = pongo2.RegisterFilter("money", filterMoney)
		}
	})

	r := &Renderer{
		fetcher:   fetcher,
		set:       pongo2.NewSet("documents", pongo2.MustNewLocalFileSystemLoader("")),
		cache:     true,
		templates: make(map[string]*pongo2.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) RenderFromPath(ctx context.Context, url string, viewModel any) (string, error) {
	tmpl, err := r.template(ctx, url)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context{"model": viewModel}, &buf); err != nil {
		return "", apperrors.NewTemplateRenderFailedError(fmt.Errorf("execute %s: %w", url, err))
	}
	return buf.String(), nil
}

func (r *Renderer) template(ctx context.Context, url string) (*pongo2.Template, error) {
	if r.cache {
		r.mu.RLock()
		tmpl, ok := r.templates[url]
		r.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	src, err := loadSource(ctx, r.fetcher, url)
	if err != nil {
		return nil, err
	}

	tmpl, err := r.set.FromString(src)
	if err != nil {
		return nil, apperrors.NewTemplateRenderFailedError(fmt.Errorf("parse %s: %w", url, err))
	}

	if r.cache {
		r.mu.Lock()
		r.templates[url] = tmpl
		r.mu.Unlock()
	}
	return tmpl, nil
}

// filterMoney formats decimals with two fraction digits: {{ fund.Amount|money }}.
func filterMoney(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch v := in.Interface().(type) {
	case decimal.Decimal:
		return pongo2.AsValue(v.StringFixed(2)), nil
	case *decimal.Decimal:
		if v == nil {
			return pongo2.AsValue(""), nil
		}
		return pongo2.AsValue(v.StringFixed(2)), nil
	case float64:
		return pongo2.AsValue(decimal.NewFromFloat(v).StringFixed(2)), nil
	case int:
		return pongo2.AsValue(decimal.NewFromInt(int64(v)).StringFixed(2)), nil
	default:
		return nil, &pongo2.Error{
			Sender:    "filter:money",
			OrigError: fmt.Errorf("cannot format %T as money", v),
		}
	}
}
