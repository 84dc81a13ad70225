package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	apperrors "document-workers/internal/common/errors"
	commonhttp "document-workers/internal/common/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fundRow struct {
	Name   string
	Amount decimal.Decimal
}

type testModel struct {
	FullName       string
	AppliedOn      time.Time
	PortfolioFunds []fundRow
	Total          decimal.Decimal
}

const fundsTemplate = `<p>{{ model.FullName }} applied on {{ model.AppliedOn|date:"2006-01-02" }}</p>
{% for f in model.PortfolioFunds %}<li>{{ f.Name }}: {{ f.Amount|money }}</li>{% endfor %}
<b>{{ model.Total|money }}</b>`

func testViewModel() testModel {
	return testModel{
		FullName:  "Jane Doe",
		AppliedOn: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		PortfolioFunds: []fundRow{
			{Name: "Equity", Amount: decimal.RequireFromString("100")},
			{Name: "Bond", Amount: decimal.RequireFromString("50.5")},
		},
		Total: decimal.RequireFromString("27"),
	}
}

func TestPathProvider(t *testing.T) {
	p, err := NewPathProvider(map[string]string{
		"pendingapplication":   "/pending.html",
		"ActivatedApplication": "activated.html",
	})
	require.NoError(t, err)

	path, err := p.PathFor("PendingApplication")
	require.NoError(t, err)
	assert.Equal(t, "/pending.html", path)

	path, err = p.PathFor("ActivatedApplication")
	require.NoError(t, err)
	assert.Equal(t, "/activated.html", path)

	_, err = p.PathFor("InReviewApplication")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTemplateNotFound, apperrors.Normalize(err).Code)

	_, err = NewPathProvider(map[string]string{"x": " "})
	assert.Error(t, err)
}

func TestRenderer_RemoteTemplateIsCached(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(fundsTemplate))
	}))
	defer server.Close()

	r := NewRenderer(commonhttp.NewClient(time.Second))

	for i := 0; i < 2; i++ {
		html, err := r.RenderFromPath(context.Background(), server.URL+"/activated.html", testViewModel())
		require.NoError(t, err)
		assert.Contains(t, html, "Jane Doe applied on 2024-02-14")
		assert.Contains(t, html, "<li>Equity: 100.00</li>")
		assert.Contains(t, html, "<li>Bond: 50.50</li>")
		assert.Contains(t, html, "<b>27.00</b>")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestRenderer_WithoutCacheRefetches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("{{ model.FullName }}"))
	}))
	defer server.Close()

	r := NewRenderer(commonhttp.NewClient(time.Second), WithoutCache())
	for i := 0; i < 3; i++ {
		_, err := r.RenderFromPath(context.Background(), server.URL+"/p.html", testViewModel())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestRenderer_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pending.html")
	require.NoError(t, os.WriteFile(path, []byte("Hello {{ model.FullName }}"), 0o600))

	r := NewRenderer(commonhttp.NewClient(time.Second))

	html, err := r.RenderFromPath(context.Background(), "file://"+path, testViewModel())
	require.NoError(t, err)
	assert.Equal(t, "Hello Jane Doe", html)

	html, err = r.RenderFromPath(context.Background(), path, testViewModel())
	require.NoError(t, err)
	assert.Equal(t, "Hello Jane Doe", html)
}

func TestRenderer_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken.html":
			_, _ = w.Write([]byte("{% for %}"))
		case "/down.html":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	r := NewRenderer(commonhttp.NewClient(time.Second))

	tests := []struct {
		name string
		url  string
		want apperrors.ErrorCode
	}{
		{name: "missing remote", url: server.URL + "/missing.html", want: apperrors.ErrCodeTemplateNotFound},
		{name: "server error", url: server.URL + "/down.html", want: apperrors.ErrCodeTemplateFetchFailed},
		{name: "parse error", url: server.URL + "/broken.html", want: apperrors.ErrCodeTemplateRenderFailed},
		{name: "missing file", url: filepath.Join(t.TempDir(), "none.html"), want: apperrors.ErrCodeTemplateNotFound},
		{name: "unsupported scheme", url: "ftp://example.com/t.html", want: apperrors.ErrCodeTemplateFetchFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.RenderFromPath(context.Background(), tt.url, testViewModel())
			require.Error(t, err)
			assert.Equal(t, tt.want, apperrors.Normalize(err).Code)
		})
	}
}

func TestFilterMoney_RejectsStrings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(path, []byte("{{ model.FullName|money }}"), 0o600))

	_, err := NewRenderer(commonhttp.NewClient(time.Second)).RenderFromPath(context.Background(), path, testViewModel())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTemplateRenderFailed, apperrors.Normalize(err).Code)
}
