package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/microcosm-cc/bluemonday"
)

// Converter renders HTML with gofpdf. Only inline formatting, links, line
// breaks and alignment survive; block elements become line breaks.
type Converter struct {
	pageSize     string
	fontFamily   string
	fontSize     float64
	lineHeight   float64
	margins      [4]float64 // left, top, right, bottom
	compress     bool
	creationDate time.Time
	policy       *bluemonday.Policy
}

type ConverterOption func(*Converter)

// WithCreationDate pins the creation and modification timestamps written
// into every file.
func WithCreationDate(t time.Time) ConverterOption {
	return func(c *Converter) {
		c.creationDate = t.UTC()
	}
}

// WithPageSize selects a gofpdf standard size such as "A4" or "Letter".
func WithPageSize(size string) ConverterOption {
	return func(c *Converter) {
		if size != "" {
			c.pageSize = size
		}
	}
}

// WithFont sets the body font. Zero values keep the defaults.
func WithFont(family string, size float64) ConverterOption {
	return func(c *Converter) {
		if family != "" {
			c.fontFamily = family
		}
		if size > 0 {
			c.fontSize = size
			c.lineHeight = size * 0.5
		}
	}
}

// WithCompression toggles content stream compression.
func WithCompression(enabled bool) ConverterOption {
	return func(c *Converter) {
		c.compress = enabled
	}
}

func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		pageSize:     "A4",
		fontFamily:   "Arial",
		fontSize:     11,
		lineHeight:   5.5,
		margins:      [4]float64{15, 20, 15, 20},
		compress:     true,
		creationDate: time.Now().UTC().Truncate(time.Second),
		policy:       newPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderHTMLToPDF lays out html on as many pages as needed.
func (c *Converter) RenderHTMLToPDF(ctx context.Context, html string, opts Options) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := gofpdf.New("P", "mm", c.pageSize, "")
	f.SetCreationDate(c.creationDate)
	f.SetModificationDate(c.creationDate)
	f.SetCatalogSort(true)
	f.SetCompression(c.compress)
	f.SetMargins(c.margins[0], c.margins[1], c.margins[2])
	f.SetAutoPageBreak(true, c.margins[3])

	tr := f.UnicodeTranslatorFromDescriptor("")

	if header := simplifyHTML(c.policy, opts.Header.HTML); header != "" {
		repeat := opts.Header.Repeat
		f.SetHeaderFunc(func() {
			if repeat == HeaderFirstPageOnly && f.PageNo() != 1 {
				return
			}
			f.SetFont(c.fontFamily, "", c.fontSize+2)
			writer := f.HTMLBasicNew()
			writer.Write(c.lineHeight+1, tr(header))
			f.Ln(c.lineHeight * 2)
		})
	}

	if opts.PageNumbers == PageNumbersNumeric {
		f.SetFooterFunc(func() {
			f.SetY(-15)
			f.SetFont(c.fontFamily, "", 8)
			f.CellFormat(0, 10, strconv.Itoa(f.PageNo()), "", 0, "C", false, 0, "")
		})
	}

	f.AddPage()
	f.SetFont(c.fontFamily, "", c.fontSize)
	body := f.HTMLBasicNew()
	body.Write(c.lineHeight, tr(simplifyHTML(c.policy, html)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err() {
		return nil, fmt.Errorf("layout pdf: %w", f.Error())
	}

	pages := f.PageCount()
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return &document{data: buf.Bytes(), pages: pages}, nil
}
