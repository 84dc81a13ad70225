// Package pdf converts rendered HTML documents into PDF files.
package pdf

type PageNumbers int

const (
	PageNumbersNone PageNumbers = iota
	PageNumbersNumeric
)

type HeaderRepeat int

const (
	HeaderFirstPageOnly HeaderRepeat = iota
	HeaderAllPages
)

type HeaderOptions struct {
	Repeat HeaderRepeat
	// HTML is drawn above the body; empty disables the header.
	HTML string
}

type Options struct {
	PageNumbers PageNumbers
	Header      HeaderOptions
}

// Document is a finished PDF.
type Document interface {
	ToBytes() ([]byte, error)
	Pages() int
}

type document struct {
	data  []byte
	pages int
}

func (d *document) ToBytes() ([]byte, error) {
	out := make([]byte, len(d.data))
	copy(out, d.data)
	return out, nil
}

// Pages is the page count of the rendered file.
func (d *document) Pages() int {
	return d.pages
}
