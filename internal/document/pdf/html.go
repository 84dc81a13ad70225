package pdf

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	lineBreakTags = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|table|ul|ol|section|header|footer)\s*>|<br\s*/?>|<hr\s*/?>`)
	headingOpen   = regexp.MustCompile(`(?i)<h[1-6][^>]*>`)
	headingClose  = regexp.MustCompile(`(?i)</h[1-6]\s*>`)
	tableCell     = regexp.MustCompile(`(?i)</t[dh]\s*>`)
	whitespace    = regexp.MustCompile(`\s+`)
	leadingBreaks = regexp.MustCompile(`^(\s*<br>\s*)+`)
	repeatBreaks  = regexp.MustCompile(`(<br>\s*){3,}`)

	// gofpdf treats any "<" as the start of a tag, so an escaped one is
	// printed as a single angle quote instead.
	entities = strings.NewReplacer(
		"&lt;", "\u2039",
		"&#60;", "\u2039",
		"&gt;", ">",
		"&#62;", ">",
		"&amp;", "&",
		"&#39;", "'",
		"&#34;", `"`,
		"&quot;", `"`,
		"&nbsp;", " ",
	)
)

// newPolicy allows only the tags gofpdf's HTML writer understands.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "u", "br", "center", "right")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(false)
	p.RequireParseableURLs(true)
	return p
}

// simplifyHTML reduces a rendered page to inline markup and line breaks.
func simplifyHTML(policy *bluemonday.Policy, in string) string {
	s := strings.NewReplacer(
		"<strong>", "<b>", "</strong>", "</b>",
		"<em>", "<i>", "</em>", "</i>",
	).Replace(in)

	s = headingOpen.ReplaceAllString(s, "<b>")
	s = headingClose.ReplaceAllString(s, "</b><br>")
	s = tableCell.ReplaceAllString(s, "  ")
	s = lineBreakTags.ReplaceAllString(s, "<br>")

	s = policy.Sanitize(s)
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "<br/>", "<br>")
	s = strings.ReplaceAll(s, " <br>", "<br>")
	s = strings.ReplaceAll(s, "<br> ", "<br>")
	s = leadingBreaks.ReplaceAllString(s, "")
	s = repeatBreaks.ReplaceAllString(s, "<br><br>")

	return strings.TrimSpace(entities.Replace(s))
}
