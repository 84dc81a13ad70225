package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraphs become breaks",
			in:   "<p>Dear Jane</p>\n<p>Thank you</p>",
			want: "Dear Jane<br>Thank you<br>",
		},
		{
			name: "headings are bold",
			in:   "<h1>Summary</h1>body",
			want: "<b>Summary</b><br>body",
		},
		{
			name: "strong and em map to b and i",
			in:   "<strong>A</strong> <em>B</em>",
			want: "<b>A</b> <i>B</i>",
		},
		{
			name: "scripts and styles are dropped",
			in:   "<style>p{color:red}</style><script>alert(1)</script>text",
			want: "text",
		},
		{
			name: "links keep href",
			in:   `<a href="mailto:support@example.com" class="x">mail</a>`,
			want: `<a href="mailto:support@example.com">mail</a>`,
		},
		{
			name: "whitespace collapses",
			in:   "a   \n\t b",
			want: "a b",
		},
		{
			name: "entities decoded",
			in:   "Fees &amp; charges",
			want: "Fees & charges",
		},
		{
			name: "escaped angle brackets stay text",
			in:   "Equity &lt;50% &gt; bonds",
			want: "Equity \u203950% > bonds",
		},
		{
			name: "raw less-than is not a tag",
			in:   "<p>a < b</p>",
			want: "a \u2039 b<br>",
		},
		{
			name: "leading breaks trimmed",
			in:   "<div></div><div>x</div>",
			want: "x<br>",
		},
	}

	policy := newPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simplifyHTML(policy, tt.in))
		})
	}
}
