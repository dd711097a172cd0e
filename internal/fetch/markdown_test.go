package fetch

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markdown(t *testing.T, doc string, opts Options) string {
	t.Helper()
	md, err := Markdown([]byte(doc), opts)
	require.NoError(t, err)
	return md
}

func TestMarkdown_Document(t *testing.T) {
	doc := `<html><head><title>Test Page</title><style>p { color: red }</style></head>
<body>
<h1>Heading</h1>
<p>Hello <strong>bold</strong> and <em>it</em> <a href="/x">link</a>.</p>
<script>alert(1)</script>
</body></html>`

	assert.Equal(t, "Test Page\n\n# Heading\n\nHello **bold** and _it_ [link](/x).", markdown(t, doc, Options{}))
}

func TestMarkdown_Elements(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"title", `<title> My   Title </title>`, "My Title"},
		{"heading levels", `<h2>Two</h2><h6>Six</h6>`, "## Two\n\n###### Six"},
		{"inline spacing", `<p>a<b> b </b>c</p>`, "a **b** c"},
		{"inline code", `<p>use <code>go test</code> here</p>`, "use `go test` here"},
		{"code block", "<pre><code class=\"language-go\">func main() {\n}\n</code></pre>", "```go\nfunc main() {\n}\n```"},
		{"blockquote", `<blockquote><p>quoted</p></blockquote>`, "> quoted"},
		{"definition list", `<dl><dt>Term</dt><dd>Meaning</dd></dl>`, "**Term:** Meaning"},
		{"image", `<img src="a.png" alt="An image">`, "![An image](a.png)"},
		{"javascript link", `<a href="javascript:void(0)">click</a>`, "click"},
		{"empty link", `<p>x<a href="/y"></a></p>`, "x"},
		{"rule", `<p>a</p><hr><p>b</p>`, "a\n\n---\n\nb"},
		{"strike", `<del>gone</del>`, "~~gone~~"},
		{"ordered start", `<ol start="3"><li>three</li><li>four</li></ol>`, "3. three\n4. four"},
		{"form controls dropped", `<p>Name <input value="x"></p>`, "Name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markdown(t, tt.html, Options{}))
		})
	}
}

func TestMarkdown_Lists(t *testing.T) {
	md := markdown(t, `<ul><li>one</li><li>two <ul><li>nested</li></ul></li></ul>`, Options{})

	assert.Contains(t, md, "- one\n- two")
	assert.Contains(t, md, "\n  - nested")
}

func TestMarkdown_Table(t *testing.T) {
	doc := `<table>
<thead><tr><th>Name</th><th>Age</th></tr></thead>
<tbody><tr><td>Ann</td><td>30</td></tr><tr><td>B|b</td></tr></tbody>
</table>`

	want := "| Name | Age |\n|---|---|\n| Ann | 30 |\n| B\\|b |  |"
	assert.Equal(t, want, markdown(t, doc, Options{}))
}

func TestMarkdown_MainOnly(t *testing.T) {
	doc := `<body><header>Top</header><nav><a href="/">Home</a></nav>
<main><p>Body</p></main><footer>Bottom</footer></body>`

	full := markdown(t, doc, Options{})
	for _, s := range []string{"Top", "[Home](/)", "Body", "Bottom"} {
		assert.Contains(t, full, s)
	}

	assert.Equal(t, "Body", markdown(t, doc, Options{MainOnly: true}))
}

func TestMarkdown_Base(t *testing.T) {
	base, err := url.Parse("https://example.com/docs/page")
	require.NoError(t, err)

	md := markdown(t, `<a href="../x">up</a> <img src="img.png" alt="i">`, Options{Base: base})
	assert.Contains(t, md, "[up](https://example.com/x)")
	assert.Contains(t, md, "![i](https://example.com/docs/img.png)")
}
