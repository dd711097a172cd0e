package fetch

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options controls HTML to Markdown conversion.
type Options struct {
	// MainOnly drops page chrome: header, footer and nav elements.
	MainOnly bool

	// Base resolves relative link and image URLs. Nil leaves them as-is.
	Base *url.URL
}

// skipped elements are never rendered.
var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Canvas:   true,
	atom.Input:    true,
	atom.Select:   true,
	atom.Textarea: true,
}

// chrome elements are dropped when Options.MainOnly is set.
var chrome = map[atom.Atom]bool{
	atom.Header: true,
	atom.Footer: true,
	atom.Nav:    true,
}

// blocks are separated from their neighbours by a blank line.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Main: true, atom.Aside: true, atom.Header: true, atom.Footer: true,
	atom.Nav: true, atom.Figure: true, atom.Figcaption: true, atom.Address: true,
	atom.Details: true, atom.Summary: true, atom.Form: true, atom.Fieldset: true,
	atom.Body: true, atom.Html: true, atom.Center: true,
}

// Markdown converts an HTML document to Markdown. The page title, when
// present, is the first line.
func Markdown(doc []byte, opts Options) (string, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	c := &converter{opts: opts}
	w := &writer{}
	if title := collapse(textOf(find(root, atom.Title))); title != "" {
		w.raw(title)
		w.block()
	}
	c.children(w, root)
	return tidy(w.String()), nil
}

type converter struct {
	opts Options
}

func (c *converter) children(w *writer, n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.node(w, ch)
	}
}

// sub renders n's children into a fresh writer.
func (c *converter) sub(n *html.Node) string {
	w := &writer{}
	c.children(w, n)
	return w.String()
}

func (c *converter) node(w *writer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.DocumentNode:
		c.children(w, n)
		return
	case html.ElementNode:
	default:
		return
	}

	a := n.DataAtom
	if skipped[a] || (c.opts.MainOnly && chrome[a]) {
		return
	}

	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		if text := strings.TrimSpace(c.sub(n)); text != "" {
			w.block()
			w.raw(strings.Repeat("#", level) + " " + strings.ReplaceAll(text, "\n", " "))
			w.block()
		}
	case atom.Br:
		w.raw("  \n")
	case atom.Hr:
		w.block()
		w.raw("---")
		w.block()
	case atom.Strong, atom.B:
		c.wrap(w, n, "**")
	case atom.Em, atom.I:
		c.wrap(w, n, "_")
	case atom.Del, atom.S, atom.Strike:
		c.wrap(w, n, "~~")
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		c.code(w, n)
	case atom.Pre:
		c.pre(w, n)
	case atom.A:
		c.link(w, n)
	case atom.Img:
		c.image(w, n)
	case atom.Ul:
		c.list(w, n, false)
	case atom.Ol:
		c.list(w, n, true)
	case atom.Blockquote:
		c.quote(w, n)
	case atom.Table:
		c.table(w, n)
	case atom.Dl:
		c.definitions(w, n)
	default:
		if blocks[a] {
			w.block()
			c.children(w, n)
			w.block()
			return
		}
		c.children(w, n)
	}
}

// wrap surrounds inline content with mark, keeping the surrounding spaces
// outside the markers.
func (c *converter) wrap(w *writer, n *html.Node, mark string) {
	text := strings.TrimSpace(c.sub(n))
	if text == "" {
		w.text(textOf(n))
		return
	}
	c.inline(w, n, mark+text+mark)
}

// inline writes md in place of n, keeping a space on either side when n's
// text had one.
func (c *converter) inline(w *writer, n *html.Node, md string) {
	t := textOf(n)
	if t != "" && isSpace(t[0]) {
		w.text(" ")
	}
	w.raw(md)
	if t != "" && isSpace(t[len(t)-1]) {
		w.text(" ")
	}
}

func (c *converter) code(w *writer, n *html.Node) {
	text := collapse(textOf(n))
	if text == "" {
		return
	}
	fence := "`"
	if strings.Contains(text, "`") {
		fence = "``"
		text = " " + text + " "
	}
	c.inline(w, n, fence+text+fence)
}

func (c *converter) pre(w *writer, n *html.Node) {
	text := strings.TrimRight(textOf(n), "\n ")
	text = strings.TrimLeft(text, "\n")
	fence := "```"
	if strings.Contains(text, "```") {
		fence = "~~~"
	}

	lang := ""
	if code := find(n, atom.Code); code != nil {
		for _, cls := range strings.Fields(attr(code, "class")) {
			if l, ok := strings.CutPrefix(cls, "language-"); ok {
				lang = l
				break
			}
		}
	}

	w.block()
	w.raw(fence + lang + "\n" + text + "\n" + fence)
	w.block()
}

func (c *converter) link(w *writer, n *html.Node) {
	text := strings.TrimSpace(c.sub(n))
	href := strings.TrimSpace(attr(n, "href"))
	if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") || text == "" {
		c.children(w, n)
		return
	}
	c.inline(w, n, "["+strings.ReplaceAll(text, "\n", " ")+"]("+c.resolve(href)+")")
}

func (c *converter) image(w *writer, n *html.Node) {
	src := strings.TrimSpace(attr(n, "src"))
	if src == "" {
		return
	}
	w.raw("![" + collapse(attr(n, "alt")) + "](" + c.resolve(src) + ")")
}

func (c *converter) resolve(ref string) string {
	if c.opts.Base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.opts.Base.ResolveReference(u).String()
}

func (c *converter) list(w *writer, n *html.Node, ordered bool) {
	num := 1
	if s, err := strconv.Atoi(attr(n, "start")); err == nil {
		num = s
	}

	w.block()
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		marker := "- "
		if ordered {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		indent := strings.Repeat(" ", len(marker))

		lines := strings.Split(strings.TrimSpace(c.sub(li)), "\n")
		w.raw(marker + lines[0])
		for _, line := range lines[1:] {
			if line == "" {
				w.raw("\n")
				continue
			}
			w.raw("\n" + indent + line)
		}
		w.raw("\n")
	}
	w.block()
}

func (c *converter) quote(w *writer, n *html.Node) {
	body := strings.TrimSpace(c.sub(n))
	if body == "" {
		return
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	w.block()
	w.raw(strings.Join(lines, "\n"))
	w.block()
}

// table renders every row as a pipe table row; the first row is the header.
func (c *converter) table(w *writer, n *html.Node) {
	var rows [][]string
	width := 0
	walk(n, func(tr *html.Node) bool {
		if tr.DataAtom != atom.Tr {
			return true
		}
		var cells []string
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if td.Type == html.ElementNode && (td.DataAtom == atom.Td || td.DataAtom == atom.Th) {
				cells = append(cells, strings.ReplaceAll(collapse(textOf(td)), "|", `\|`))
			}
		}
		rows = append(rows, cells)
		width = max(width, len(cells))
		return false
	})
	if len(rows) == 0 || width == 0 {
		return
	}

	row := func(cells []string) string {
		for len(cells) < width {
			cells = append(cells, "")
		}
		return "| " + strings.Join(cells, " | ") + " |"
	}
	lines := []string{row(rows[0]), "|" + strings.Repeat("---|", width)}
	for _, r := range rows[1:] {
		lines = append(lines, row(r))
	}

	w.block()
	w.raw(strings.Join(lines, "\n"))
	w.block()
}

// definitions renders each term as "**term:** definition".
func (c *converter) definitions(w *writer, n *html.Node) {
	w.block()
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		text := collapse(textOf(ch))
		if text == "" {
			continue
		}
		switch ch.DataAtom {
		case atom.Dt:
			w.raw("**" + text + ":**")
		case atom.Dd:
			w.raw(" " + text + "\n")
		}
	}
	w.block()
}

// writer accumulates Markdown, collapsing whitespace in text runs.
type writer struct {
	buf []byte
}

func (w *writer) String() string { return string(w.buf) }

func (w *writer) raw(s string) { w.buf = append(w.buf, s...) }

// text appends s with whitespace runs collapsed to one space. Leading space
// is dropped at the start of a line or after another space.
func (w *writer) text(s string) {
	if s == "" {
		return
	}
	if isSpace(s[0]) && !w.atSpace() {
		w.raw(" ")
	}
	body := collapse(s)
	if body == "" {
		return
	}
	w.raw(body)
	if isSpace(s[len(s)-1]) {
		w.raw(" ")
	}
}

func (w *writer) atSpace() bool {
	if len(w.buf) == 0 {
		return true
	}
	last := w.buf[len(w.buf)-1]
	return last == ' ' || last == '\n'
}

// block ends the current line and leaves one blank line, unless nothing has
// been written yet.
func (w *writer) block() {
	w.buf = bytes.TrimRight(w.buf, " \t")
	if len(w.buf) == 0 {
		return
	}
	switch {
	case bytes.HasSuffix(w.buf, []byte("\n\n")):
	case bytes.HasSuffix(w.buf, []byte("\n")):
		w.raw("\n")
	default:
		w.raw("\n\n")
	}
}

// collapse replaces whitespace runs with single spaces and trims both ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// tidy trims trailing spaces outside code fences, squeezes blank line runs
// and trims the document.
func tidy(md string) string {
	lines := strings.Split(md, "\n")
	out := lines[:0]
	fenced, blank := false, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
		}
		if !fenced && !strings.HasSuffix(line, "  ") {
			line = strings.TrimRight(line, " \t")
		}
		if !fenced && trimmed == "" {
			blank++
			if blank > 1 {
				continue
			}
			line = ""
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// find returns the first element below n with atom a.
func find(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(x *html.Node) bool {
		if found != nil {
			return false
		}
		if x.DataAtom == a {
			found = x
			return false
		}
		return true
	})
	return found
}

// walk visits the elements below n in document order. Returning false from
// fn skips the element's subtree.
func walk(n *html.Node, fn func(*html.Node) bool) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && !fn(ch) {
			continue
		}
		walk(ch, fn)
	}
}

// textOf returns the concatenated text below n, or "" for nil.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		b.WriteString(textOf(ch))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
