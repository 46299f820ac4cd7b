package widget

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseFormatted parses FormatContent output the way the page would.
func parseFormatted(t *testing.T, markup string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	require.NoError(t, err)
	return nodes
}

func findElements(nodes []*html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return found
}

func nodeAttrs(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func nodeText(nodes []*html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return sb.String()
}

func assertSafeLink(t *testing.T, a *html.Node, href string) {
	t.Helper()
	got := nodeAttrs(a)
	assert.Equal(t, href, got["href"])
	assert.Equal(t, "_blank", got["target"])
	rel := strings.Fields(got["rel"])
	assert.Contains(t, rel, "noopener")
	assert.Contains(t, rel, "noreferrer")
	assert.Len(t, got, 3, "unexpected attributes %v", got)
}

func TestFormatContentLinkAndLineBreak(t *testing.T) {
	out := FormatContent("Visit https://example.com now\nThanks")

	assert.True(t, strings.HasPrefix(out, "Visit <a "), out)
	assert.True(t, strings.HasSuffix(out, "</a> now<br>Thanks"), out)
	assert.Equal(t, 1, strings.Count(out, "<a "))
	assert.Equal(t, 1, strings.Count(out, "<br"))

	nodes := parseFormatted(t, out)
	links := findElements(nodes, "a")
	require.Len(t, links, 1)
	assertSafeLink(t, links[0], "https://example.com")
	assert.Equal(t, "https://example.com", nodeText([]*html.Node{links[0]}))
	assert.Equal(t, "Visit https://example.com nowThanks", nodeText(nodes))
}

func TestFormatContentPlainText(t *testing.T) {
	assert.Equal(t, "Bonjour", FormatContent("Bonjour"))
}

func TestFormatContentNeutralizesMarkup(t *testing.T) {
	out := FormatContent(`<script>alert("x")</script><img src=x onerror=alert(1)>`)

	nodes := parseFormatted(t, out)
	assert.Empty(t, findElements(nodes, "script"))
	assert.Empty(t, findElements(nodes, "img"))
	assert.Equal(t, `<script>alert("x")</script><img src=x onerror=alert(1)>`, nodeText(nodes))
}

func TestFormatContentLineEndings(t *testing.T) {
	assert.Equal(t, "a<br>b<br>c", FormatContent("a\r\nb\rc"))
}

func TestFormatContentSeveralLinks(t *testing.T) {
	out := FormatContent("http://a.example and https://b.example/path?q=1&r=2")

	links := findElements(parseFormatted(t, out), "a")
	require.Len(t, links, 2)
	assertSafeLink(t, links[0], "http://a.example")
	assertSafeLink(t, links[1], "https://b.example/path?q=1&r=2")
}

func TestFormatContentQuotesStayInsideHref(t *testing.T) {
	out := FormatContent(`https://x.example/"onmouseover="alert(1)`)

	for _, n := range findElements(parseFormatted(t, out), "a") {
		assert.NotContains(t, nodeAttrs(n), "onmouseover")
		assert.True(t, strings.HasPrefix(nodeAttrs(n)["href"], "https://x.example/"))
	}
}

func TestFormatContentDropsOtherSchemes(t *testing.T) {
	out := FormatContent("javascript:alert(1) ftp://files.example")

	assert.Empty(t, findElements(parseFormatted(t, out), "a"))
	assert.Equal(t, "javascript:alert(1) ftp://files.example", out)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "09:05", FormatTime(time.Date(2025, 1, 1, 9, 5, 59, 0, time.UTC)))
}
