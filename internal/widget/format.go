package widget

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// messagePolicy admits only what message formatting produces: links to
// http(s) URLs, opened in a new tab without opener or referrer, and line breaks.
var messagePolicy = bluemonday.NewPolicy().
	AllowElements("br").
	AllowAttrs("href").OnElements("a").
	AllowURLSchemes("http", "https").
	AllowRelativeURLs(false).
	RequireParseableURLs(true).
	AddTargetBlankToFullyQualifiedLinks(true).
	RequireNoReferrerOnLinks(true)

// FormatContent turns raw message text into markup that is safe to insert
// into the page: HTML is escaped first, then bare http(s) URLs become links
// opening in a new tab and newlines become <br>.
func FormatContent(raw string) string {
	out := html.EscapeString(newlines.Replace(raw))
	out = urlPattern.ReplaceAllString(out, `<a href="${0}">${0}</a>`)
	out = strings.ReplaceAll(out, "\n", "<br>")
	return messagePolicy.Sanitize(out)
}

// FormatTime renders the HH:MM shown under each message.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}
