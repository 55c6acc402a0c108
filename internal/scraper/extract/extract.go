package extract

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// Metadata is the page identification pulled from HTML before the content
// is reduced to markdown
type Metadata struct {
	Title       string
	CompanyName string
}

// noiseSelector matches elements that never contain posting content
const noiseSelector = "script, style, noscript, iframe, svg, nav, footer"

var multiNewline = regexp.MustCompile(`\n{3,}`)

// ParseMetadata extracts the posting title and company from page HTML.
// Title precedence: og:title, then meta[name=title], then <title>.
// Company comes from og:site_name only. Missing values stay empty,
// they are never invented.
func ParseMetadata(html string) Metadata {
	var meta Metadata

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta
	}

	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(v) != "" {
		meta.Title = strings.TrimSpace(v)
	} else if v, ok := doc.Find(`meta[name="title"]`).Attr("content"); ok && strings.TrimSpace(v) != "" {
		meta.Title = strings.TrimSpace(v)
	} else {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if v, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok && strings.TrimSpace(v) != "" {
		meta.CompanyName = strings.TrimSpace(v)
	}

	return meta
}

// FallbackContent strips non-content elements and returns the remaining
// body HTML. Used when the readability pass declines a page.
func FallbackContent(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Html()
	}
	return body.Html()
}

// ToMarkdown converts HTML content to GitHub-flavored markdown
func ToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return markdown, nil
}

// Normalize collapses excess blank lines and prepends a title heading when
// the markdown does not already start with that exact title
func Normalize(markdown string, meta Metadata) string {
	markdown = multiNewline.ReplaceAllString(markdown, "\n\n")
	markdown = strings.TrimSpace(markdown)

	if meta.Title != "" && !hasTitleHeading(markdown, meta.Title) {
		markdown = "# " + meta.Title + "\n\n" + markdown
	}
	return markdown
}

func hasTitleHeading(markdown, title string) bool {
	return strings.HasPrefix(strings.ToLower(markdown), strings.ToLower("# "+title))
}

// FirstHeading returns the text of the first markdown heading, used when a
// source provides markdown but no HTML metadata
func FirstHeading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	return ""
}
