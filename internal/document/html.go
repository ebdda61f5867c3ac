package document

import (
	"net/url"
	"path"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/net/html"
)

var assetExts = []string{".css", ".js", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".woff", ".woff2"}

// ExtractMainText returns the visible text of a page, one trimmed line per
// text node, without script and style content.
func ExtractMainText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var lines []string
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, skip bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				skip = true
			}
		}
		if n.Type == html.TextNode && !skip {
			// single characters are mostly separators and icons
			if t := strings.TrimSpace(n.Data); len(t) > 1 {
				lines = append(lines, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, skip)
		}
	}
	walk(doc, false)

	return strings.Join(lines, "\n")
}

// ExtractLinks lists the unique same-host page links of a document, resolved
// against base, without query strings, fragments or static assets.
func ExtractLinks(htmlStr string, base *url.URL) []string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				if link, ok := resolve(a.Val, base); ok {
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return lo.Uniq(links)
}

func resolve(href string, base *url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u = base.ResolveReference(u)
	if u.Host != base.Host || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	if lo.Contains(assetExts, strings.ToLower(path.Ext(u.Path))) {
		return "", false
	}
	return u.Scheme + "://" + u.Host + u.Path, true
}
