// Package fragment mirrors the search keyword into a URL fragment of the
// form "#?q=<keyword>" so a filtered sheet can be shared as a link.
package fragment

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryParam is the fragment query parameter holding the keyword
const QueryParam = "q"

// Parse extracts the keyword from a fragment such as "#?q=folder".
// Anything without a query part yields "". Only the first q pair is decoded,
// so malformed neighbours do not hide it; an undecodable value is kept raw.
func Parse(hash string) string {
	hash = strings.TrimPrefix(hash, "#")
	_, query, ok := strings.Cut(hash, "?")
	if !ok {
		return ""
	}
	for _, pair := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if decodeComponent(key) != QueryParam {
			continue
		}
		return decodeComponent(value)
	}
	return ""
}

// Format returns the fragment (without '#') for keyword.
// An empty keyword clears the fragment entirely.
func Format(keyword string) string {
	if keyword == "" {
		return ""
	}
	return fmt.Sprintf("?%s=%s", QueryParam, encodeComponent(keyword))
}

// ShareLink replaces the fragment of base with the one for keyword
func ShareLink(base, keyword string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid share url %q: %w", base, err)
	}
	u.Fragment = ""
	u.RawFragment = ""
	link := u.String()
	if f := Format(keyword); f != "" {
		link += "#" + f
	}
	return link, nil
}

// KeywordFromLink returns the keyword carried by a share link or a bare fragment
func KeywordFromLink(link string) (string, error) {
	if strings.HasPrefix(link, "#") || strings.HasPrefix(link, "?") {
		return Parse(link), nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", link, err)
	}
	return Parse(u.EscapedFragment()), nil
}

// componentUnreserved are the characters encodeURIComponent leaves as is
// but url.QueryEscape escapes.
var componentUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes like a browser's encodeURIComponent: spaces become
// %20 rather than '+' and !'()* stay literal.
func encodeComponent(s string) string {
	return componentUnreserved.Replace(url.QueryEscape(s))
}

// decodeComponent reads form-encoded text the way URLSearchParams does:
// '+' is a space and a bad escape leaves the input unchanged.
func decodeComponent(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
