package linkedin

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
)

// Method names the heuristic that located an image.
type Method string

const (
	MethodOpenGraph Method = "og:image"
	MethodCDN       Method = "cdn"
	MethodJSONLD    Method = "json-ld"
)

var (
	ogImagePattern         = regexp.MustCompile(`(?i)<meta\s+property=["']og:image["']\s+content=["']([^"']+)["']`)
	ogImageReversedPattern = regexp.MustCompile(`(?i)<meta\s+content=["']([^"']+)["']\s+property=["']og:image["']`)
	cdnPattern             = regexp.MustCompile(`(?i)https?://media\.licdn\.com/dms/image/[^"'\s<>]+`)
	jsonLDPattern          = regexp.MustCompile(`(?is)<script[^>]*type=["']application/ld\+json["'][^>]*>(.*?)</script>`)
)

// Extract runs the heuristics in order against page markup and returns the
// first image URL found.
func Extract(page string) (string, Method, bool) {
	if u, ok := ExtractOpenGraph(page); ok {
		return u, MethodOpenGraph, true
	}
	if u, ok := ExtractCDN(page); ok {
		return u, MethodCDN, true
	}
	if u, ok := ExtractJSONLD(page); ok {
		return u, MethodJSONLD, true
	}
	return "", "", false
}

// ExtractOpenGraph reads the og:image meta tag.
func ExtractOpenGraph(page string) (string, bool) {
	for _, re := range []*regexp.Regexp{ogImagePattern, ogImageReversedPattern} {
		if m := re.FindStringSubmatch(page); m != nil && m[1] != "" {
			return html.UnescapeString(m[1]), true
		}
	}
	return "", false
}

// ExtractCDN finds the first media.licdn.com profile image URL in the page.
func ExtractCDN(page string) (string, bool) {
	m := cdnPattern.FindString(page)
	if m == "" {
		return "", false
	}
	return html.UnescapeString(m), true
}

// ExtractJSONLD decodes application/ld+json blocks and returns the first
// usable "image" value. Blocks that fail to decode are skipped.
func ExtractJSONLD(page string) (string, bool) {
	for _, m := range jsonLDPattern.FindAllStringSubmatch(page, -1) {
		var doc any
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &doc); err != nil {
			continue
		}
		if u, ok := imageFromNode(doc); ok {
			return u, true
		}
	}
	return "", false
}

func imageFromNode(node any) (string, bool) {
	switch n := node.(type) {
	case []any:
		for _, item := range n {
			if u, ok := imageFromNode(item); ok {
				return u, true
			}
		}
	case map[string]any:
		if u, ok := imageValue(n["image"]); ok {
			return u, true
		}
		if graph, ok := n["@graph"]; ok {
			return imageFromNode(graph)
		}
	}
	return "", false
}

// imageValue accepts the shapes schema.org allows for "image": a URL string,
// an ImageObject, or a list of either.
func imageValue(v any) (string, bool) {
	switch img := v.(type) {
	case string:
		img = strings.TrimSpace(img)
		return img, img != ""
	case map[string]any:
		for _, key := range []string{"url", "contentUrl"} {
			if s, ok := img[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	case []any:
		for _, item := range img {
			if u, ok := imageValue(item); ok {
				return u, true
			}
		}
	}
	return "", false
}
