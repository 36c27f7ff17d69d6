package linkedin_test

import (
	"testing"

	"github.com/adarshmisra/portfolio/internal/linkedin"
	"github.com/stretchr/testify/assert"
)

func TestExtractOpenGraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
		want string
		ok   bool
	}{
		{
			name: "double quotes with entities",
			page: `<head><meta property="og:image" content="https://media.licdn.com/dms/image/v2/abc/profile.jpg?e=1&amp;v=beta&amp;t=xyz"></head>`,
			want: "https://media.licdn.com/dms/image/v2/abc/profile.jpg?e=1&v=beta&t=xyz",
			ok:   true,
		},
		{
			name: "single quotes mixed case",
			page: `<META Property='og:image' Content='https://example.com/a.png'>`,
			want: "https://example.com/a.png",
			ok:   true,
		},
		{
			name: "content before property",
			page: `<meta content="https://example.com/b.png" property="og:image" />`,
			want: "https://example.com/b.png",
			ok:   true,
		},
		{
			name: "other og tags only",
			page: `<meta property="og:title" content="Adarsh Misra">`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := linkedin.ExtractOpenGraph(tt.page)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCDN(t *testing.T) {
	t.Parallel()

	page := `<img class="pv-top-card" src="https://media.licdn.com/dms/image/D4D03AQ/profile-displayphoto-shrink_800_800/0/1?e=2&amp;t=abc" alt="">`
	got, ok := linkedin.ExtractCDN(page)
	assert.True(t, ok)
	assert.Equal(t, "https://media.licdn.com/dms/image/D4D03AQ/profile-displayphoto-shrink_800_800/0/1?e=2&t=abc", got)

	got, ok = linkedin.ExtractCDN(`<img src='HTTP://MEDIA.LICDN.COM/dms/image/X/y.jpg'>`)
	assert.True(t, ok)
	assert.Equal(t, "HTTP://MEDIA.LICDN.COM/dms/image/X/y.jpg", got)

	_, ok = linkedin.ExtractCDN(`<img src="https://static.licdn.com/aero/logo.svg">`)
	assert.False(t, ok)
}

func TestExtractJSONLD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page string
		want string
		ok   bool
	}{
		{
			name: "string image",
			page: `<script type="application/ld+json">{"@type":"Person","name":"A","image":"https://example.com/p.jpg"}</script>`,
			want: "https://example.com/p.jpg",
			ok:   true,
		},
		{
			name: "image object",
			page: `<script type='application/ld+json' id="x">
				{"@type":"Person","image":{"@type":"ImageObject","contentUrl":"https://example.com/obj.jpg"}}
			</script>`,
			want: "https://example.com/obj.jpg",
			ok:   true,
		},
		{
			name: "graph with image list",
			page: `<script type="application/ld+json">{"@graph":[{"@type":"WebPage"},{"@type":"Person","image":[{"url":"https://example.com/g.jpg"}]}]}</script>`,
			want: "https://example.com/g.jpg",
			ok:   true,
		},
		{
			name: "malformed block skipped for a later valid one",
			page: `<script type="application/ld+json">{not json</script>
				<script type="application/ld+json">{"image":"https://example.com/second.jpg"}</script>`,
			want: "https://example.com/second.jpg",
			ok:   true,
		},
		{
			name: "malformed only",
			page: `<script type="application/ld+json">{"image": </script>`,
		},
		{
			name: "no image field",
			page: `<script type="application/ld+json">{"@type":"Person","name":"A"}</script>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := linkedin.ExtractJSONLD(tt.page)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Order(t *testing.T) {
	t.Parallel()

	all := `<meta property="og:image" content="https://example.com/og.jpg">
		<img src="https://media.licdn.com/dms/image/cdn.jpg">
		<script type="application/ld+json">{"image":"https://example.com/ld.jpg"}</script>`

	u, method, ok := linkedin.Extract(all)
	assert.True(t, ok)
	assert.Equal(t, linkedin.MethodOpenGraph, method)
	assert.Equal(t, "https://example.com/og.jpg", u)

	noOG := `<img src="https://media.licdn.com/dms/image/cdn.jpg">
		<script type="application/ld+json">{"image":"https://example.com/ld.jpg"}</script>`
	u, method, ok = linkedin.Extract(noOG)
	assert.True(t, ok)
	assert.Equal(t, linkedin.MethodCDN, method)
	assert.Equal(t, "https://media.licdn.com/dms/image/cdn.jpg", u)

	onlyLD := `<script type="application/ld+json">{"image":"https://example.com/ld.jpg"}</script>`
	u, method, ok = linkedin.Extract(onlyLD)
	assert.True(t, ok)
	assert.Equal(t, linkedin.MethodJSONLD, method)
	assert.Equal(t, "https://example.com/ld.jpg", u)

	_, _, ok = linkedin.Extract(`<html><body>authwall</body></html>`)
	assert.False(t, ok)
}
