package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/fortune"
)

var cookie = fortune.Fortune{
	Category: "art",
	Number:   4,
	Lines:    []string{"Art & <science>", "  -- someone"},
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        string
	}{
		{
			contentType: "text/plain",
			want:        "category=art\nnumber=4\nArt & <science>\n  -- someone",
		},
		{
			contentType: "application/xml",
			want: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
				`<fortune category="art" number="4"><lines>` +
				`<line>Art &amp; &lt;science&gt;</line><line>  -- someone</line>` +
				`</lines></fortune>`,
		},
		{
			contentType: "text/html",
			want: "<div><p>Cookie number 4 selected from category art." +
				"<br />Art &amp; &lt;science&gt;<br />  -- someone<br /></p></div>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, cookie, tt.contentType))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, cookie, "application/json; charset=utf-8"))

	var got fortune.Fortune
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, cookie, got)
	assert.Contains(t, buf.String(), `"category":"art"`)
}

func TestRenderEmptyLines(t *testing.T) {
	t.Parallel()

	f := fortune.Fortune{Category: "blank", Number: 1, Lines: []string{""}}
	out, err := HTML.Encode(f)
	require.NoError(t, err)
	assert.Equal(t, "<div><p>Cookie number 1 selected from category blank.<br /><br /></p></div>", string(out))

	out, err = Text.Encode(f)
	require.NoError(t, err)
	assert.Equal(t, "category=blank\nnumber=1\n", string(out))
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        Format
	}{
		{"text/plain", Text},
		{"text/plain; charset=utf-8", Text},
		{"TEXT/PLAIN", Text},
		{"application/xml", XML},
		{"text/xml", XML},
		{"application/xhtml+xml", HTML},
		{"text/html", HTML},
		{"application/json", JSON},
		{"json", JSON},
		{" html ", HTML},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnsupported(t *testing.T) {
	t.Parallel()

	for _, contentType := range []string{"", "image/png", "yaml", "text/"} {
		_, err := Parse(contentType)
		require.ErrorIs(t, err, ErrUnsupportedContentType, contentType)
	}

	var buf bytes.Buffer
	err := Render(&buf, cookie, "application/pdf")
	require.ErrorIs(t, err, ErrUnsupportedContentType)
	assert.Zero(t, buf.Len())

	_, err = Format(42).Encode(cookie)
	require.ErrorIs(t, err, ErrUnsupportedContentType)
	assert.Equal(t, "Format(42)", Format(42).String())
}

func TestContentType(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{Text, XML, HTML, JSON} {
		got, err := Parse(f.ContentType())
		require.NoError(t, err)
		assert.Equal(t, f, got)
		assert.Equal(t, f, mustParse(t, f.String()))
	}
}

func mustParse(t *testing.T, s string) Format {
	t.Helper()
	f, err := Parse(s)
	require.NoError(t, err)
	return f
}

func TestRenderEscapesCategory(t *testing.T) {
	t.Parallel()

	f := fortune.Fortune{Category: `a&b<"c">`, Number: 1, Lines: []string{"x"}}

	out, err := XML.Encode(f)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<fortune category="a&amp;b&lt;&quot;c&quot;&gt;" number="1">`)

	out, err = HTML.Encode(f)
	require.NoError(t, err)
	assert.Contains(t, string(out), `selected from category a&amp;b&lt;"c"&gt;.`)
}
