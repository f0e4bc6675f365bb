// Package render writes fortunes in the content types a client can ask for.
//
// Supported types are text/plain, application/xml and text/xml,
// text/html and application/xhtml+xml, and application/json. Media type
// parameters such as charset are ignored.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strconv"
	"strings"

	"github.com/meigma/fortune"
)

// ErrUnsupportedContentType is returned for a content type no Format handles.
var ErrUnsupportedContentType = errors.New("render: unsupported content type")

// Format is an output encoding of a fortune.
type Format int

// Supported formats.
const (
	Text Format = iota
	XML
	HTML
	JSON
)

const (
	xmlPreamble = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
	br          = "<br />"
)

// markup escapes the characters that break XML and HTML text content.
var markup = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var mediaTypes = map[string]Format{
	"text/plain":            Text,
	"application/xml":       XML,
	"text/xml":              XML,
	"text/html":             HTML,
	"application/xhtml+xml": HTML,
	"application/json":      JSON,

	// Short names accepted on the command line and in configuration.
	"text": Text,
	"xml":  XML,
	"html": HTML,
	"json": JSON,
}

// Parse returns the Format serving contentType.
func Parse(contentType string) (Format, error) {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if strings.Contains(mediaType, "/") {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return 0, fmt.Errorf("%w: [%s]: %w", ErrUnsupportedContentType, contentType, err)
		}
		mediaType = mt
	}
	f, ok := mediaTypes[mediaType]
	if !ok {
		return 0, fmt.Errorf("%w: [%s]", ErrUnsupportedContentType, contentType)
	}
	return f, nil
}

// ContentType returns the canonical media type of f.
func (f Format) ContentType() string {
	switch f {
	case Text:
		return "text/plain; charset=utf-8"
	case XML:
		return "application/xml"
	case HTML:
		return "text/html; charset=utf-8"
	case JSON:
		return "application/json"
	default:
		return ""
	}
}

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case XML:
		return "xml"
	case HTML:
		return "html"
	case JSON:
		return "json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// Render writes cookie to w encoded for contentType.
func Render(w io.Writer, cookie fortune.Fortune, contentType string) error {
	f, err := Parse(contentType)
	if err != nil {
		return err
	}
	content, err := f.Encode(cookie)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}

// Encode returns cookie in format f. Text output carries no trailing
// newline.
func (f Format) Encode(cookie fortune.Fortune) ([]byte, error) {
	switch f {
	case Text:
		return encodeText(cookie), nil
	case XML:
		return encodeXML(cookie), nil
	case HTML:
		return encodeHTML(cookie), nil
	case JSON:
		return json.Marshal(cookie)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, f)
	}
}

func encodeText(f fortune.Fortune) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "category=%s\nnumber=%d\n", f.Category, f.Number)
	sb.WriteString(strings.Join(f.Lines, "\n"))
	return []byte(sb.String())
}

func encodeXML(f fortune.Fortune) []byte {
	var sb strings.Builder
	sb.WriteString(xmlPreamble)
	fmt.Fprintf(&sb, `<fortune category="%s" number="%d"><lines>`, attr(f.Category), f.Number)
	for _, line := range f.Lines {
		sb.WriteString("<line>")
		sb.WriteString(markup.Replace(line))
		sb.WriteString("</line>")
	}
	sb.WriteString("</lines></fortune>")
	return []byte(sb.String())
}

func encodeHTML(f fortune.Fortune) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div><p>Cookie number %d selected from category %s.", f.Number, markup.Replace(f.Category))
	sb.WriteString(br)
	for i, line := range f.Lines {
		if i > 0 {
			sb.WriteString(br)
		}
		sb.WriteString(markup.Replace(line))
	}
	sb.WriteString(br)
	sb.WriteString("</p></div>")
	return []byte(sb.String())
}

// attr escapes a value for a double-quoted XML attribute.
func attr(s string) string {
	return strings.ReplaceAll(markup.Replace(s), `"`, "&quot;")
}
