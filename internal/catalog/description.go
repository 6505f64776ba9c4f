package catalog

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"AvisailYachts/internal/i18n"
)

var (
	markdown          = goldmark.New()
	descriptionPolicy = newDescriptionPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// RenderDescription turns broker Markdown into sanitized HTML. Raw HTML in the
// source is dropped.
func RenderDescription(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return descriptionPolicy.Sanitize(src)
	}
	return strings.TrimSpace(string(descriptionPolicy.SanitizeBytes(buf.Bytes())))
}

// DescriptionHTML is the rendered DisplayDescription for locale.
func DescriptionHTML(y Yacht, locale i18n.Locale) string {
	return RenderDescription(DisplayDescription(y, locale))
}
