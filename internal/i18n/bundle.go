package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"
)

//go:embed messages/*.json
var embedded embed.FS

// Bundle holds one flat key→string table per locale. Nested message trees
// are flattened to dot-separated keys when the bundle is loaded.
type Bundle struct {
	dict map[Locale]map[string]string
}

// LoadEmbedded loads the message tables compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	sub, err := fs.Sub(embedded, "messages")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads <dir>/<locale>.json for every supported locale.
func LoadDir(dir string) (*Bundle, error) {
	return Load(os.DirFS(dir))
}

// Load reads <locale>.json from fsys for every supported locale. The default
// locale's table is required; other missing tables load as empty, so every
// key in them falls back to the key itself.
func Load(fsys fs.FS) (*Bundle, error) {
	b := &Bundle{dict: make(map[Locale]map[string]string, len(Locales))}
	for _, l := range Locales {
		raw, err := fs.ReadFile(fsys, string(l)+".json")
		if err != nil {
			if l == DefaultLocale {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			b.dict[l] = map[string]string{}
			continue
		}
		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		b.dict[l] = flat
	}
	return b, nil
}

// New builds a bundle from already flat tables. Useful for tests and for
// callers that source messages elsewhere.
func New(tables map[Locale]map[string]string) *Bundle {
	b := &Bundle{dict: make(map[Locale]map[string]string, len(tables))}
	for l, m := range tables {
		cp := make(map[string]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		b.dict[l] = cp
	}
	return b
}

// flatten keeps string leaves only; numbers, booleans and arrays are not
// addressable as messages.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

var placeholder = regexp.MustCompile(`\{([^{}]+)\}`)

// T translates key for locale. A key that is not in the locale's table is
// returned unchanged so missing translations stay visible. Every {name}
// placeholder with a matching entry in params is replaced; others are kept.
func (b *Bundle) T(locale Locale, key string, params map[string]any) string {
	msg, ok := b.lookup(locale, key)
	if !ok {
		return key
	}
	if len(params) == 0 {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		if v, ok := params[m[1:len(m)-1]]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

// Has reports whether key has a translation in locale.
func (b *Bundle) Has(locale Locale, key string) bool {
	_, ok := b.lookup(locale, key)
	return ok
}

func (b *Bundle) lookup(locale Locale, key string) (string, bool) {
	m, ok := b.dict[locale]
	if !ok {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// Messages returns a copy of the flat table for locale, optionally limited to
// keys under prefix (e.g. "nav").
func (b *Bundle) Messages(locale Locale, prefix string) map[string]string {
	m := b.dict[locale]
	out := make(map[string]string, len(m))
	for k, v := range m {
		if prefix == "" || k == prefix || strings.HasPrefix(k, prefix+".") {
			out[k] = v
		}
	}
	return out
}

// Keys lists every key known for locale, sorted.
func (b *Bundle) Keys(locale Locale) []string {
	m := b.dict[locale]
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Missing lists keys present in the default locale but not in locale.
func (b *Bundle) Missing(locale Locale) []string {
	var out []string
	for _, k := range b.Keys(DefaultLocale) {
		if !b.Has(locale, k) {
			out = append(out, k)
		}
	}
	return out
}
