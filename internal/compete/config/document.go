package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"compete/internal/compete/template"
	pkgerrors "compete/pkg/errors"
)

// decoder walks a parsed document and remembers keys no field consumed.
type decoder struct {
	unused []string
	seen   map[string]bool
}

func newDecoder() *decoder {
	return &decoder{seen: make(map[string]bool)}
}

func (d *decoder) report(path string) {
	if d.seen[path] {
		return
	}
	d.seen[path] = true
	d.unused = append(d.unused, path)
}

// trial runs fn and discards anything it reported if it fails.
func (d *decoder) trial(fn func() error) error {
	mark := len(d.unused)
	if err := fn(); err != nil {
		for _, path := range d.unused[mark:] {
			delete(d.seen, path)
		}
		d.unused = d.unused[:mark]
		return err
	}
	return nil
}

// table is one TOML table being consumed field by field.
type table struct {
	d    *decoder
	path string
	m    map[string]any
	used map[string]bool
}

func (d *decoder) root(m map[string]any) *table {
	return &table{d: d, m: m, used: make(map[string]bool)}
}

// fresh returns a view of the same table with nothing consumed yet.
func (t *table) fresh() *table {
	return &table{d: t.d, path: t.path, m: t.m, used: make(map[string]bool)}
}

func (t *table) keyPath(key string) string {
	if t.path == "" {
		return key
	}
	return t.path + "." + key
}

func (t *table) where() string {
	if t.path == "" {
		return "the root table"
	}
	return "`" + t.path + "`"
}

func (t *table) take(key string) (any, bool) {
	v, ok := t.m[key]
	if ok {
		t.used[key] = true
	}
	return v, ok
}

func (t *table) leftover() []string {
	var keys []string
	for key := range t.m {
		if !t.used[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// finish reports every key nothing consumed. Used for plain blocks.
func (t *table) finish() {
	for _, key := range t.leftover() {
		t.d.report(t.keyPath(key))
	}
}

// strict fails on the first key nothing consumed. Used for variant shapes.
func (t *table) strict() error {
	if keys := t.leftover(); len(keys) > 0 {
		return pkgerrors.Newf(pkgerrors.ConfigParseFailed, "unknown field `%s`", t.keyPath(keys[0]))
	}
	return nil
}

func (t *table) missing(key string) error {
	return pkgerrors.Newf(pkgerrors.ConfigParseFailed, "missing field `%s`", t.keyPath(key))
}

func (t *table) mismatch(key, want string, got any) error {
	return pkgerrors.Newf(pkgerrors.ConfigParseFailed,
		"invalid type for `%s`: expected %s, found %s", t.keyPath(key), want, kindOf(got))
}

func (t *table) invalid(key string, err error) error {
	return pkgerrors.Wrapf(err, pkgerrors.ConfigParseFailed, "invalid value for `%s`", t.keyPath(key))
}

func (t *table) str(key string) (string, bool, error) {
	v, ok := t.take(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, t.mismatch(key, "a string", v)
	}
	return s, true, nil
}

func (t *table) requiredStr(key string) (string, error) {
	s, ok, err := t.str(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", t.missing(key)
	}
	return s, nil
}

func (t *table) optStr(key string) (*string, error) {
	s, ok, err := t.str(key)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (t *table) strList(key string) ([]string, bool, error) {
	v, ok := t.take(key)
	if !ok {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false, t.mismatch(key, "an array of strings", v)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false, t.mismatch(fmt.Sprintf("%s[%d]", key, i), "a string", item)
		}
		out = append(out, s)
	}
	return out, true, nil
}

func (t *table) strMap(key string) (map[string]string, bool, error) {
	v, ok := t.take(key)
	if !ok {
		return nil, false, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false, t.mismatch(key, "a table of strings", v)
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, false, t.mismatch(key+"."+k, "a string", item)
		}
		out[k] = s
	}
	return out, true, nil
}

func (t *table) sub(key string) (*table, bool, error) {
	v, ok := t.take(key)
	if !ok {
		return nil, false, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false, t.mismatch(key, "a table", v)
	}
	return &table{d: t.d, path: t.keyPath(key), m: m, used: make(map[string]bool)}, true, nil
}

func (t *table) requiredSub(key string) (*table, error) {
	sub, ok, err := t.sub(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, t.missing(key)
	}
	return sub, nil
}

type compileFunc func(string) (*template.Template, error)

func (t *table) template(key string, compile compileFunc) (*template.Template, bool, error) {
	s, ok, err := t.str(key)
	if err != nil || !ok {
		return nil, false, err
	}
	tpl, err := compile(s)
	if err != nil {
		return nil, false, t.invalid(key, err)
	}
	return tpl, true, nil
}

func (t *table) requiredTemplate(key string, compile compileFunc) (*template.Template, error) {
	tpl, ok, err := t.template(key, compile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, t.missing(key)
	}
	return tpl, nil
}

func (t *table) templates(key string, compile compileFunc) ([]*template.Template, error) {
	srcs, ok, err := t.strList(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, t.missing(key)
	}
	out := make([]*template.Template, 0, len(srcs))
	for i, src := range srcs {
		tpl, err := compile(src)
		if err != nil {
			return nil, t.invalid(fmt.Sprintf("%s[%d]", key, i), err)
		}
		out = append(out, tpl)
	}
	return out, nil
}

// expectTag consumes the discriminator of an internally tagged shape.
func (t *table) expectTag(key, want string) error {
	got, err := t.requiredStr(key)
	if err != nil {
		return err
	}
	if got != want {
		return pkgerrors.Newf(pkgerrors.ConfigParseFailed,
			"unknown variant `%s` for `%s`, expected `%s`", got, t.keyPath(key), want)
	}
	return nil
}

// shape is one candidate form of a polymorphic value.
type shape[T any] struct {
	name   string
	decode func(*table) (T, error)
}

// resolve decodes a polymorphic table. A recognised `kind` selects its shape
// outright; otherwise the fallbacks are tried in order and the last failure
// is surfaced when none matches.
func resolve[T any](t *table, tagged []shape[T], fallbacks []shape[T]) (T, error) {
	if kind, ok := t.m["kind"].(string); ok {
		for _, s := range tagged {
			if s.name == kind {
				return s.decode(t.fresh())
			}
		}
	}

	var zero T
	var lastErr error
	names := make([]string, 0, len(fallbacks))
	for _, s := range fallbacks {
		names = append(names, s.name)
		var out T
		err := t.d.trial(func() error {
			var err error
			out, err = s.decode(t.fresh())
			return err
		})
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		kind, ok := t.m["kind"]
		if !ok {
			return zero, pkgerrors.Wrap(t.missing("kind"), pkgerrors.VariantResolutionFailed)
		}
		tags := make([]string, 0, len(tagged))
		for _, s := range tagged {
			tags = append(tags, "`"+s.name+"`")
		}
		return zero, pkgerrors.Newf(pkgerrors.VariantResolutionFailed,
			"unknown variant `%v` for `%s`, expected one of %s", kind, t.keyPath("kind"), strings.Join(tags, ", "))
	}
	return zero, pkgerrors.Wrapf(lastErr, pkgerrors.VariantResolutionFailed,
		"%s did not match any of [%s]", t.where(), strings.Join(names, ", "))
}

func kindOf(v any) string {
	switch v.(type) {
	case string:
		return "a string"
	case int64, int, uint64:
		return "an integer"
	case float64:
		return "a float"
	case bool:
		return "a boolean"
	case []any:
		return "an array"
	case map[string]any:
		return "a table"
	case time.Time:
		return "a datetime"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", v)
	}
}
