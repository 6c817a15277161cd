package netbilling

import "strings"

// Value is one decoded form field: either a single string or an ordered
// list collected from a repeated key.
type Value struct {
	list   []string
	isList bool
}

// Scalar returns a single-valued field.
func Scalar(v string) Value {
	return Value{list: []string{v}}
}

// List returns a multi-valued field.
func List(vs ...string) Value {
	out := make([]string, len(vs))
	copy(out, vs)
	return Value{list: out, isList: true}
}

// IsList reports whether the field was repeated (or built as a list).
func (v Value) IsList() bool {
	return v.isList
}

// String returns the scalar value, or the first element of a list.
func (v Value) String() string {
	if len(v.list) == 0 {
		return ""
	}
	return v.list[0]
}

// Strings returns every value in order. A scalar becomes a one-element slice.
func (v Value) Strings() []string {
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

// Len is the number of values carried.
func (v Value) Len() int {
	return len(v.list)
}

func (v Value) add(s string) Value {
	list := make([]string, len(v.list), len(v.list)+1)
	copy(list, v.list)
	return Value{list: append(list, s), isList: true}
}

// Values is an insertion-ordered form mapping.
type Values struct {
	keys   []string
	fields map[string]Value
}

// NewValues returns an empty mapping.
func NewValues() *Values {
	return &Values{fields: make(map[string]Value)}
}

// Get returns the field stored under key.
func (vs *Values) Get(key string) (Value, bool) {
	if vs == nil {
		return Value{}, false
	}
	v, ok := vs.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (vs *Values) Has(key string) bool {
	_, ok := vs.Get(key)
	return ok
}

// Set replaces the field under key, keeping its original position.
func (vs *Values) Set(key string, v Value) {
	if _, ok := vs.fields[key]; !ok {
		vs.keys = append(vs.keys, key)
	}
	vs.fields[key] = v
}

// SetString is Set with a scalar.
func (vs *Values) SetString(key, v string) {
	vs.Set(key, Scalar(v))
}

// Add appends v under key. A repeated key turns the field into a list.
func (vs *Values) Add(key, v string) {
	existing, ok := vs.fields[key]
	if !ok {
		vs.Set(key, Scalar(v))
		return
	}
	vs.fields[key] = existing.add(v)
}

// Delete removes key.
func (vs *Values) Delete(key string) {
	if _, ok := vs.fields[key]; !ok {
		return
	}
	delete(vs.fields, key)
	for i, k := range vs.keys {
		if k == key {
			vs.keys = append(vs.keys[:i], vs.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (vs *Values) Keys() []string {
	if vs == nil {
		return nil
	}
	out := make([]string, len(vs.keys))
	copy(out, vs.keys)
	return out
}

// Len returns the number of distinct keys.
func (vs *Values) Len() int {
	if vs == nil {
		return 0
	}
	return len(vs.keys)
}

// Decode parses a Perl CGI style query string. Values are URL-decoded, keys
// are kept exactly as sent, and repeated keys collect into ordered lists.
func Decode(raw string) *Values {
	out := NewValues()
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		out.Add(key, decodeComponent(value))
	}
	return out
}

// decodeComponent follows urldecode: "+" is a space, %XX with two hex digits
// is a byte, and malformed escapes are kept as sent.
func decodeComponent(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			out = append(out, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
