package gitlab

import (
	"net/url"
	"strconv"
	"strings"
)

// Listing is a resource query: a fixed path plus optional filters.
//
// Query returns the canonical wire form, either the bare path or
// path?k1=v1&k2=v2. The filter order is fixed per resource and does not
// depend on the order in which setters were called.
type Listing interface {
	Query() string
}

// queryEncoder appends filters to a resource path. The first filter is
// preceded by '?', every later one by '&'.
type queryEncoder struct {
	builder strings.Builder
	sep     byte
}

func newQueryEncoder(path string) *queryEncoder {
	enc := &queryEncoder{sep: '?'}
	enc.builder.WriteString(path)

	return enc
}

// String returns the encoded path and query.
func (e *queryEncoder) String() string {
	return e.builder.String()
}

// pair writes name=value. value must already be escaped.
func (e *queryEncoder) pair(name, value string) {
	e.builder.WriteByte(e.sep)
	e.sep = '&'
	e.builder.WriteString(name)
	e.builder.WriteByte('=')
	e.builder.WriteString(value)
}

func (e *queryEncoder) boolean(name string, value *bool) {
	if value == nil {
		return
	}

	e.pair(name, strconv.FormatBool(*value))
}

func (e *queryEncoder) text(name string, value *string) {
	if value == nil {
		return
	}

	e.pair(name, EscapeQueryValue(*value))
}

// list writes a single element as name=v and two or more as
// name[]=v1&name[]=v2. Empty lists are omitted.
func (e *queryEncoder) list(name string, values []int) {
	if len(values) == 1 {
		e.pair(name, strconv.Itoa(values[0]))

		return
	}

	e.array(name, values)
}

// array always uses the bracketed form, even for a single element.
func (e *queryEncoder) array(name string, values []int) {
	for _, value := range values {
		e.pair(name+"[]", strconv.Itoa(value))
	}
}

// joined writes all values under one key, separated by commas.
func (e *queryEncoder) joined(name string, values []string) {
	if len(values) == 0 {
		return
	}

	escaped := make([]string, len(values))
	for i, value := range values {
		escaped[i] = EscapeQueryValue(value)
	}

	e.pair(name, strings.Join(escaped, ","))
}

// encodeEnum writes the wire token of a set enum; the zero value is absent.
func encodeEnum[E enum](enc *queryEncoder, name string, value E) {
	if value == 0 {
		return
	}

	enc.pair(name, value.String())
}

// EscapeQueryValue escapes free text for use as a query value. It follows
// url.QueryEscape (space becomes '+') but keeps '/' literal, so a namespaced
// value such as group/project is sent as is.
func EscapeQueryValue(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "%2F", "/")
}

// EscapePathSegment escapes an identifier placed inside a path segment. A
// namespaced project path group/project becomes group%2Fproject.
func EscapePathSegment(segment string) string {
	return url.PathEscape(segment)
}
