package mirror

import "strings"

// buildURL joins base (e.g. "https://host/api/v1") with a path and an
// ordered list of query parameters. Query parameters are emitted in the
// order given, matching the spec's "query parameters appear in insertion
// order" requirement so request signatures are deterministic in tests.
func buildURL(base, path string, query []queryParam) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) == 0 {
		return u
	}
	var b strings.Builder
	b.WriteString(u)
	b.WriteByte('?')
	for i, q := range query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(q.Key)
		b.WriteByte('=')
		b.WriteString(q.Value)
	}
	return b.String()
}

type queryParam struct {
	Key   string
	Value string
}

// resolveNext resolves a server-supplied continuation link against base,
// per the Design Notes' "opaque pagination cursors... resolution logic
// lives in a single URL builder": the link may be a fully-qualified URL,
// a path rooted at "/", a bare query string starting with "?", or carry a
// "grpc:" scheme prefix the mirror protocol uses for its RPC-parity
// continuation form.
func resolveNext(base, next string) string {
	switch {
	case strings.HasPrefix(next, "http://"), strings.HasPrefix(next, "https://"):
		return next
	case strings.HasPrefix(next, "grpc:"):
		return strings.TrimPrefix(next, "grpc:")
	case strings.HasPrefix(next, "?"):
		trimmedBase := strings.SplitN(base, "?", 2)[0]
		return trimmedBase + next
	case strings.HasPrefix(next, "/"):
		root := rootOf(base)
		return root + next
	default:
		return strings.TrimRight(base, "/") + "/" + next
	}
}

// rootOf returns the scheme+host portion of a base URL ("https://host"),
// stripping any path, so an absolute-path continuation link concatenates
// without duplicating "/api/v1" twice.
func rootOf(base string) string {
	idx := strings.Index(base, "://")
	if idx < 0 {
		return base
	}
	rest := base[idx+3:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		return base[:idx+3+slash]
	}
	return base
}
