package audit

import (
	"context"
	"strings"
)

// Sentinel values recorded when request metadata cannot be resolved,
// e.g. for mutations performed outside any request scope.
const (
	UnknownUser   = "Usuário desconhecido"
	UnknownOrigin = "Origem desconhecida"
	UnknownIP     = "IP DESCONHECIDO"
)

// Headers consulted when resolving actor identity and change origin
// for requests without an authenticated principal.
const (
	HeaderActor  = "X-Usuario"
	HeaderOrigin = "X-Origem"
)

// ipHeaders is the priority chain for the client address. An entry that
// is empty or carries the literal "unknown" means absent, try the next.
var ipHeaders = []string{"X-Forwarded-For", "Proxy-Client-IP", "WL-Proxy-Client-IP"}

// RequestContext is the actor metadata attached to one inbound request.
// It travels as an explicit context value rather than global state, so
// the recorder can be exercised without a live request scope.
type RequestContext struct {
	Actor  string
	IP     string
	Origin string
}

type ctxKey struct{}

// WithRequestContext attaches rc to ctx for the audit recorder.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the request metadata. Absence is a normal case,
// not a fault: background writes simply have no request context.
func FromContext(ctx context.Context) (RequestContext, bool) {
	if ctx == nil {
		return RequestContext{}, false
	}
	rc, ok := ctx.Value(ctxKey{}).(RequestContext)
	return rc, ok
}

// ClientIP walks the proxy header chain in order and falls back to the
// raw connection address.
func ClientIP(header func(name string) string, remoteAddr string) string {
	for _, h := range ipHeaders {
		if v := header(h); usable(v) {
			return v
		}
	}
	if usable(remoteAddr) {
		return remoteAddr
	}
	return UnknownIP
}

func usable(v string) bool {
	return v != "" && !strings.EqualFold(v, "unknown")
}
