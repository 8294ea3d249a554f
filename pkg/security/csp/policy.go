// Package csp builds Content-Security-Policy header values.
package csp

import (
	"net/http"
	"strings"
)

// HeaderName is the response header carrying the policy.
const HeaderName = "Content-Security-Policy"

// Builder assembles a policy directive by directive. Directives are emitted in
// the order they were first set; setting one again replaces its sources.
//
// Example:
//
//	policy := csp.NewBuilder().
//		DefaultSrc("'none'").
//		FormAction("'self'").
//		Build()
//	// "default-src 'none'; form-action 'self'"
//
// A Builder is not safe for concurrent use.
type Builder struct {
	order      []string
	directives map[string][]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// Directive sets an arbitrary directive. A directive without sources (such as
// upgrade-insecure-requests) is emitted bare.
func (b *Builder) Directive(name string, sources ...string) *Builder {
	if _, ok := b.directives[name]; !ok {
		b.order = append(b.order, name)
	}
	b.directives[name] = sources
	return b
}

// DefaultSrc sets default-src, the fallback for every fetch directive.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	return b.Directive("default-src", sources...)
}

// StyleSrc sets style-src.
func (b *Builder) StyleSrc(sources ...string) *Builder {
	return b.Directive("style-src", sources...)
}

// FormAction sets form-action, the allowed form submission targets.
func (b *Builder) FormAction(sources ...string) *Builder {
	return b.Directive("form-action", sources...)
}

// FrameAncestors sets frame-ancestors. "'none'" blocks framing entirely.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.Directive("frame-ancestors", sources...)
}

// BaseURI sets base-uri.
func (b *Builder) BaseURI(sources ...string) *Builder {
	return b.Directive("base-uri", sources...)
}

// Build renders the policy.
func (b *Builder) Build() string {
	parts := make([]string, 0, len(b.order))
	for _, name := range b.order {
		if srcs := b.directives[name]; len(srcs) > 0 {
			parts = append(parts, name+" "+strings.Join(srcs, " "))
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "; ")
}

// StrictPolicy forbids every resource and framing. Suitable for JSON APIs.
func StrictPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'")
}

// FormPolicy allows a static page to post forms to its own origin and nothing else.
func FormPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		FormAction("'self'").
		BaseURI("'none'").
		FrameAncestors("'none'")
}

// Middleware sets the policy header on every response.
func Middleware(policy *Builder) func(http.Handler) http.Handler {
	value := policy.Build()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderName, value)
			next.ServeHTTP(w, r)
		})
	}
}
