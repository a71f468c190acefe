package shell

import (
	"context"
	"sort"
)

// Exit statuses shared by the core and commands.
const (
	StatusSuccess  = 0
	StatusFailure  = 1
	StatusNotFound = 127
)

// Handler is implemented by every command the shell can run.
type Handler interface {
	// Main runs the command. It may block, e.g. while waiting for input, and
	// reports failure only through the returned status.
	Main(ctx context.Context, io IO, args []string) int
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(ctx context.Context, io IO, args []string) int

// Main implements Handler.
func (f HandlerFunc) Main(ctx context.Context, io IO, args []string) int {
	return f(ctx, io, args)
}

var _ Handler = (HandlerFunc)(nil)

// Registry maps command names to handlers. Entries are never removed.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds name to h, replacing any existing binding.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Has reports whether name is bound.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Get returns the handler bound to name.
func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns all bound names sorted lexicographically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
