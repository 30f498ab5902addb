package output

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrUnknownFormat is returned by Get when no formatter answers to a name
var ErrUnknownFormat = errors.New("unknown output format")

// Registry maps format names to formatters. Names match case-insensitively.
type Registry struct {
	formatters map[string]Formatter
}

func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{formatters: make(map[string]Formatter, len(formatters))}
	for _, f := range formatters {
		r.Register(f)
	}
	return r
}

// Register adds f under its name, replacing whatever was there
func (r *Registry) Register(f Formatter) {
	r.formatters[formatKey(f.Name())] = f
}

// Get looks up a formatter. The error for an unknown name lists the
// available formats so it can be shown to the user as is.
func (r *Registry) Get(name string) (Formatter, error) {
	if f, ok := r.formatters[formatKey(name)]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, strings.Join(r.List(), ", "))
}

func (r *Registry) List() []string {
	return slices.Sorted(maps.Keys(r.formatters))
}

func formatKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
