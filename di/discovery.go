package di

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ResolveAllByType resolves every registered service whose concrete type
// is assignable to t (which may be an interface type). Services are
// instantiated if needed. Results are ordered by registration name for
// determinism.
func (c *Container) ResolveAllByType(t reflect.Type) ([]any, error) {
	names := c.namesMatching(func(svc ServiceWrapper) bool {
		st := svc.ServiceType()
		if st == nil {
			return false
		}
		if st == t {
			return true
		}
		if t.Kind() == reflect.Interface && st.Implements(t) {
			return true
		}
		return st.AssignableTo(t)
	})
	return c.resolveNames(names)
}

// ResolveAllByName resolves the service registered under name, plus any
// group-suffixed registrations of the same name ("name#2", "name#3", ...).
func (c *Container) ResolveAllByName(name string) ([]any, error) {
	names := c.namesMatching(func(svc ServiceWrapper) bool {
		n := svc.Name()
		return n == name || strings.HasPrefix(n, name+"#")
	})
	return c.resolveNames(names)
}

// ResolveGroup resolves every service registered in the named group.
// An unknown group yields an empty slice, not an error.
func (c *Container) ResolveGroup(group string) ([]any, error) {
	names := c.namesMatching(func(svc ServiceWrapper) bool {
		for _, g := range svc.Groups() {
			if g == group {
				return true
			}
		}
		return false
	})
	return c.resolveNames(names)
}

func (c *Container) namesMatching(match func(ServiceWrapper) bool) []string {
	var names []string
	c.ForEachService(func(name string, svc ServiceWrapper) {
		if match(svc) {
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}

func (c *Container) resolveNames(names []string) ([]any, error) {
	out := make([]any, 0, len(names))
	for _, name := range names {
		instance, err := c.ResolveByName(name, nil)
		if err != nil {
			return nil, fmt.Errorf("di: resolve %s: %w", name, err)
		}
		out = append(out, instance)
	}
	return out, nil
}

// ResolveAll resolves every service assignable to T, instantiating as
// needed.
func ResolveAll[T any](c *Container) ([]T, error) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	raw, err := c.ResolveAllByType(t)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		typed, ok := r.(T)
		if !ok {
			return nil, fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, TypeName[T](), r)
		}
		out = append(out, typed)
	}
	return out, nil
}

// ResolveGroup resolves every member of the named group as T.
func ResolveGroup[T any](c *Container, group string) ([]T, error) {
	raw, err := c.ResolveGroup(group)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		typed, ok := r.(T)
		if !ok {
			return nil, fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, TypeName[T](), r)
		}
		out = append(out, typed)
	}
	return out, nil
}
