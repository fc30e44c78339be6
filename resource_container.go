package ecs

// resourceMap is the default ResourceContainer. Like the rest of the world it assumes
// a single goroutine.
type resourceMap struct {
	values map[string]any
	order  []string
}

func newResourceContainer() *resourceMap {
	return &resourceMap{values: make(map[string]any)}
}

func (r *resourceMap) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *resourceMap) Set(name string, value any) {
	if _, ok := r.values[name]; !ok {
		r.order = append(r.order, name)
	}
	r.values[name] = value
}

func (r *resourceMap) Delete(name string) {
	if _, ok := r.values[name]; !ok {
		return
	}
	delete(r.values, name)
	for i, k := range r.order {
		if k == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Range visits resources in the order they were first set.
func (r *resourceMap) Range(fn func(string, any) bool) {
	for _, k := range r.order {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Resource fetches a typed resource. ok is false when it is absent or of another type.
func Resource[T any](w *World, name string) (T, bool) {
	v, ok := w.resources.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

var _ ResourceContainer = (*resourceMap)(nil)
