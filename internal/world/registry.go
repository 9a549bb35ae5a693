// Package world holds the host-side environment registry: a small
// association table from item names to world-object tags. The cascade core
// never reads it; environment questions and commands are dispatched here by
// the hosting process.
package world

import "sort"

// Object is one registered world entity.
type Object struct {
	// Name is the key players refer to ("sword", "door").
	Name string `yaml:"name"`

	// Tag identifies the host-side object the name resolves to.
	Tag string `yaml:"tag"`

	// Location is free-text used when answering "where is" questions.
	Location string `yaml:"location"`
}

// Registry maps item names to world objects. One registry per scene; it is
// owned by the host and not safe for concurrent mutation.
type Registry struct {
	objects map[string]Object
}

// NewRegistry builds a registry from an initial object set. Later entries
// with a duplicate name replace earlier ones.
func NewRegistry(objects []Object) *Registry {
	r := &Registry{objects: make(map[string]Object, len(objects))}
	for _, o := range objects {
		r.objects[o.Name] = o
	}
	return r
}

// Add registers or replaces an object under its name.
func (r *Registry) Add(o Object) {
	r.objects[o.Name] = o
}

// Remove drops the object registered under name, if any.
func (r *Registry) Remove(name string) {
	delete(r.objects, name)
}

// Lookup returns the object registered under name.
func (r *Registry) Lookup(name string) (Object, bool) {
	o, ok := r.objects[name]
	return o, ok
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Objects returns a name-sorted snapshot of the registry.
func (r *Registry) Objects() []Object {
	out := make([]Object, 0, len(r.objects))
	for _, o := range r.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
