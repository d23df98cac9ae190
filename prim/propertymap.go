package prim

import "github.com/Cindy-xdZhang/OpenUsdLoader/attr"

// PropertyMap is an insertion-order-preserving name->Property map, used
// for a Prim's property list (§3 "ordered list of Property, keyed by
// name, insertion-preserving map").
type PropertyMap struct {
	order  []string
	byName map[string]*attr.Property
}

// NewPropertyMap returns an empty map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{byName: make(map[string]*attr.Property)}
}

// Set inserts or overwrites the property named name, preserving its
// original insertion position on overwrite.
func (m *PropertyMap) Set(name string, p *attr.Property) {
	if _, exists := m.byName[name]; !exists {
		m.order = append(m.order, name)
	}
	m.byName[name] = p
}

// Get returns the property named name, if any.
func (m *PropertyMap) Get(name string) (*attr.Property, bool) {
	p, ok := m.byName[name]
	return p, ok
}

// Names returns property names in authored insertion order.
func (m *PropertyMap) Names() []string {
	return m.order
}

// Len returns the number of properties.
func (m *PropertyMap) Len() int {
	return len(m.order)
}

// All returns the properties in insertion order.
func (m *PropertyMap) All() []*attr.Property {
	out := make([]*attr.Property, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.byName[name])
	}
	return out
}
