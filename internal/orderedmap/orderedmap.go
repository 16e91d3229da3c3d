package orderedmap

// Map is a map datastructure that allows accessing it's element in
// insertion order.
type Map[K comparable, V any] struct {
	order   []K
	m       map[K]V
	zeroval V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		m: map[K]V{},
	}
}

// Set sets the value for key.
// If the key does not exist it is appended, otherwise the value is replaced
// and the key keeps its position.
func (m *Map[K, V]) Set(key K, val V) (added bool) {
	if _, exist := m.m[key]; !exist {
		m.order = append(m.order, key)
		added = true
	}

	m.m[key] = val

	return added
}

// Get returns the value for the given key.
// If the key does not exist, the zero value is returned
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, exist := m.m[key]
	if !exist {
		return m.zeroval, false
	}

	return v, true
}

// Foreach itereates through the map in order.
// When fn returns false the iteration is aborted.
func (m *Map[K, V]) Foreach(fn func(K, V) bool) {
	for _, k := range m.order {
		if !fn(k, m.m[k]) {
			return
		}
	}
}
