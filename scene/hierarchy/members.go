package hierarchy

// Ordered item membership shared by the hierarchy implementations.
type members struct {
	items []Item
	index map[uint32]int
}

func newMembers() members {
	return members{index: make(map[uint32]int)}
}

func (m *members) add(item Item) bool {
	if _, exists := m.index[item.Key()]; exists {
		return false
	}
	m.index[item.Key()] = len(m.items)
	m.items = append(m.items, item)
	return true
}

func (m *members) remove(item Item) bool {
	at, exists := m.index[item.Key()]
	if !exists {
		return false
	}
	delete(m.index, item.Key())
	copy(m.items[at:], m.items[at+1:])
	m.items[len(m.items)-1] = nil
	m.items = m.items[:len(m.items)-1]
	for i := at; i < len(m.items); i++ {
		m.index[m.items[i].Key()] = i
	}
	return true
}

func (m *members) reset() {
	m.items = nil
	m.index = make(map[uint32]int)
}

func (m *members) contains(key uint32) bool {
	_, exists := m.index[key]
	return exists
}
