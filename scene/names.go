package scene

import (
	"strconv"
	"strings"
)

// Names that take part in path resolution and can never be assigned to a node.
var reservedNames = map[string]struct{}{
	"This":   {},
	"Root":   {},
	"Parent": {},
}

// NameRegistry maps the unique names of a container's children to the
// children themselves. Lookups are case-sensitive.
type NameRegistry struct {
	byName map[string]*Node
}

func newNameRegistry() NameRegistry {
	return NameRegistry{byName: make(map[string]*Node)}
}

// Register n under desired, or under the first free derived name, and assign
// the resolved name to n.
//
// An empty desired name falls back to the current name of n and then to
// the node class followed by an index. A name already used by another node
// gets an increasing index appended, starting at 0.
func (r *NameRegistry) Insert(n *Node, desired string) {
	desired = strings.ReplaceAll(desired, ".", "-")
	if desired == "" {
		desired = n.name
	}

	var name string
	switch {
	case desired == "":
		base := strings.ReplaceAll(n.class, ".", "-")
		name = r.freeName(n, base)
	case r.isFree(n, desired):
		name = desired
	default:
		name = r.freeName(n, desired)
	}

	if r.byName[n.name] == n {
		delete(r.byName, n.name)
	}
	n.name = name
	r.byName[name] = n
}

// Unregister the name of n. Nodes registered under another name are ignored.
func (r *NameRegistry) Remove(n *Node) {
	if r.byName[n.name] == n {
		delete(r.byName, n.name)
	}
}

// Lookup a node by exact name.
func (r *NameRegistry) Get(name string) *Node {
	return r.byName[name]
}

// Number of registered names.
func (r *NameRegistry) Len() int {
	return len(r.byName)
}

func (r *NameRegistry) isFree(n *Node, name string) bool {
	if _, reserved := reservedNames[name]; reserved {
		return false
	}
	owner, taken := r.byName[name]
	return !taken || owner == n
}

func (r *NameRegistry) freeName(n *Node, base string) string {
	for i := 0; ; i++ {
		candidate := base + strconv.Itoa(i)
		if r.isFree(n, candidate) {
			return candidate
		}
	}
}
