package scene

import "strings"

// Resolve a node by path relative to this container. Returns nil if nothing
// matches.
//
// Paths are '.' separated. The leading keywords This, Root and Parent select
// the container itself, the scene root and the owning container. Any other
// leading element names a child container to descend into.
func (c *Container) Get(path string) *Node {
	if path == "" || path[0] == '.' {
		return nil
	}

	for _, keyword := range []string{"This", "Root", "Parent"} {
		rest, ok := cutKeyword(path, keyword)
		if !ok {
			continue
		}

		var target *Container
		switch keyword {
		case "This":
			target = c
		case "Root":
			target = c.scene.root
		case "Parent":
			target = c.Container()
		}
		if target == nil {
			return nil
		}
		if rest == "" {
			return target.Node
		}
		return target.Get(rest)
	}

	if n := c.names.Get(path); n != nil {
		return n
	}

	head, rest, found := strings.Cut(path, ".")
	if !found || head == "" {
		return nil
	}
	if child := c.names.Get(head); child != nil && child.container != nil {
		return child.container.Get(rest)
	}
	return nil
}

// Strip keyword from path if it is followed by the end of the path or a '.'.
func cutKeyword(path, keyword string) (rest string, ok bool) {
	if !strings.HasPrefix(path, keyword) {
		return "", false
	}
	rest = path[len(keyword):]
	if rest == "" {
		return "", true
	}
	if rest[0] != '.' || len(rest) == 1 {
		return "", false
	}
	return rest[1:], true
}
