package scene

import (
	"errors"
	"fmt"
)

// A Modifier attaches auxiliary behavior or data to a scene node. Modifiers
// are owned by their node.
type Modifier struct {
	scene *Scene
	owner NodeID

	class       string
	placeholder bool
	flags       ModifierFlags
	payload     Payload
	extras      []Param
}

// The class key the modifier was created from.
func (m *Modifier) Class() string { return m.class }

// Get the owning node; nil once the modifier has been removed.
func (m *Modifier) Owner() *Node {
	if m.owner == NoNode {
		return nil
	}
	return m.scene.Node(m.owner)
}

func (m *Modifier) IsPlaceholder() bool { return m.placeholder }

func (m *Modifier) Payload() Payload { return m.payload }

func (m *Modifier) Flags() ModifierFlags { return m.flags }

func (m *Modifier) SetFlags(flags ModifierFlags) { m.flags = flags }

func (m *Modifier) IsActive() bool { return m.flags&ModifierInactive == 0 }

func (m *Modifier) SetValue(name, value string) error {
	var err error
	switch name {
	case "Class":
		return nil
	case "Flags":
		var flags ModifierFlags
		if flags, err = ParseModifierFlags(value); err == nil {
			m.flags = flags
		}
	default:
		if m.payload != nil {
			var handled bool
			if handled, err = m.payload.SetAttribute(name, value); handled {
				break
			}
		}
		m.extras = setExtra(m.extras, name, value)
	}

	if err != nil {
		return fmt.Errorf("scene: invalid value %q for %s: %w", value, name, err)
	}
	return nil
}

func (m *Modifier) SetValues(params []Param) error {
	var errs []error
	for _, p := range params {
		if err := m.SetValue(p.Name, p.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get the modifier properties in save order, excluding Class.
func (m *Modifier) Values(noDefault bool) []Param {
	attrs := []Attribute{{Name: "Flags", Value: m.flags.String()}}
	if m.payload != nil {
		attrs = append(attrs, m.payload.Attributes()...)
	}
	return filterValues(attrs, m.extras, noDefault)
}

// Instantiate a modifier by class key and append it to the node. Returns nil
// and logs an error if the key does not name a modifier class.
func (n *Node) AddModifier(class string, params []Param) *Modifier {
	cls, ok := n.scene.registry.Lookup(class)
	if !ok || cls.Base != BaseModifier {
		n.scene.logger.Errorf("%q is not a valid scene node modifier class", class)
		return nil
	}
	return n.attachModifier(cls, class, params)
}

// Append an unknown modifier standing in for class. The placeholder keeps all
// params so that it is saved back unchanged.
func (n *Node) AddPlaceholderModifier(class string, params []Param) *Modifier {
	cls, ok := n.scene.registry.Lookup(UnknownModifierClass)
	if !ok {
		cls = Class{Name: UnknownModifierClass, Base: BaseModifier, Kind: KindUnknown}
	}
	return n.attachModifier(cls, class, params)
}

func (n *Node) attachModifier(cls Class, class string, params []Param) *Modifier {
	m := &Modifier{
		scene:       n.scene,
		owner:       n.id,
		class:       class,
		placeholder: cls.Name == UnknownModifierClass,
		payload:     cls.newPayload(),
	}
	if err := m.SetValues(params); err != nil {
		n.scene.logger.Warningf("modifier %q of %q: %v", class, n.Path(), err)
	}
	n.modifiers = append(n.modifiers, m)
	return m
}

// Get a copy of the modifier list.
func (n *Node) Modifiers() []*Modifier {
	return append([]*Modifier(nil), n.modifiers...)
}

// Get the index-th modifier of the given class; an empty class matches all
// modifiers.
func (n *Node) GetModifier(class string, index int) *Modifier {
	for _, m := range n.modifiers {
		if class != "" && m.class != class {
			continue
		}
		if index == 0 {
			return m
		}
		index--
	}
	return nil
}

// Count the modifiers of the given class; an empty class counts all modifiers.
func (n *Node) NumModifiers(class string) int {
	if class == "" {
		return len(n.modifiers)
	}
	count := 0
	for _, m := range n.modifiers {
		if m.class == class {
			count++
		}
	}
	return count
}

// Remove and release a modifier. Returns false if m is not owned by n.
func (n *Node) RemoveModifier(m *Modifier) bool {
	for i, owned := range n.modifiers {
		if owned == m {
			n.modifiers = append(n.modifiers[:i], n.modifiers[i+1:]...)
			m.owner = NoNode
			return true
		}
	}
	return false
}

func (n *Node) ClearModifiers() {
	for _, m := range n.modifiers {
		m.owner = NoNode
	}
	n.modifiers = nil
}
