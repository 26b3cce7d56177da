package scene

import (
	"strconv"

	"github.com/cofenberg/pixellight-sub004/types"
)

// A Param is a single name="value" construction parameter.
type Param struct {
	Name  string
	Value string
}

// An Attribute is the current string value of a property together with its
// declared default.
type Attribute struct {
	Name    string
	Value   string
	Default string
}

// The Payload interface is implemented by the kind specific data attached to
// nodes and modifiers.
type Payload interface {
	// The current values of the properties recognized by this payload.
	Attributes() []Attribute

	// Assign a property from its string form. Returns false if the
	// property name is not recognized by the payload.
	SetAttribute(name, value string) (bool, error)
}

// Collect the values of attrs followed by extras. If noDefault is set,
// attributes whose value matches their default are skipped.
func filterValues(attrs []Attribute, extras []Param, noDefault bool) []Param {
	out := make([]Param, 0, len(attrs)+len(extras))
	for _, attr := range attrs {
		if noDefault && attr.Value == attr.Default {
			continue
		}
		out = append(out, Param{Name: attr.Name, Value: attr.Value})
	}
	return append(out, extras...)
}

// Set or replace a verbatim parameter keeping first-seen order.
func setExtra(extras []Param, name, value string) []Param {
	for i := range extras {
		if extras[i].Name == name {
			extras[i].Value = value
			return extras
		}
	}
	return append(extras, Param{Name: name, Value: value})
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func vecAttr(name string, value, def types.Vec3) Attribute {
	return Attribute{Name: name, Value: value.String(), Default: def.String()}
}

func floatAttr(name string, value, def float32) Attribute {
	return Attribute{Name: name, Value: formatFloat(value), Default: formatFloat(def)}
}
