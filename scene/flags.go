package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Flags holds the scene node flag bits.
type Flags uint32

const (
	Inactive Flags = 1 << iota
	Invisible
	Frozen
	NoPause
	Automatic
	NoCulling
	NoLighting
	CanOcclude
	CastShadow
	ReceiveShadow
)

// ModifierFlags holds the scene node modifier flag bits.
type ModifierFlags uint32

const (
	ModifierInactive ModifierFlags = 1 << iota
	ModifierAutomatic
)

type flagName struct {
	bit  uint32
	name string
}

var nodeFlagNames = []flagName{
	{uint32(Inactive), "Inactive"},
	{uint32(Invisible), "Invisible"},
	{uint32(Frozen), "Frozen"},
	{uint32(NoPause), "NoPause"},
	{uint32(Automatic), "Automatic"},
	{uint32(NoCulling), "NoCulling"},
	{uint32(NoLighting), "NoLighting"},
	{uint32(CanOcclude), "CanOcclude"},
	{uint32(CastShadow), "CastShadow"},
	{uint32(ReceiveShadow), "ReceiveShadow"},
}

var modifierFlagNames = []flagName{
	{uint32(ModifierInactive), "Inactive"},
	{uint32(ModifierAutomatic), "Automatic"},
}

// Format the flags as a '|' separated list of names, e.g. "Automatic|CastShadow".
func (f Flags) String() string {
	return formatFlags(uint32(f), nodeFlagNames)
}

func (f ModifierFlags) String() string {
	return formatFlags(uint32(f), modifierFlagNames)
}

// Parse a '|' separated list of node flag names. Plain integers are accepted too.
func ParseFlags(s string) (Flags, error) {
	bits, err := parseFlags(s, nodeFlagNames)
	return Flags(bits), err
}

// Parse a '|' separated list of modifier flag names.
func ParseModifierFlags(s string) (ModifierFlags, error) {
	bits, err := parseFlags(s, modifierFlagNames)
	return ModifierFlags(bits), err
}

func formatFlags(bits uint32, names []flagName) string {
	var parts []string
	for _, fn := range names {
		if bits&fn.bit != 0 {
			parts = append(parts, fn.name)
			bits &^= fn.bit
		}
	}
	if bits != 0 {
		parts = append(parts, strconv.FormatUint(uint64(bits), 10))
	}
	return strings.Join(parts, "|")
}

func parseFlags(s string, names []flagName) (uint32, error) {
	var bits uint32
	for _, token := range strings.Split(s, "|") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if v, err := strconv.ParseUint(token, 10, 32); err == nil {
			bits |= uint32(v)
			continue
		}
		found := false
		for _, fn := range names {
			if fn.name == token {
				bits |= fn.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("scene: unknown flag %q", token)
		}
	}
	return bits, nil
}
