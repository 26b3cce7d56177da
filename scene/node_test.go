package scene

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cofenberg/pixellight-sub004/types"
)

func TestFlags(t *testing.T) {
	type spec struct {
		in       string
		exp      Flags
		expStr   string
		expError bool
	}
	specs := []spec{
		{"", 0, "", false},
		{"Automatic", Automatic, "Automatic", false},
		{"CastShadow|ReceiveShadow", CastShadow | ReceiveShadow, "CastShadow|ReceiveShadow", false},
		{" Inactive | Invisible ", Inactive | Invisible, "Inactive|Invisible", false},
		{"16|Inactive", Automatic | Inactive, "Inactive|Automatic", false},
		{"Sparkly", 0, "", true},
	}

	for idx, s := range specs {
		flags, err := ParseFlags(s.in)
		if s.expError {
			if err == nil {
				t.Fatalf("[spec %d] expected a parse error", idx)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error %v", idx, err)
		}
		if flags != s.exp {
			t.Fatalf("[spec %d] expected flags %d; got %d", idx, s.exp, flags)
		}
		if flags.String() != s.expStr {
			t.Fatalf("[spec %d] expected text %q; got %q", idx, s.expStr, flags.String())
		}
	}
}

func TestNodeValues(t *testing.T) {
	s := New(nil, DefaultOptions())
	n := s.Root().Create("PLScene::SNPointLight", "Lamp", []Param{
		{"Class", "ignored"},
		{"Name", "ignored"},
		{"Position", "1 2 3"},
		{"Range", "5"},
		{"Custom", "kept"},
	})

	exp := []Param{
		{"Position", "1 2 3"},
		{"Range", "5"},
		{"Custom", "kept"},
	}
	if diff := cmp.Diff(exp, n.Values(true)); diff != "" {
		t.Fatalf("unexpected dense values (-want +got):\n%s", diff)
	}

	exp = []Param{
		{"Flags", ""},
		{"Position", "1 2 3"},
		{"Rotation", "0 0 0"},
		{"Scale", "1 1 1"},
		{"AABBMin", "0 0 0"},
		{"AABBMax", "0 0 0"},
		{"Color", "1 1 1"},
		{"Range", "5"},
		{"Custom", "kept"},
	}
	if diff := cmp.Diff(exp, n.Values(false)); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestContainerValues(t *testing.T) {
	s := New(nil, DefaultOptions())
	c := s.Root().Create(SceneContainerClass, "C", []Param{{"Hierarchy", "PLScene::SHBvh"}}).AsContainer()
	if c.HierarchyClass() != "PLScene::SHBvh" {
		t.Fatalf("expected hierarchy class to be assigned; got %q", c.HierarchyClass())
	}

	exp := []Param{{"Hierarchy", "PLScene::SHBvh"}}
	if diff := cmp.Diff(exp, c.Values(true)); diff != "" {
		t.Fatalf("unexpected dense values (-want +got):\n%s", diff)
	}
}

func TestSetValuesReportsInvalidValues(t *testing.T) {
	s := New(nil, DefaultOptions())
	n := s.Root().Create(helperClass, "", nil)

	err := n.SetValues([]Param{
		{"Position", "1 2"},
		{"Scale", "2 2 2"},
		{"Flags", "Bogus"},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Position") || !strings.Contains(err.Error(), "Flags") {
		t.Fatalf("expected both invalid values to be reported; got %v", err)
	}
	if n.Scale() != (types.Vec3{2, 2, 2}) {
		t.Fatalf("expected valid values to be applied; got scale %v", n.Scale())
	}
	if n.Position() != (types.Vec3{}) {
		t.Fatalf("expected invalid position to be ignored; got %v", n.Position())
	}
}

func TestNodePath(t *testing.T) {
	s, _, b, c := newTestTree(t)
	if got := c.Path(); got != "Root.A.B.C" {
		t.Fatalf("expected path Root.A.B.C; got %q", got)
	}
	if s.Root().Get(c.Path()) != c {
		t.Fatal("expected absolute path to resolve to the node")
	}
	if b.Get(s.Root().Path()) != s.Root().Node {
		t.Fatal("expected root path to resolve to the root")
	}
}

func TestModifiers(t *testing.T) {
	s := New(nil, DefaultOptions())
	n := s.Root().Create(helperClass, "", nil)

	rot := n.AddModifier("PLScene::SNMRotationLinearAnimation", []Param{{"Velocity", "0 90 0"}})
	if rot == nil || rot.Owner() != n {
		t.Fatal("expected modifier to be attached")
	}
	anchor := n.AddModifier("PLScene::SNMAnchor", []Param{{"AttachedNode", "Parent.Lamp"}, {"Flags", "Automatic"}})
	rot2 := n.AddModifier("PLScene::SNMRotationLinearAnimation", nil)

	if m := n.AddModifier("PLScene::SNHelper", nil); m != nil {
		t.Fatal("expected a node class to be rejected as modifier")
	}
	if m := n.AddModifier("PLScene::SNMNope", nil); m != nil {
		t.Fatal("expected an unknown class to be rejected as modifier")
	}

	if got := n.NumModifiers(""); got != 3 {
		t.Fatalf("expected 3 modifiers; got %d", got)
	}
	if got := n.NumModifiers("PLScene::SNMRotationLinearAnimation"); got != 2 {
		t.Fatalf("expected 2 rotation modifiers; got %d", got)
	}
	if n.GetModifier("PLScene::SNMRotationLinearAnimation", 1) != rot2 || n.GetModifier("", 1) != anchor {
		t.Fatal("unexpected GetModifier result")
	}
	if n.GetModifier("PLScene::SNMAnchor", 1) != nil {
		t.Fatal("expected out of range GetModifier to return nil")
	}

	if anchor.Flags()&ModifierAutomatic == 0 {
		t.Fatal("expected anchor to be flagged automatic")
	}
	if diff := cmp.Diff([]Param{{"Velocity", "0 90 0"}}, rot.Values(true)); diff != "" {
		t.Fatalf("unexpected modifier values (-want +got):\n%s", diff)
	}

	if !n.RemoveModifier(rot) || n.RemoveModifier(rot) {
		t.Fatal("expected modifier to be removed exactly once")
	}
	if rot.Owner() != nil {
		t.Fatal("expected removed modifier to lose its owner")
	}

	n.ClearModifiers()
	if n.NumModifiers("") != 0 {
		t.Fatal("expected all modifiers to be removed")
	}
}

func TestPlaceholders(t *testing.T) {
	s := New(nil, DefaultOptions())
	n := s.Root().CreatePlaceholder("Vendor::SNFancy", "Fancy", []Param{{"Glow", "3"}, {"Position", "1 1 1"}}, false)
	if !n.IsPlaceholder() || n.IsContainer() || n.Class() != "Vendor::SNFancy" {
		t.Fatalf("unexpected placeholder node %q kind %v", n.Class(), n.Kind())
	}
	if diff := cmp.Diff([]Param{{"Position", "1 1 1"}, {"Glow", "3"}}, n.Values(true)); diff != "" {
		t.Fatalf("unexpected placeholder values (-want +got):\n%s", diff)
	}

	c := s.Root().CreatePlaceholder("Vendor::SCFancy", "", nil, true)
	if !c.IsPlaceholder() || !c.IsContainer() || c.Name() != "Vendor::SCFancy0" {
		t.Fatalf("unexpected placeholder container %q", c.Name())
	}

	m := n.AddPlaceholderModifier("Vendor::SNMFancy", []Param{{"Speed", "2"}})
	if !m.IsPlaceholder() || m.Class() != "Vendor::SNMFancy" {
		t.Fatal("expected placeholder modifier")
	}
	if diff := cmp.Diff([]Param{{"Speed", "2"}}, m.Values(true)); diff != "" {
		t.Fatalf("unexpected placeholder modifier values (-want +got):\n%s", diff)
	}
}
