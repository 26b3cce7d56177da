package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cofenberg/pixellight-sub004/asset"
	"github.com/cofenberg/pixellight-sub004/scene"
	"github.com/cofenberg/pixellight-sub004/timing"
	"github.com/cofenberg/pixellight-sub004/types"
)

const demoScene = `<?xml version="1.0"?>
<Scene Version="1" Name="Demo" Position="0 1 0">
	<Modifier Class="PLScene::SNMAnchor" AttachedNode="Cam"/>
	<Container Class="PLScene::SCCell" Name="Kitchen" AABBMin="-5 -5 -5" AABBMax="5 5 5">
		<Node Class="PLScene::SNCellPortal" Name="ToHall" TargetCell="Parent.Hall"/>
		<Node Class="PLScene::SNMesh" Name="Table" Mesh="Data/Meshes/Table.mesh" Position="1 0 2">
			<Modifier Class="PLScene::SNMRotationLinearAnimation" Velocity="0 45 0"/>
		</Node>
	</Container>
	<Container Class="PLScene::SCCell" Name="Hall">
		<Node Class="PLScene::SNCellPortal" Name="ToKitchen" TargetCell="Parent.Kitchen"/>
	</Container>
	<Node Class="PLScene::SNCamera" Name="Cam" FOV="60" Flags="CastShadow"/>
	<Node Class="PLScene::SNPointLight" Name="Lamp" Range="20" Color="1 0.5 0.25"/>
	<Node Class="Vendor::SNFancy" Name="Fancy" Glow="3">
		<Modifier Class="Vendor::SNMSparkle" Rate="10"/>
		<Modifier Rate="1"/>
	</Node>
	<Container Class="Vendor::SCFancy" Name="Box">
		<Node Class="PLScene::SNHelper" Name="Inside"/>
	</Container>
	<Node Name="NoClass"/>
	<Unknown Class="PLScene::SNHelper"/>
</Scene>
`

type shape struct {
	Class     string
	Name      string
	Container bool
	Modifiers []string
	Children  []shape
}

func shapeOf(c *scene.Container) []shape {
	var out []shape
	for _, n := range c.Nodes() {
		s := shape{Class: n.Class(), Name: n.Name(), Container: n.IsContainer()}
		for _, m := range n.Modifiers() {
			s.Modifiers = append(s.Modifiers, m.Class())
		}
		if n.IsContainer() {
			s.Children = shapeOf(n.AsContainer())
		}
		out = append(out, s)
	}
	return out
}

// Collect the full property set of every node below c keyed by path.
func valuesOf(c *scene.Container) map[string][]scene.Param {
	out := make(map[string][]scene.Param)
	c.Walk(func(n *scene.Node) {
		out[n.Path()] = n.Values(false)
		for idx, m := range n.Modifiers() {
			out[fmt.Sprintf("%s#%d", n.Path(), idx)] = m.Values(false)
		}
	})
	return out
}

func loadString(t *testing.T, c *scene.Container, doc string, opts Options) (Stats, error) {
	t.Helper()
	return Load(c, asset.NewResourceFromStream("test.scene", strings.NewReader(doc)), opts)
}

func mustLoad(t *testing.T, doc string) *scene.Scene {
	t.Helper()
	s := scene.New(nil, scene.DefaultOptions())
	if _, err := loadString(t, s.Root(), doc, Options{}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoad(t *testing.T) {
	s := scene.New(nil, scene.DefaultOptions())
	root := s.Root()
	stats, err := loadString(t, root, demoScene, Options{})
	if err != nil {
		t.Fatal(err)
	}

	exp := Stats{Containers: 3, Nodes: 7, Modifiers: 4}
	stats.Elapsed = 0
	if stats != exp {
		t.Fatalf("expected stats %+v; got %+v", exp, stats)
	}

	if root.Len() != 6 {
		t.Fatalf("expected 6 root children; got %d", root.Len())
	}
	if root.Position() != (types.Vec3{0, 1, 0}) {
		t.Fatalf("expected root position to be loaded; got %v", root.Position())
	}
	if root.Name() != "Demo" {
		t.Fatalf("expected root to be renamed by the scene element; got %q", root.Name())
	}
	if !root.IsActive() {
		t.Fatal("expected root to be active after loading")
	}
	if root.NumModifiers("PLScene::SNMAnchor") != 1 {
		t.Fatal("expected root modifier to be attached to the root")
	}

	table := root.Get("Kitchen.Table")
	if table == nil || table.Kind() != scene.KindObject || table.NumModifiers("") != 1 {
		t.Fatalf("expected Kitchen.Table mesh with one modifier; got %v", table)
	}
	if cam := root.Get("Cam"); cam == nil || cam.Flags() != scene.CastShadow || cam.Payload().(*scene.CameraPayload).FOV != 60 {
		t.Fatal("expected camera properties to be loaded")
	}

	fancy := root.Get("Fancy")
	if fancy == nil || !fancy.IsPlaceholder() || fancy.Class() != "Vendor::SNFancy" {
		t.Fatal("expected unknown node class to be replaced by a placeholder")
	}
	if fancy.NumModifiers("") != 2 || !fancy.GetModifier("", 0).IsPlaceholder() || fancy.GetModifier("", 1).Class() != scene.UnknownModifierClass {
		t.Fatal("expected unknown modifiers to be replaced by placeholders")
	}

	box := root.Get("Box")
	if box == nil || !box.IsPlaceholder() || !box.IsContainer() || root.Get("Box.Inside") == nil {
		t.Fatal("expected unknown container class to be replaced by a placeholder container holding its children")
	}
	if root.Get("NoClass") != nil {
		t.Fatal("expected node without class to be skipped")
	}
}

func TestContainerClassMismatch(t *testing.T) {
	s := scene.New(nil, scene.DefaultOptions())
	stats, err := loadString(t, s.Root(), `<Scene Version="1">
	<Container Class="PLScene::SNHelper" Name="NotAContainer">
		<Node Class="PLScene::SNHelper" Name="Child"/>
	</Container>
	<Container Name="NoClass"/>
</Scene>`, Options{})
	if err != nil {
		t.Fatal(err)
	}

	n := s.Root().Get("NotAContainer")
	if n == nil || n.IsContainer() {
		t.Fatal("expected mismatched node to be created and kept")
	}
	if s.Root().Len() != 1 || s.Len() != 2 {
		t.Fatalf("expected the children of the mismatched node to be skipped; got %d nodes", s.Len())
	}
	if stats.Containers != 2 || stats.Nodes != 0 {
		t.Fatalf("expected container counter to count every container element; got %+v", stats)
	}
}

func TestVersionGate(t *testing.T) {
	type spec struct {
		doc    string
		expErr error
	}
	body := `<Node Class="PLScene::SNHelper" Name="A"/>`
	specs := []spec{
		{`<Scene Version="99" Position="5 5 5">` + body + `</Scene>`, ErrUnknownVersion},
		{`<Scene Version="2">` + body + `</Scene>`, ErrUnknownVersion},
		{`<Scene Version="-1">` + body + `</Scene>`, ErrInvalidVersion},
		{`<Scene Version="one">` + body + `</Scene>`, ErrInvalidVersion},
		{`<Foo Version="1">` + body + `</Foo>`, ErrMissingScene},
		{``, ErrMissingScene},
		{`<Scene Version="1">` + body, ErrMalformedDocument},
		{`<Scene Version="1">` + body + `</Scene><Scene/>`, ErrMalformedDocument},
		{`<Scene Version="1"><Node Class="PLScene::SNHelper" Name="A"></Scene>`, ErrMalformedDocument},
	}

	for idx, sp := range specs {
		s := scene.New(nil, scene.DefaultOptions())
		_, err := loadString(t, s.Root(), sp.doc, Options{})
		if !errors.Is(err, sp.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", idx, sp.expErr, err)
		}
		if s.Root().Len() != 0 || s.Len() != 1 {
			t.Fatalf("[spec %d] expected container to be left untouched; got %d nodes", idx, s.Len())
		}
		if s.Root().Position() != (types.Vec3{}) {
			t.Fatalf("[spec %d] expected root values to be left untouched", idx)
		}
	}
}

func TestDeprecatedVersion(t *testing.T) {
	body := `
	<Container Class="PLScene::SceneContainer" Name="A">
		<Node Class="PLScene::SNHelper" Name="B"><Modifier Class="PLScene::SNMAnchor"/></Node>
	</Container>
	<Node Class="PLScene::SNHelper"/>
</Scene>`

	v1 := mustLoad(t, `<Scene Version="1">`+body)
	for idx, header := range []string{`<Scene Version="0">`, `<Scene>`} {
		other := mustLoad(t, header+body)
		if diff := cmp.Diff(shapeOf(v1.Root()), shapeOf(other.Root())); diff != "" {
			t.Fatalf("[spec %d] expected the same tree shape (-v1 +other):\n%s", idx, diff)
		}
	}
}

func TestProgress(t *testing.T) {
	s := scene.New(nil, scene.DefaultOptions())
	var reports []float32
	opts := Options{
		Progress: func(fraction float32) {
			reports = append(reports, fraction)
			if s.Root().IsActive() {
				t.Fatal("expected container to be inactive while loading")
			}
			if !s.Clock().IsPaused() {
				t.Fatal("expected clock to be paused while loading")
			}
		},
	}
	if _, err := loadString(t, s.Root(), demoScene, opts); err != nil {
		t.Fatal(err)
	}

	if len(reports) < 2 {
		t.Fatalf("expected progress reports; got %v", reports)
	}
	if reports[0] != 0 {
		t.Fatalf("expected first report to be 0; got %f", reports[0])
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] < reports[i-1] {
			t.Fatalf("expected monotonic progress; got %v", reports)
		}
	}
	if last := reports[len(reports)-1]; last != 1 {
		t.Fatalf("expected final report to be 1; got %f", last)
	}
	if s.Clock().IsPaused() {
		t.Fatal("expected clock to be unpaused after loading")
	}
}

func TestNestedClockPause(t *testing.T) {
	s := scene.New(nil, scene.DefaultOptions())
	s.SetClock(timing.NewClock())
	s.Clock().Pause(true)

	if _, err := loadString(t, s.Root(), demoScene, Options{}); err != nil {
		t.Fatal(err)
	}
	if !s.Clock().IsPaused() {
		t.Fatal("expected load to restore the paused clock state")
	}
}

func TestRoundTrip(t *testing.T) {
	orig := mustLoad(t, demoScene)

	var lossless, dense bytes.Buffer
	losslessStats, err := Save(orig.Root(), &lossless, Options{NoDefault: false})
	if err != nil {
		t.Fatal(err)
	}
	denseStats, err := Save(orig.Root(), &dense, Options{NoDefault: true})
	if err != nil {
		t.Fatal(err)
	}

	losslessStats.Elapsed, denseStats.Elapsed = 0, 0
	if exp := (Stats{Containers: 3, Nodes: 7, Modifiers: 4}); losslessStats != exp || denseStats != exp {
		t.Fatalf("expected save stats %+v; got %+v and %+v", exp, losslessStats, denseStats)
	}

	if l, d := strings.Count(lossless.String(), `="`), strings.Count(dense.String(), `="`); d > l {
		t.Fatalf("expected dense output to have at most %d attributes; got %d", l, d)
	} else if d == l {
		t.Fatal("expected dense output to elide default values")
	}

	for idx, doc := range []string{lossless.String(), dense.String()} {
		reloaded := mustLoad(t, doc)
		if diff := cmp.Diff(shapeOf(orig.Root()), shapeOf(reloaded.Root())); diff != "" {
			t.Fatalf("[spec %d] expected the same tree shape (-orig +reloaded):\n%s", idx, diff)
		}
		if diff := cmp.Diff(valuesOf(orig.Root()), valuesOf(reloaded.Root())); diff != "" {
			t.Fatalf("[spec %d] expected the same values (-orig +reloaded):\n%s", idx, diff)
		}
	}
}

func TestSaveSkipsAutomatic(t *testing.T) {
	s := scene.New(nil, scene.DefaultOptions())
	root := s.Root()
	root.Create("PLScene::SNHelper", "Kept", nil).AddModifier("PLScene::SNMAnchor", []scene.Param{{Name: "Flags", Value: "Automatic"}})
	root.Create("PLScene::SNHelper", "Generated", []scene.Param{{Name: "Flags", Value: "Automatic"}})

	var buf bytes.Buffer
	stats, err := Save(root, &buf, Options{NoDefault: true})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Nodes != 1 || stats.Modifiers != 0 {
		t.Fatalf("expected automatic nodes and modifiers to be skipped; got %+v", stats)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "<?xml version=\"1.0\"?>\n<Scene Version=\"1\"") {
		t.Fatalf("unexpected document header:\n%s", out)
	}
	if strings.Contains(out, "Generated") || strings.Contains(out, "SNMAnchor") {
		t.Fatalf("expected automatic entries to be skipped:\n%s", out)
	}
}

func TestSceneName(t *testing.T) {
	s := mustLoad(t, `<Scene Version="1" Name="Level1"><Node Class="PLScene::SNHelper" Name="A"/></Scene>`)
	if s.Root().Name() != "Level1" {
		t.Fatalf("expected root to be named Level1; got %q", s.Root().Name())
	}
	if s.Root().Get("Root.A") == nil {
		t.Fatal("expected the Root keyword to resolve a renamed root")
	}

	var buf bytes.Buffer
	if _, err := Save(s.Root(), &buf, Options{NoDefault: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<Scene Version="1" Name="Level1"`) {
		t.Fatalf("expected the root name to be saved:\n%s", buf.String())
	}
	if reloaded := mustLoad(t, buf.String()); reloaded.Root().Name() != "Level1" {
		t.Fatalf("expected the root name to survive a round trip; got %q", reloaded.Root().Name())
	}

	buf.Reset()
	if _, err := Save(scene.New(nil, scene.DefaultOptions()).Root(), &buf, Options{NoDefault: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Name=") {
		t.Fatalf("expected the default root name to be omitted:\n%s", buf.String())
	}

	// Loading into a child container renames it through its siblings' names
	s = scene.New(nil, scene.DefaultOptions())
	s.Root().Create("PLScene::SNHelper", "Taken", nil)
	child := s.Root().Create("PLScene::SceneContainer", "Child", nil).AsContainer()
	if _, err := loadString(t, child, `<Scene Version="1" Name="Level2"/>`, Options{}); err != nil {
		t.Fatal(err)
	}
	if child.Name() != "Level2" || s.Root().Get("Level2") != child.Node {
		t.Fatalf("expected child container to be renamed to Level2; got %q", child.Name())
	}
	if _, err := loadString(t, child, `<Scene Version="1" Name="Taken"/>`, Options{}); err != nil {
		t.Fatal(err)
	}
	if child.Name() != "Level2" {
		t.Fatalf("expected a taken name to be ignored; got %q", child.Name())
	}

	buf.Reset()
	if _, err := Save(child, &buf, Options{NoDefault: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `Name="Level2"`) {
		t.Fatalf("expected the container name to be saved:\n%s", buf.String())
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	orig := mustLoad(t, demoScene)

	path := filepath.Join(dir, "demo.scene")
	if _, err := SaveFile(orig.Root(), path, Options{NoDefault: true}); err != nil {
		t.Fatal(err)
	}

	reloaded := scene.New(nil, scene.DefaultOptions())
	if _, err := LoadFile(reloaded.Root(), path, Options{}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(shapeOf(orig.Root()), shapeOf(reloaded.Root())); diff != "" {
		t.Fatalf("expected the same tree shape (-orig +reloaded):\n%s", diff)
	}

	if _, err := SaveFile(orig.Root(), filepath.Join(dir, "demo.obj"), Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat; got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "demo.obj")); !os.IsNotExist(err) {
		t.Fatal("expected no file to be created for an unsupported format")
	}
	if _, err := LoadFile(reloaded.Root(), filepath.Join(dir, "missing.scene"), Options{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
