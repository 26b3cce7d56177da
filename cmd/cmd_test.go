package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cofenberg/pixellight-sub004/config"
)

const testScene = `<?xml version="1.0"?>
<Scene Version="1">
	<Container Class="PLScene::SCCell" Name="Kitchen">
		<Node Class="PLScene::SNCellPortal" Name="ToHall" TargetCell="Parent.Hall"/>
		<Node Class="PLScene::SNCamera" Name="Cam" FOV="60">
			<Modifier Class="PLScene::SNMAnchor" AttachedNode="Parent.ToHall"/>
		</Node>
	</Container>
	<Container Class="PLScene::SCCell" Name="Hall">
		<Node Class="PLScene::SNCellPortal" Name="ToKitchen" TargetCell="Parent.Kitchen"/>
	</Container>
</Scene>
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.scene")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSceneTree(t *testing.T) {
	sc, stats, err := loadScene(config.Default(), writeScene(t))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Containers != 2 || stats.Nodes != 3 || stats.Modifiers != 1 {
		t.Fatalf("unexpected load stats %+v", stats)
	}

	tree := sceneTree(sc.Root().Node, true)
	if tree["name"] != "Root" || tree["kind"] != sc.Root().Kind().String() {
		t.Fatalf("unexpected root entry %v", tree)
	}
	if children := tree["children"].([]interface{}); len(children) != 2 {
		t.Fatalf("expected 2 root children; got %d", len(children))
	}

	type spec struct {
		query string
		exp   []interface{}
	}
	specs := []spec{
		{`$.children[*].name`, []interface{}{"Kitchen", "Hall"}},
		{`$..children[?(@.class == 'PLScene::SNCamera')].values.FOV`, []interface{}{"60"}},
		{`$..modifiers[*].class`, []interface{}{"PLScene::SNMAnchor"}},
	}
	for idx, s := range specs {
		got, err := queryTree(tree, s.query)
		if err != nil {
			t.Fatalf("[spec %d] %v", idx, err)
		}
		if len(got) != len(s.exp) {
			t.Fatalf("[spec %d] expected %v; got %v", idx, s.exp, got)
		}
		for i := range got {
			if got[i] != s.exp[i] {
				t.Fatalf("[spec %d] expected %v; got %v", idx, s.exp, got)
			}
		}
	}

	if _, err = queryTree(tree, `$[`); err == nil {
		t.Fatal("expected an error for an invalid query")
	}
}

func TestNodeTable(t *testing.T) {
	sc, _, err := loadScene(config.Default(), writeScene(t))
	if err != nil {
		t.Fatal(err)
	}

	cam := sc.Root().Get("Kitchen.Cam")
	if cam == nil {
		t.Fatal("expected to find Kitchen.Cam")
	}

	out := nodeTable(cam, true)
	for _, exp := range []string{"Root.Kitchen.Cam", "PLScene::SNCamera", "FOV", "60", "PLScene::SNMAnchor"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected table to contain %q; got:\n%s", exp, out)
		}
	}
	if strings.Contains(out, "ZFar") {
		t.Fatalf("expected default values to be skipped; got:\n%s", out)
	}
	if !strings.Contains(nodeTable(cam, false), "ZFar") {
		t.Fatal("expected default values to be listed")
	}
}

func TestSceneWatcher(t *testing.T) {
	path := writeScene(t)
	w, err := newSceneWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err = os.WriteFile(path, []byte(testScene+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(filepath.Join(filepath.Dir(path), "other.scene"), []byte(testScene), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-w.Changes:
		if filepath.Base(changed) != "test.scene" {
			t.Fatalf("expected a change of test.scene; got %s", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change notification")
	}
}
