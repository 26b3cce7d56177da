package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cofenberg/pixellight-sub004/asset"
	"github.com/cofenberg/pixellight-sub004/scene"
)

// The current version of the native scene format.
const formatVersion = 1

// PL reads and writes the native XML scene format:
//
//	<Scene Version="1" ...>
//		<Container Class="..." Name="..." ...> ... </Container>
//		<Node Class="..." Name="..." ...> <Modifier Class="..." .../> </Node>
//		<Modifier Class="..." .../>
//	</Scene>
type PL struct{}

// The state of a single load run.
type plLoad struct {
	opts  Options
	stats Stats

	firstLine, lastLine int
	progress            float32
}

// Load a scene document into c. Malformed documents, a missing Scene element
// and unsupported versions are rejected before c is touched. Once the body
// is being walked, problems with single elements are logged and skipped and
// nodes created so far are kept.
func (PL) Load(c *scene.Container, res *asset.Resource, opts Options) (Stats, error) {
	start := time.Now()

	doc, err := parseDocument(res)
	if err != nil {
		if errors.Is(err, ErrMissingScene) {
			return Stats{}, fmt.Errorf("%w in %s", ErrMissingScene, res.Path())
		}
		return Stats{}, fmt.Errorf("%w %s: %v", ErrMalformedDocument, res.Path(), err)
	}
	if doc.name != "Scene" {
		return Stats{}, fmt.Errorf("%w in %s (root element is <%s>)", ErrMissingScene, res.Path(), doc.name)
	}

	version, err := parseVersion(doc)
	switch {
	case err != nil:
		return Stats{}, fmt.Errorf("%w in %s: %v", ErrInvalidVersion, res.Path(), err)
	case version > formatVersion:
		return Stats{}, fmt.Errorf("%w (%s declares version %d)", ErrUnknownVersion, res.Path(), version)
	case version < 0:
		return Stats{}, fmt.Errorf("%w %d in %s", ErrInvalidVersion, version, res.Path())
	case version == 0:
		logger.Warningf("%s: format version 0 is deprecated, please resave the scene", res.Path())
	}

	clock := c.Scene().Clock()
	defer clock.Pause(clock.Pause(true))

	l := &plLoad{opts: opts}
	l.loadV1(c, doc)

	l.stats.Elapsed = time.Since(start)
	l.stats.log("loading", res.Path())
	return l.stats, nil
}

// A missing Version attribute reads as 0.
func parseVersion(doc *element) (int, error) {
	value, ok := doc.attr("Version")
	if !ok || strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(value))
}

func (l *plLoad) loadV1(c *scene.Container, doc *element) {
	if len(doc.children) > 0 {
		l.firstLine = doc.children[0].line
		l.lastLine = doc.lastLine()
	}

	var params []scene.Param
	for _, a := range doc.attrs {
		switch a.Name.Local {
		case "Version":
		case "Name":
			if a.Value != "" && a.Value != c.Name() {
				if err := c.SetName(a.Value); err != nil {
					logger.Warningf("scene element: can't rename %q to %q: %v", c.Path(), a.Value, err)
				}
			}
		default:
			params = append(params, scene.Param{Name: a.Name.Local, Value: a.Value})
		}
	}
	if err := c.SetValues(params); err != nil {
		logger.Warningf("scene element: %v", err)
	}

	// Deactivate the container while loading
	active := c.IsActive()
	c.SetActive(false)
	defer c.SetActive(active)

	l.loadRec(c, doc)
	l.emitProgress(1)
}

func (l *plLoad) loadRec(c *scene.Container, parent *element) {
	for _, el := range parent.children {
		l.emitProgress(l.lineFraction(el.line))

		switch el.name {
		case "Node":
			n := l.loadNode(c, el, false)
			if n == nil {
				continue
			}
			for _, child := range el.children {
				if child.name == "Modifier" {
					l.loadModifier(n, child)
				}
			}
			l.stats.Nodes++
		case "Container":
			n := l.loadNode(c, el, true)
			if n != nil && n.IsContainer() {
				l.loadRec(n.AsContainer(), el)
			} else if n != nil {
				logger.Errorf("node class %q at line %d is no scene container", n.Class(), el.line)
			}
			l.stats.Containers++
		case "Modifier":
			l.loadModifier(c.Node, el)
		}
	}
}

// Create the node described by el. Elements without a class are skipped;
// unknown classes are replaced by placeholders.
func (l *plLoad) loadNode(c *scene.Container, el *element, container bool) *scene.Node {
	class, _ := el.attr("Class")
	if class == "" {
		logger.Errorf("%s at line %d, column %d has no class name", el.name, el.line, el.column)
		return nil
	}

	name, _ := el.attr("Name")
	params := elementParams(el)
	if cls, ok := c.Scene().Registry().Lookup(class); ok && cls.Base != scene.BaseModifier {
		return c.Create(class, name, params)
	}

	logger.Errorf("%s at line %d, column %d has an unknown class name (%q)", el.name, el.line, el.column, class)
	return c.CreatePlaceholder(class, name, params, container)
}

// Attach the modifier described by el. Modifiers that can't be resolved,
// including those without a class, are replaced by placeholders.
func (l *plLoad) loadModifier(n *scene.Node, el *element) *scene.Modifier {
	l.stats.Modifiers++

	class, _ := el.attr("Class")
	params := elementParams(el)
	if class != "" {
		if cls, ok := n.Scene().Registry().Lookup(class); ok && cls.Base == scene.BaseModifier {
			return n.AddModifier(class, params)
		}
		logger.Errorf("%s at line %d, column %d has an unknown class name (%q)", el.name, el.line, el.column, class)
	} else {
		logger.Errorf("%s at line %d, column %d has no class name", el.name, el.line, el.column)
		class = scene.UnknownModifierClass
	}
	return n.AddPlaceholderModifier(class, params)
}

func elementParams(el *element) []scene.Param {
	params := make([]scene.Param, 0, len(el.attrs))
	for _, a := range el.attrs {
		params = append(params, scene.Param{Name: a.Name.Local, Value: a.Value})
	}
	return params
}

func (l *plLoad) lineFraction(line int) float32 {
	if l.lastLine <= l.firstLine {
		return 0
	}
	return float32(line-l.firstLine) / float32(l.lastLine-l.firstLine)
}

func (l *plLoad) emitProgress(fraction float32) {
	if fraction > 1 {
		fraction = 1
	}
	if fraction < l.progress {
		fraction = l.progress
	}
	l.progress = fraction
	if l.opts.Progress != nil {
		l.opts.Progress(fraction)
	}
}

// Save c as a scene document. Nodes and modifiers flagged as automatic are
// skipped.
func (PL) Save(c *scene.Container, w io.Writer, opts Options) (Stats, error) {
	start := time.Now()
	var stats Stats

	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0"`)}); err != nil {
		return stats, err
	}
	if err := enc.EncodeToken(xml.CharData("\n")); err != nil {
		return stats, err
	}

	attrs := []xml.Attr{attr("Version", strconv.Itoa(formatVersion))}
	if c.Kind() != scene.KindSceneRoot || c.Name() != scene.RootName {
		attrs = append(attrs, attr("Name", c.Name()))
	}
	attrs = appendValues(attrs, c.Values(opts.NoDefault))
	sceneEl := xml.StartElement{Name: xml.Name{Local: "Scene"}, Attr: attrs}
	if err := enc.EncodeToken(sceneEl); err != nil {
		return stats, err
	}
	if err := saveRec(enc, c, opts, &stats); err != nil {
		return stats, err
	}
	if err := enc.EncodeToken(sceneEl.End()); err != nil {
		return stats, err
	}
	if err := enc.Flush(); err != nil {
		return stats, err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return stats, err
	}

	stats.Elapsed = time.Since(start)
	stats.log("saving", c.Path())
	return stats, nil
}

func saveRec(enc *xml.Encoder, c *scene.Container, opts Options, stats *Stats) error {
	if err := saveModifiers(enc, c.Node, opts, stats); err != nil {
		return err
	}

	for _, n := range c.Nodes() {
		if n.Flags()&scene.Automatic != 0 {
			continue
		}

		tag := "Node"
		if n.IsContainer() {
			tag = "Container"
		}
		attrs := []xml.Attr{attr("Class", n.Class()), attr("Name", n.Name())}
		el := xml.StartElement{Name: xml.Name{Local: tag}, Attr: appendValues(attrs, n.Values(opts.NoDefault))}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}

		var err error
		if n.IsContainer() {
			err = saveRec(enc, n.AsContainer(), opts, stats)
			stats.Containers++
		} else {
			err = saveModifiers(enc, n, opts, stats)
			stats.Nodes++
		}
		if err != nil {
			return err
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return err
		}
	}
	return nil
}

func saveModifiers(enc *xml.Encoder, n *scene.Node, opts Options, stats *Stats) error {
	for _, m := range n.Modifiers() {
		if m.Flags()&scene.ModifierAutomatic != 0 {
			continue
		}
		attrs := []xml.Attr{attr("Class", m.Class())}
		el := xml.StartElement{Name: xml.Name{Local: "Modifier"}, Attr: appendValues(attrs, m.Values(opts.NoDefault))}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return err
		}
		stats.Modifiers++
	}
	return nil
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func appendValues(attrs []xml.Attr, values []scene.Param) []xml.Attr {
	for _, v := range values {
		attrs = append(attrs, attr(v.Name, v.Value))
	}
	return attrs
}
