package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// An element of a parsed scene document.
type element struct {
	name     string
	attrs    []xml.Attr
	line     int
	column   int
	children []*element
}

// Get the value of an attribute and whether it was present.
func (e *element) attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Get the line of the deepest last descendant.
func (e *element) lastLine() int {
	for len(e.children) > 0 {
		e = e.children[len(e.children)-1]
	}
	return e.line
}

// Parse the whole document into an element tree and return its single root
// element. Nothing is returned unless the document is well formed.
func parseDocument(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *element
		stack []*element
	)
	for {
		line, column := dec.InputPos()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			t = t.Copy()
			el := &element{
				name:   t.Name.Local,
				attrs:  t.Attr,
				line:   line,
				column: column,
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("unexpected second root element <%s> at line %d", el.name, line)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, ErrMissingScene
	}
	return root, nil
}
