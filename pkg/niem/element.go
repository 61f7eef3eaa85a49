package niem

import "slices"

// Attr is a single attribute, keeping its namespace prefix in Name (for
// example "s:id").
type Attr struct {
	Name  string
	Value string
}

// Element is a node in an ordered document tree. Names keep their namespace
// prefix ("nc:Organization"). Text holds character data for leaf elements.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement returns an element with the given name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// NewText returns a leaf element holding text.
func NewText(name, text string) *Element {
	return &Element{Name: name, Text: text}
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or adds an attribute, keeping attribute order stable.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given name, in order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find follows a path of child names and returns the first match, or nil.
func (e *Element) Find(path ...string) *Element {
	cur := e
	for _, name := range path {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Append adds children at the end.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// InsertBefore inserts children before ref. When ref is nil or not a child
// the children are appended.
func (e *Element) InsertBefore(ref *Element, children ...*Element) {
	i := e.indexOf(ref)
	if i < 0 {
		e.Append(children...)
		return
	}
	e.Children = slices.Insert(e.Children, i, children...)
}

// Remove deletes child from e and reports whether it was present.
func (e *Element) Remove(child *Element) bool {
	i := e.indexOf(child)
	if i < 0 {
		return false
	}
	e.Children = slices.Delete(e.Children, i, i+1)
	return true
}

// Rename changes the name of the first direct child called from.
func (e *Element) Rename(from, to string) bool {
	if c := e.Child(from); c != nil {
		c.Name = to
		return true
	}
	return false
}

// Walk visits e and its descendants depth-first in document order. Returning
// false from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	out := &Element{
		Name:  e.Name,
		Attrs: slices.Clone(e.Attrs),
		Text:  e.Text,
	}
	if e.Children != nil {
		out.Children = make([]*Element, len(e.Children))
		for i, c := range e.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

func (e *Element) indexOf(child *Element) int {
	if child == nil {
		return -1
	}
	return slices.Index(e.Children, child)
}
