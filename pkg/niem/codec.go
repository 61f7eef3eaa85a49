package niem

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/agentstation/foiafix/pkg/errors"
)

// Header is written before the root element of every encoded document.
const Header = `<?xml version="1.0"?>`

// Document is a parsed report file.
type Document struct {
	Root *Element
}

// Decode parses an XML document into an ordered element tree. Namespace
// prefixes are kept verbatim, whitespace-only text is dropped, and comments,
// processing instructions and directives are discarded.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		root  *Element
		stack []*Element
	)

	for {
		token, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("xml", "", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			el := &Element{Name: qualified(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.NewParseError("xml", "", "multiple root elements", nil)
				}
				root = el
			} else {
				stack[len(stack)-1].Append(el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1].Name != qualified(t.Name) {
				return nil, errors.NewParseError("xml", "", "unexpected end element "+qualified(t.Name), nil)
			}
			top := stack[len(stack)-1]
			if len(top.Children) > 0 {
				top.Text = strings.TrimSpace(top.Text)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			stack[len(stack)-1].Text += text
		}
	}

	if root == nil {
		return nil, errors.NewParseError("xml", "", "document has no root element", nil)
	}
	if len(stack) > 0 {
		return nil, errors.NewParseError("xml", "", "unclosed element "+stack[len(stack)-1].Name, nil)
	}
	return &Document{Root: root}, nil
}

// DecodeBytes parses a document held in memory.
func DecodeBytes(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Encode writes the canonical single-line form of the document.
func (d *Document) Encode(w io.Writer) error {
	return d.encode(w, "")
}

// EncodeIndent writes a pretty-printed form, one element per line.
func (d *Document) EncodeIndent(w io.Writer, indent string) error {
	return d.encode(w, indent)
}

func (d *Document) encode(w io.Writer, indent string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	if indent != "" {
		bw.WriteByte('\n')
	}
	if err := writeElement(bw, d.Root, indent, 0); err != nil {
		return err
	}
	if indent != "" {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeElement(w *bufio.Writer, e *Element, indent string, depth int) error {
	pretty := indent != ""
	if pretty {
		w.WriteString(strings.Repeat(indent, depth))
	}

	w.WriteByte('<')
	w.WriteString(e.Name)
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}

	if e.Text == "" && len(e.Children) == 0 {
		w.WriteString("/>")
		return nil
	}
	w.WriteByte('>')

	if e.Text != "" {
		if err := xml.EscapeText(w, []byte(e.Text)); err != nil {
			return err
		}
	}

	if len(e.Children) > 0 {
		for _, c := range e.Children {
			if pretty {
				w.WriteByte('\n')
			}
			if err := writeElement(w, c, indent, depth+1); err != nil {
				return err
			}
		}
		if pretty {
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(indent, depth))
		}
	}

	w.WriteString("</")
	w.WriteString(e.Name)
	w.WriteByte('>')
	return nil
}
