package theme

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
)

// RootElement is the element whose children are components.
const RootElement = "Theme"

// ErrNoTheme reports a document without a <Theme> element.
var ErrNoTheme = errors.New("theme: no Theme element")

// Descriptor is a parsed theme: components keyed by element name, with
// document order kept in Order.
type Descriptor struct {
	Order      []string
	Components map[string]Attributes
}

// Component returns the attributes of the named component.
func (d *Descriptor) Component(name string) (Attributes, bool) {
	if d == nil {
		return nil, false
	}
	a, ok := d.Components[name]
	return a, ok
}

// Parse reads a theme descriptor. A repeated component name replaces the
// earlier one but keeps its original position in Order.
func Parse(r io.Reader) (*Descriptor, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	d := &Descriptor{Components: make(map[string]Attributes)}
	found := false
	depth, themeDepth := 0, -1
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("theme: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case themeDepth < 0 && t.Name.Local == RootElement:
				themeDepth = depth
				found = true
			case themeDepth >= 0 && depth == themeDepth+1:
				d.add(t)
			}
		case xml.EndElement:
			if depth == themeDepth {
				themeDepth = -1
			}
			depth--
		}
	}
	if !found {
		return nil, ErrNoTheme
	}
	return d, nil
}

func (d *Descriptor) add(el xml.StartElement) {
	name := el.Name.Local
	attrs := make(Attributes, len(el.Attr))
	for _, a := range el.Attr {
		attrs[a.Name.Local] = ParseValue(a.Value)
	}
	if _, seen := d.Components[name]; !seen {
		d.Order = append(d.Order, name)
	}
	d.Components[name] = attrs
}

// charsetReader decodes the legacy encodings HyperSpin themes are often
// saved in (ISO-8859-1, windows-1252, ...).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("theme: charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("theme: charset %q unsupported", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
