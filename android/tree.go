package android

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ---------------------------------------------------------------------------
// Tree model
// ---------------------------------------------------------------------------

// NodeKind identifies the type of a tree node.
type NodeKind int

const (
	// ElementNode is an XML element.
	ElementNode NodeKind = iota
	// CommentNode is an XML comment; its body is kept in Text.
	CommentNode
)

// Attr is a single attribute. Name keeps the namespace prefix as written
// in the file (e.g. "tools:ignore").
type Attr struct {
	Name  string
	Value string
}

// Node is one element (or comment) of a resource document.
//
// Character data is split the same way on every node: Text holds what
// appears between the start tag and the first child, Tail holds what
// appears after the end tag and before the next sibling. Whitespace used
// for layout therefore lives in Text/Tail and can be rewritten by Indent
// without touching values.
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []Attr
	Text     string
	Tail     string
	Children []*Node
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// mixed reports whether n carries non-whitespace character data between
// its children (e.g. <string>Hello <b>world</b>!</string>). Such content
// is a value, not layout.
func (n *Node) mixed() bool {
	if !isBlank(n.Text) {
		return true
	}
	for _, c := range n.Children {
		if !isBlank(c.Tail) {
			return true
		}
	}
	return false
}

// holdsValue reports whether n is a value element whose content is
// display text, markup included.
func (n *Node) holdsValue() bool {
	return n.Kind == ElementNode && (n.Name == StringElement || n.Name == ItemElement)
}

// Document is a parsed resource file: a single root element, normally
// <resources>.
type Document struct {
	Root *Node
}

// New returns an empty document with a bare <resources> root.
func New() *Document {
	return &Document{Root: &Node{Kind: ElementNode, Name: RootElement}}
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseError reports a resource file that is not well-formed XML.
type ParseError struct {
	// Path is the file path, empty when parsing in-memory data.
	Path string
	// Line is the 1-based input line where parsing stopped.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s:%d: %v", where, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the document at path. A missing file is not an error: an empty
// document is returned instead. A malformed file yields a *ParseError.
func Load(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	return ParseFile(path)
}

// ParseFile reads and parses a resource file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse parses resource XML into a tree. Processing instructions and
// directives are dropped; comments inside the root element are kept.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	fail := func(err error) (*Document, error) {
		line, _ := dec.InputPos()
		return nil, &ParseError{Line: line, Err: err}
	}

	var root *Node
	var stack []*Node

	for {
		// RawToken keeps namespace prefixes as written ("xliff:g"), so
		// start/end matching is checked here instead of by the decoder.
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Name: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: qualifiedName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return fail(fmt.Errorf("unexpected second root element <%s>", n.Name))
				}
				root = n
			} else {
				stack[len(stack)-1].Append(n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return fail(fmt.Errorf("unexpected end element </%s>", name))
			}
			if top := stack[len(stack)-1]; top.Name != name {
				return fail(fmt.Errorf("element <%s> closed by </%s>", top.Name, name))
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if !isBlank(string(t)) {
					return fail(fmt.Errorf("text outside the root element"))
				}
				continue
			}
			appendCharData(stack[len(stack)-1], string(t))

		case xml.Comment:
			if len(stack) == 0 {
				continue
			}
			stack[len(stack)-1].Append(&Node{Kind: CommentNode, Text: string(t)})
		}
	}

	if len(stack) > 0 {
		return fail(fmt.Errorf("unexpected end of input: <%s> is not closed", stack[len(stack)-1].Name))
	}
	if root == nil {
		return fail(fmt.Errorf("no root element"))
	}
	return &Document{Root: root}, nil
}

// ParseContent parses s as the content of a value element, e.g.
// `Hello <b>world</b>`, and returns it wrapped in a detached <string>
// node. Content that is not well-formed yields a *ParseError.
func ParseContent(s string) (*Node, error) {
	doc, err := Parse([]byte("<" + StringElement + ">" + s + "</" + StringElement + ">"))
	if err != nil {
		return nil, err
	}
	return doc.Root, nil
}

func appendCharData(n *Node, s string) {
	if len(n.Children) == 0 {
		n.Text += s
		return
	}
	last := n.Children[len(n.Children)-1]
	last.Tail += s
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// ---------------------------------------------------------------------------
// Pretty printing
// ---------------------------------------------------------------------------

const indentUnit = "    "

// Indent rewrites layout whitespace so that every child element sits on
// its own line, indented by four spaces per level, with the root's closing
// tag at column 0. Only empty or whitespace-only Text/Tail is replaced.
// The content of value elements (<string>, <item>) is never touched, even
// when it is nothing but markup, so Indent is idempotent and never changes
// a value.
func (d *Document) Indent() {
	if d.Root != nil {
		indent(d.Root, 0)
	}
}

func indent(n *Node, level int) {
	pad := "\n" + strings.Repeat(indentUnit, level)
	if len(n.Children) > 0 && !n.holdsValue() && !n.mixed() {
		if isBlank(n.Text) {
			n.Text = pad + indentUnit
		}
		for _, c := range n.Children {
			indent(c, level+1)
		}
		// The last child's tail closes this element at its own depth.
		last := n.Children[len(n.Children)-1]
		if isBlank(last.Tail) {
			last.Tail = pad
		}
	}
	if level > 0 && isBlank(n.Tail) {
		n.Tail = pad
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Header is the XML declaration written at the top of every file.
const Header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Marshal serializes the document. Text and tails are written exactly as
// stored, so the layout is whatever the tree holds (see Indent).
func (d *Document) Marshal() []byte {
	var b strings.Builder
	b.WriteString(Header)
	if d.Root != nil {
		writeNode(&b, d.Root, false)
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// WriteFile serializes the document to path in a single write, creating
// the parent directory when it does not exist.
func (d *Document) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, d.Marshal(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeNode writes n and, unless inner is set, its tail.
func writeNode(b *strings.Builder, n *Node, inner bool) {
	if n.Kind == CommentNode {
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	} else {
		b.WriteString("<")
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteString(" ")
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteString(`"`)
		}
		if n.Text == "" && len(n.Children) == 0 {
			b.WriteString(" />")
		} else {
			b.WriteString(">")
			writeContent(b, n)
			b.WriteString("</")
			b.WriteString(n.Name)
			b.WriteString(">")
		}
	}
	if !inner {
		b.WriteString(escapeText(n.Tail))
	}
}

// writeContent writes everything between n's start and end tags.
func writeContent(b *strings.Builder, n *Node) {
	b.WriteString(escapeText(n.Text))
	for _, c := range n.Children {
		writeNode(b, c, false)
	}
}

// innerXML returns the serialized content of n without its own tags.
func innerXML(n *Node) string {
	var b strings.Builder
	writeContent(&b, n)
	return b.String()
}

// escapeText escapes character data. Newlines and tabs are written
// literally so that layout whitespace stays readable.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

func escapeAttr(s string) string {
	s = escapeText(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "\n", "&#10;")
	return strings.ReplaceAll(s, "\t", "&#9;")
}
