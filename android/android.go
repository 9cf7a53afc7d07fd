// Package android implements reading and writing of Android strings.xml
// resource files.
//
// A file is held as an element tree (see Node) so that everything the
// tool does not understand (<string-array>, <plurals>, comments, tools:
// attributes) survives a load/write cycle untouched. The helpers in this
// file work on the <string> resources that are direct children of the
// root element:
//
//	<resources>
//	    <string name="apply_changes">Apply changes</string>
//	</resources>
package android

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Element and attribute names of the strings.xml format.
const (
	RootElement   = "resources"
	StringElement = "string"
	// ItemElement is a value inside <string-array> and <plurals>.
	ItemElement = "item"
	NameAttr      = "name"
	// TranslatableAttr set to "false" marks a resource that exists only in
	// the default values/strings.xml.
	TranslatableAttr = "translatable"
)

// Entry is a <string> resource: a unique name and its display text.
type Entry struct {
	Name string
	// Value is the text with Android apostrophe escapes (\') removed.
	// Inline markup (e.g. <xliff:g>) is kept as raw XML.
	Value string
	// Translatable is false for translatable="false" resources.
	Translatable bool
	// Markup is set when Value holds inline elements and must be written
	// back as XML rather than as text.
	Markup bool
}

// StringNodes returns the <string> elements directly under the root, in
// document order.
func (d *Document) StringNodes() []*Node {
	if d.Root == nil {
		return nil
	}
	var out []*Node
	for _, c := range d.Root.Children {
		if c.Kind == ElementNode && c.Name == StringElement {
			out = append(out, c)
		}
	}
	return out
}

// Lookup returns the first <string> element with the given name, or nil.
func (d *Document) Lookup(name string) *Node {
	for _, n := range d.StringNodes() {
		if v, ok := n.Attr(NameAttr); ok && v == name {
			return n
		}
	}
	return nil
}

// Has reports whether a <string> with the given name exists.
func (d *Document) Has(name string) bool {
	return d.Lookup(name) != nil
}

// Get returns the value of the named <string>.
func (d *Document) Get(name string) (string, bool) {
	n := d.Lookup(name)
	if n == nil {
		return "", false
	}
	return nodeValue(n), true
}

// Names returns the set of <string> names present in the document.
func (d *Document) Names() map[string]bool {
	names := make(map[string]bool)
	for _, n := range d.StringNodes() {
		if v, ok := n.Attr(NameAttr); ok {
			names[v] = true
		}
	}
	return names
}

// Entries returns all <string> resources in document order. Elements
// without a name attribute are skipped.
func (d *Document) Entries() []Entry {
	var out []Entry
	for _, n := range d.StringNodes() {
		name, ok := n.Attr(NameAttr)
		if !ok || name == "" {
			continue
		}
		out = append(out, Entry{
			Name:         name,
			Value:        nodeValue(n),
			Translatable: isTranslatable(n),
			Markup:       len(n.Children) > 0,
		})
	}
	return out
}

// AppendString adds <string name="name">value</string> as the last child
// of the root. The value is stored with apostrophes escaped for AAPT. No
// duplicate check is made here; see package merge.
func (d *Document) AppendString(name, value string) *Node {
	if d.Root == nil {
		d.Root = &Node{Kind: ElementNode, Name: RootElement}
	}
	n := &Node{
		Kind:  ElementNode,
		Name:  StringElement,
		Attrs: []Attr{{Name: NameAttr, Value: name}},
		Text:  EscapeApostrophes(value),
	}
	d.Root.Append(n)
	return n
}

// AppendMarkup adds a <string> whose value is raw XML content such as
// `Hello <b>world</b>`. The inline elements become child nodes. Content
// that is not well-formed is rejected and nothing is appended.
func (d *Document) AppendMarkup(name, value string) (*Node, error) {
	content, err := ParseContent(EscapeApostrophes(value))
	if err != nil {
		return nil, err
	}
	n := d.AppendString(name, "")
	n.Text = content.Text
	n.Children = content.Children
	return n, nil
}

// AppendEntry appends e as markup when e.Markup is set and the value is
// well-formed, and as plain text otherwise.
func (d *Document) AppendEntry(e Entry) *Node {
	if e.Markup {
		if n, err := d.AppendMarkup(e.Name, e.Value); err == nil {
			return n
		}
	}
	return d.AppendString(e.Name, e.Value)
}

func nodeValue(n *Node) string {
	if len(n.Children) == 0 {
		return UnescapeApostrophes(n.Text)
	}
	return UnescapeApostrophes(innerXML(n))
}

func isTranslatable(n *Node) bool {
	v, ok := n.Attr(TranslatableAttr)
	return !ok || !strings.EqualFold(v, "false")
}

// ---------------------------------------------------------------------------
// Apostrophes
// ---------------------------------------------------------------------------

// UnescapeApostrophes converts Android-escaped apostrophes (\') to plain
// apostrophes so that translators receive natural text.
func UnescapeApostrophes(s string) string {
	return strings.ReplaceAll(s, `\'`, `'`)
}

// EscapeApostrophes escapes apostrophes for AAPT without double-escaping
// (strips any existing \' first, then re-escapes).
func EscapeApostrophes(s string) string {
	s = UnescapeApostrophes(s)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// ---------------------------------------------------------------------------
// res/ directory layout
// ---------------------------------------------------------------------------

// FileName is the resource file name inside every values directory.
const FileName = "strings.xml"

// DetectLanguages scans an Android res/ directory for values-XX/ directories
// that contain strings.xml and returns the language codes in BCP-47 form.
func DetectLanguages(resDir string) []string {
	entries, err := os.ReadDir(resDir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		lang, ok := strings.CutPrefix(name, "values-")
		if !ok || lang == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(resDir, name, FileName)); err == nil {
			langs = append(langs, androidLocaleToStandard(lang))
		}
	}
	sort.Strings(langs)
	return langs
}

// LocaleDirName converts a language code to an Android values directory
// name (e.g., "pt-BR" -> "values-pt-rBR", "ar" -> "values-ar").
func LocaleDirName(lang string) string {
	return "values-" + standardToAndroidLocale(lang)
}

// StringsXMLPath returns the path to strings.xml for a given language.
func StringsXMLPath(resDir, lang string) string {
	return filepath.Join(resDir, LocaleDirName(lang), FileName)
}

// SourceStringsXMLPath returns the path to the default (source) strings.xml.
func SourceStringsXMLPath(resDir string) string {
	return filepath.Join(resDir, "values", FileName)
}

// androidLocaleToStandard converts Android locale format to standard BCP-47.
// e.g., "pt-rBR" -> "pt-BR", "zh-rCN" -> "zh-CN", "ar" -> "ar"
func androidLocaleToStandard(androidLocale string) string {
	if idx := strings.Index(androidLocale, "-r"); idx >= 0 {
		return androidLocale[:idx] + "-" + androidLocale[idx+2:]
	}
	return androidLocale
}

// standardToAndroidLocale converts standard BCP-47 to Android locale format.
// e.g., "pt-BR" -> "pt-rBR", "zh-CN" -> "zh-rCN", "ar" -> "ar"
func standardToAndroidLocale(lang string) string {
	parts := strings.SplitN(lang, "-", 2)
	if len(parts) == 2 && len(parts[1]) > 0 {
		return parts[0] + "-r" + parts[1]
	}
	return lang
}
