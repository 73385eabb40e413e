package rhythmdb

import "github.com/beevik/etree"

// ChildText returns the text of the first child element with the given tag.
// The second return value reports whether such a child exists; a present but
// empty element yields ("", true).
func ChildText(e *etree.Element, tag string) (string, bool) {
	child := e.SelectElement(tag)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}

// LastChildElement returns the last element among e's children, or nil when
// e has no child elements.
func LastChildElement(e *etree.Element) *etree.Element {
	children := e.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}

// Tail returns the character data immediately following child inside parent.
// In an indented document this is the whitespace run between child's closing
// tag and the next sibling (or the parent's closing tag).
func Tail(parent, child *etree.Element) string {
	if cd := tailToken(parent, child); cd != nil {
		return cd.Data
	}
	return ""
}

// SetTail replaces the character data immediately following child inside
// parent, inserting a new token when none exists.
func SetTail(parent, child *etree.Element, tail string) {
	if cd := tailToken(parent, child); cd != nil {
		cd.Data = tail
		return
	}
	parent.InsertChildAt(child.Index()+1, etree.NewText(tail))
}

func tailToken(parent, child *etree.Element) *etree.CharData {
	i := child.Index()
	if i < 0 || i+1 >= len(parent.Child) {
		return nil
	}
	cd, ok := parent.Child[i+1].(*etree.CharData)
	if !ok {
		return nil
	}
	return cd
}
