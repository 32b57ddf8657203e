package dom

import (
	"sort"
	"strings"

	"github.com/heathj/domcore/webidl"
)

func NewNamedNodeMap(attrs map[string]*Attr, oe *Node) *NamedNodeMap {
	a := make(map[webidl.DOMString]*Attr, len(attrs))
	for k, v := range attrs {
		v.OwnerElement = oe
		a[webidl.DOMString(k)] = v
	}
	return &NamedNodeMap{
		Length:            len(a),
		Attrs:             a,
		AssociatedElement: oe,
	}
}

// NamedNodeMap is https://dom.spec.whatwg.org/#interface-namednodemap
type NamedNodeMap struct {
	Length            int
	Attrs             map[webidl.DOMString]*Attr
	AssociatedElement *Node
}

func (n *NamedNodeMap) GetNamedItem(qn webidl.DOMString) *Attr {
	return n.getAttributeByName(qn)
}

func (n *NamedNodeMap) getAttributeByName(qn webidl.DOMString) *Attr {
	if n.AssociatedElement != nil && n.AssociatedElement.OwnerDocument != nil &&
		n.AssociatedElement.Element.NamespaceURI == Htmlns &&
		n.AssociatedElement.OwnerDocument.NodeType == DocumentNode &&
		n.AssociatedElement.OwnerDocument.Document.Type == "html" {
		qn = webidl.DOMString(strings.ToLower(string(qn)))
	}

	if v, ok := n.Attrs[qn]; ok {
		return v
	}
	return nil
}

func (n *NamedNodeMap) getAttributeByNSLocalName(ns Namespace, ln webidl.DOMString) *Attr {
	if v, ok := n.Attrs[ln]; ok {
		if v.Namespace == ns {
			return v
		}
	}
	return nil
}

func (n *NamedNodeMap) SetNamedItem(s *Attr) *Attr {
	if s == nil {
		return nil
	}
	s.OwnerElement = n.AssociatedElement

	oldAttr := n.getAttributeByNSLocalName(s.Namespace, s.LocalName)
	if oldAttr == nil {
		n.Attrs[s.LocalName] = s
		n.Length = len(n.Attrs)
		return s
	}
	if oldAttr == s {
		return s
	}
	n.Attrs[s.LocalName] = s
	return oldAttr
}

func (n *NamedNodeMap) GetNamedItemNS(ns Namespace, ln webidl.DOMString) *Attr {
	return n.getAttributeByNSLocalName(ns, ln)
}

func (n *NamedNodeMap) RemoveNamedItem(qn webidl.DOMString) *Attr {
	old := n.getAttributeByName(qn)
	if old == nil {
		return nil
	}
	delete(n.Attrs, old.LocalName)
	n.Length = len(n.Attrs)
	old.OwnerElement = nil
	return old
}

// sortedNames returns attribute names in a deterministic order, used by the
// serializer and deep equality.
func (n *NamedNodeMap) sortedNames() []string {
	keys := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		keys = append(keys, string(name))
	}
	sort.Strings(keys)
	return keys
}
