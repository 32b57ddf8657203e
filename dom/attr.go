package dom

import "github.com/heathj/domcore/webidl"

// Attr is https://dom.spec.whatwg.org/#attr
type Attr struct {
	Namespace    Namespace
	Prefix       webidl.DOMString
	LocalName    webidl.DOMString
	Name         webidl.DOMString
	Value        webidl.DOMString
	OwnerElement *Node
	Specified    bool

	// rewritten on adoption along with the rest of the subtree
	OwnerDocument *Node
}

func NewAttr(name webidl.DOMString, value webidl.DOMString, oe *Node) *Attr {
	a := &Attr{
		LocalName:    name,
		Name:         name,
		Value:        value,
		OwnerElement: oe,
		Specified:    true,
	}
	if oe != nil {
		a.OwnerDocument = oe.OwnerDocument
	}
	return a
}
