package dom

import (
	"github.com/heathj/domcore/webidl"
)

type Namespace uint

const (
	Htmlns Namespace = iota
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

// https://dom.spec.whatwg.org/#htmlcollection
type HTMLCollection []*Node

// Children is https://dom.spec.whatwg.org/#dom-parentnode-children: the
// element children, in tree order.
func (n *Node) Children() HTMLCollection {
	var out HTMLCollection
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// CustomElementState is https://dom.spec.whatwg.org/#concept-element-custom-element-state.
type CustomElementState uint

const (
	CustomStateUndefined CustomElementState = iota
	CustomStateFailed
	CustomStateUncustomized
	CustomStateCustom
	CustomStatePrecustomized
)

// Element is https://dom.spec.whatwg.org/#interface-element
type Element struct {
	NamespaceURI          Namespace
	Prefix, LocalName, Id webidl.DOMString
	Attributes            *NamedNodeMap
	CustomState           CustomElementState
	IsValue               webidl.DOMString

	// at most one attached shadow root per host
	shadowRoot *Node
}

// ShadowRoot returns the host's attached shadow root node, or nil. A closed
// root is still returned; script-visibility filtering is the embedder's
// concern.
func (e *Element) ShadowRoot() *Node { return e.shadowRoot }

// IsShadowHost reports whether the element hosts a shadow root.
func (e *Element) IsShadowHost() bool { return e.shadowRoot != nil }

func (e *Element) isCustom() bool { return e.CustomState == CustomStateCustom }

// SlotName returns the value of the element's slot attribute, the name used
// for named slot assignment.
func (e *Element) SlotName() webidl.DOMString {
	if a := e.Attributes.GetNamedItem("slot"); a != nil {
		return a.Value
	}
	return ""
}

// qualifiedName is prefix:localName, or localName with no prefix.
func (e *Element) qualifiedName() webidl.DOMString {
	if e.Prefix != "" {
		return e.Prefix + ":" + e.LocalName
	}
	return e.LocalName
}

// HasAttribute is https://dom.spec.whatwg.org/#dom-element-hasattribute.
func (n *Node) HasAttribute(qualifiedName webidl.DOMString) bool {
	return n.Element.Attributes.GetNamedItem(qualifiedName) != nil
}

// GetAttribute is https://dom.spec.whatwg.org/#dom-element-getattribute.
// The second return distinguishes a missing attribute from an empty value.
func (n *Node) GetAttribute(qualifiedName webidl.DOMString) (webidl.DOMString, bool) {
	a := n.Element.Attributes.GetNamedItem(qualifiedName)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetAttribute is https://dom.spec.whatwg.org/#dom-element-setattribute,
// minus the qualified-name validation (the parser hands us pre-validated
// names). Queues an attribute mutation record with the old value and dirties
// the node.
func (n *Node) SetAttribute(qualifiedName, value webidl.DOMString) {
	old := n.Element.Attributes.GetNamedItem(qualifiedName)
	var oldValue webidl.DOMString
	hadOld := old != nil
	if hadOld {
		oldValue = old.Value
	}
	queueAttributeMutationRecord(n, qualifiedName, oldValue, hadOld)
	if hadOld {
		old.Value = value
	} else {
		n.Element.Attributes.SetNamedItem(&Attr{
			LocalName: qualifiedName,
			Name:      qualifiedName,
			Value:     value,
			Namespace: n.Element.NamespaceURI,
		})
	}
	n.attributeChanged(qualifiedName)
}

// RemoveAttribute is https://dom.spec.whatwg.org/#dom-element-removeattribute.
func (n *Node) RemoveAttribute(qualifiedName webidl.DOMString) {
	old := n.Element.Attributes.GetNamedItem(qualifiedName)
	if old == nil {
		return
	}
	queueAttributeMutationRecord(n, qualifiedName, old.Value, true)
	n.Element.Attributes.RemoveNamedItem(qualifiedName)
	n.attributeChanged(qualifiedName)
}

// ToggleAttribute is https://dom.spec.whatwg.org/#dom-element-toggleattribute.
func (n *Node) ToggleAttribute(qualifiedName webidl.DOMString, force ...bool) bool {
	has := n.HasAttribute(qualifiedName)
	want := !has
	if len(force) > 0 {
		want = force[0]
	}
	switch {
	case want && !has:
		n.SetAttribute(qualifiedName, "")
	case !want && has:
		n.RemoveAttribute(qualifiedName)
	}
	return want
}

// attributeChanged runs the shared post-change bookkeeping: version bump,
// slot reassignment when the slot attribute moved, and dirtying.
func (n *Node) attributeChanged(qualifiedName webidl.DOMString) {
	n.bumpVersion()
	if qualifiedName == "slot" && n.ParentNode != nil && n.ParentNode.NodeType == ElementNode && n.ParentNode.Element.IsShadowHost() {
		assignSlot(n)
		assignSlottablesForTree(n.ParentNode.Element.shadowRoot)
	}
	damage := DamageOther
	if qualifiedName == "style" {
		damage = DamageStyleAttribute
	}
	MarkNodeDirty(n, damage)
}
