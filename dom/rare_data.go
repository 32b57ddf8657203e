package dom

import (
	"github.com/google/uuid"

	"github.com/heathj/domcore/webidl"
)

// RareData holds the per-node fields most nodes never touch, allocated on
// first use to keep the hot node record small.
type RareData struct {
	// mutation observer registrations, in registration order
	registeredObservers []*RegisteredObserver

	// live ranges with a boundary point on this node
	liveRanges []*Range

	// slot assignment
	assignedSlot          *Node    // the slot this slottable is assigned to
	assignedNodes         NodeList // for slot elements: slottables assigned here
	manuallyAssignedNodes NodeList // for slots under manual assignment

	// weak relation to the shadow root this node lives under, nil outside
	// shadow trees
	containingShadowRoot *Node

	implementedPseudoElement webidl.DOMString

	debugID    uuid.UUID
	hasDebugID bool

	// cached live child NodeList, revalidated against the version counter
	childList        NodeList
	childListVersion uint64
	childListValid   bool
}

func (n *Node) ensureRareData() *RareData {
	if n.rare == nil {
		n.rare = &RareData{}
	}
	return n.rare
}

// DebugID returns the node's lazily assigned unique id. Besides debugging,
// it is the documented tie-break for CompareDocumentPosition on
// disconnected nodes: stable because stored, antisymmetric because ids are
// unique and compared byte-wise.
func (n *Node) DebugID() uuid.UUID {
	rd := n.ensureRareData()
	if !rd.hasDebugID {
		rd.debugID = uuid.New()
		rd.hasDebugID = true
	}
	return rd.debugID
}

// AssignedSlot returns the slot this node is assigned to, or nil.
func (n *Node) AssignedSlot() *Node {
	if n.rare == nil {
		return nil
	}
	return n.rare.assignedSlot
}

// AssignedNodes returns the slottables assigned to this slot element.
func (n *Node) AssignedNodes() NodeList {
	if n.rare == nil {
		return nil
	}
	return n.rare.assignedNodes
}

// ContainingShadowRoot returns the shadow root whose tree this node is in,
// or nil.
func (n *Node) ContainingShadowRoot() *Node {
	if n.rare == nil {
		return nil
	}
	return n.rare.containingShadowRoot
}

// ImplementedPseudoElement reports the pseudo-element this UA-internal node
// implements, if any.
func (n *Node) ImplementedPseudoElement() (webidl.DOMString, bool) {
	if n.rare == nil || n.rare.implementedPseudoElement == "" {
		return "", false
	}
	return n.rare.implementedPseudoElement, true
}

// SetImplementedPseudoElement tags a UA-widget node with the pseudo-element
// it implements.
func (n *Node) SetImplementedPseudoElement(tag webidl.DOMString) {
	n.ensureRareData().implementedPseudoElement = tag
}

// liveRanges returns the ranges with a boundary on n, nil for most nodes.
func (n *Node) liveRanges() []*Range {
	if n.rare == nil {
		return nil
	}
	return n.rare.liveRanges
}

func (n *Node) registerRange(r *Range) {
	rd := n.ensureRareData()
	for _, have := range rd.liveRanges {
		if have == r {
			return
		}
	}
	rd.liveRanges = append(rd.liveRanges, r)
}

func (n *Node) unregisterRange(r *Range) {
	if n.rare == nil {
		return
	}
	// a range keeps its registration while either boundary is here
	if r.start.Node == n || r.end.Node == n {
		return
	}
	for i, have := range n.rare.liveRanges {
		if have == r {
			n.rare.liveRanges = append(n.rare.liveRanges[:i], n.rare.liveRanges[i+1:]...)
			return
		}
	}
}

// ChildNodes returns the node's children as a NodeList. The snapshot is
// cached in rare data and rebuilt only when the version counter says the
// subtree changed underneath it.
func (n *Node) ChildNodes() NodeList {
	rd := n.ensureRareData()
	if rd.childListValid && rd.childListVersion == n.version {
		return rd.childList
	}
	list := make(NodeList, 0, n.childrenCount)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		list = append(list, c)
	}
	rd.childList = list
	rd.childListVersion = n.version
	rd.childListValid = true
	return list
}
