package dom

// DocumentFragment is https://dom.spec.whatwg.org/#documentfragment. A
// fragment with a non-nil Host is a shadow root
// (https://dom.spec.whatwg.org/#shadowroot); the extra fields only apply
// then.
type DocumentFragment struct {
	Host *Node

	Mode           ShadowRootMode
	DelegatesFocus bool
	Clonable       bool
	Declarative    bool
	SlotAssignment SlotAssignmentMode
}

type ShadowRootMode string

const (
	ShadowRootOpen   ShadowRootMode = "open"
	ShadowRootClosed ShadowRootMode = "closed"
)

type SlotAssignmentMode string

const (
	SlotAssignmentNamed  SlotAssignmentMode = "named"
	SlotAssignmentManual SlotAssignmentMode = "manual"
)

type ShadowRootInit struct {
	Mode           ShadowRootMode
	DelegatesFocus bool
	Clonable       bool
	SlotAssignment SlotAssignmentMode
}

// AttachShadow is https://dom.spec.whatwg.org/#dom-element-attachshadow,
// minus the valid-shadow-host-name check (the HTML layer gates which
// elements may host). A host has at most one shadow root.
func (n *Node) AttachShadow(init ShadowRootInit) (*Node, error) {
	if n.NodeType != ElementNode {
		return nil, notSupportedError("only elements can host a shadow root")
	}
	if n.Element.IsShadowHost() {
		return nil, notSupportedError("element %q already hosts a shadow root", n.NodeName)
	}
	if init.SlotAssignment == "" {
		init.SlotAssignment = SlotAssignmentNamed
	}
	shadow := NewDocumentFragmentNode(n.nodeDocument())
	shadow.DocumentFragment.Host = n
	shadow.DocumentFragment.Mode = init.Mode
	shadow.DocumentFragment.DelegatesFocus = init.DelegatesFocus
	shadow.DocumentFragment.Clonable = init.Clonable
	shadow.DocumentFragment.SlotAssignment = init.SlotAssignment
	shadow.setFlag(FlagIsInShadowTree)
	shadow.ensureRareData().containingShadowRoot = shadow
	if n.IsConnected() {
		shadow.setFlag(FlagIsConnected)
	}
	n.Element.shadowRoot = shadow
	n.bumpVersion()
	MarkNodeDirty(n, DamageContentOrHeritage)
	return shadow, nil
}

// AssignManualSlot records slottables for a slot under manual assignment
// and re-runs assignment.
func (n *Node) AssignManualSlot(slottables ...*Node) {
	rd := n.ensureRareData()
	rd.manuallyAssignedNodes = append(NodeList{}, slottables...)
	assignSlottables(n)
}

func (n *Node) isSlotElement() bool {
	return n.NodeType == ElementNode && n.Element.LocalName == "slot"
}

// slotElementName is the slot's name attribute, "" for the default slot.
func (n *Node) slotElementName() string {
	if a := n.Element.Attributes.GetNamedItem("name"); a != nil {
		return string(a.Value)
	}
	return ""
}

// isSlottable: elements and text nodes participate in slot assignment.
func (n *Node) isSlottable() bool {
	return n.NodeType == ElementNode || n.NodeType == TextNode
}

// findSlot is https://dom.spec.whatwg.org/#find-a-slot.
func findSlot(slottable *Node) *Node {
	host := slottable.ParentNode
	if host == nil || host.NodeType != ElementNode || !host.Element.IsShadowHost() {
		return nil
	}
	shadow := host.Element.shadowRoot
	manual := shadow.DocumentFragment.SlotAssignment == SlotAssignmentManual
	it := NewTreeIterator(shadow)
	for it.Next() {
		desc := it.Node()
		if !desc.isSlotElement() {
			continue
		}
		if manual {
			if desc.rare != nil && desc.rare.manuallyAssignedNodes.Contains(slottable) >= 0 {
				return desc
			}
			continue
		}
		var name string
		if slottable.NodeType == ElementNode {
			name = string(slottable.Element.SlotName())
		}
		if desc.slotElementName() == name {
			return desc
		}
	}
	return nil
}

// findSlottables is https://dom.spec.whatwg.org/#find-slotables: the host
// children this slot would receive, in tree order.
func findSlottables(slot *Node) NodeList {
	root := slot.getRoot()
	if !root.isShadowRoot() {
		return nil
	}
	host := root.DocumentFragment.Host
	var result NodeList
	for c := host.FirstChild; c != nil; c = c.NextSibling {
		if c.isSlottable() && findSlot(c) == slot {
			result = append(result, c)
		}
	}
	return result
}

// assignSlottables is https://dom.spec.whatwg.org/#assign-slotables: refresh
// one slot's assigned-nodes list, signaling slotchange if it moved.
func assignSlottables(slot *Node) {
	slottables := findSlottables(slot)
	prev := slot.AssignedNodes()
	if !slottables.equal(prev) {
		signalSlotChange(slot)
	}
	slot.ensureRareData().assignedNodes = slottables
	for _, s := range slottables {
		s.ensureRareData().assignedSlot = slot
	}
}

// assignSlottablesForTree refreshes every slot in root's inclusive
// descendants.
func assignSlottablesForTree(root *Node) {
	it := NewTreeIterator(root)
	for it.Next() {
		if n := it.Node(); n.isSlotElement() {
			assignSlottables(n)
		}
	}
}

// assignSlot is https://dom.spec.whatwg.org/#assign-a-slot.
func assignSlot(slottable *Node) {
	if slot := findSlot(slottable); slot != nil {
		assignSlottables(slot)
	} else if slottable.rare != nil {
		slottable.rare.assignedSlot = nil
	}
}

// signalSlotChange is https://dom.spec.whatwg.org/#signal-a-slot-change:
// queue the slot on its document's signal list, drained at the microtask
// checkpoint.
func signalSlotChange(slot *Node) {
	doc := slot.nodeDocument()
	if doc == nil || doc.Document == nil {
		return
	}
	for _, have := range doc.Document.signalSlots {
		if have == slot {
			return
		}
	}
	doc.Document.signalSlots = append(doc.Document.signalSlots, slot)
}
