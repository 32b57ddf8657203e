package dom

import "github.com/heathj/domcore/webidl"

// Structural mutation algorithms, https://dom.spec.whatwg.org/#mutation-algorithms.
// Every operation follows the same phase order: validate, adjust live
// ranges, splice links and propagate flags, run slot/shadow bookkeeping,
// fire children-changed synchronously, queue mutation records, and defer
// post-connection steps until the outermost blocker scope unwinds.
// Validation happens before any state is touched, so a failed call leaves
// both trees exactly as they were.

// ensurePreInsertionValidity is
// https://dom.spec.whatwg.org/#concept-node-ensure-pre-insertion-validity.
// Pure validation; no mutation.
func ensurePreInsertionValidity(node, parent, child *Node) error {
	switch parent.NodeType {
	case DocumentNode, DocumentFragmentNode, ElementNode:
	default:
		return hierarchyRequestError("parent kind %d cannot host children", parent.NodeType)
	}
	if node.isHostIncludingInclusiveAncestorOf(parent) {
		return hierarchyRequestError("node is an inclusive ancestor of parent")
	}
	if child != nil && child.ParentNode != parent {
		return notFoundError("reference child is not a child of parent")
	}
	switch node.NodeType {
	case DocumentFragmentNode, DocumentTypeNode, ElementNode,
		TextNode, CDATASectionNode, ProcessingInstructionNode, CommentNode:
	default:
		return hierarchyRequestError("node kind %d cannot be inserted", node.NodeType)
	}
	if node.NodeType == TextNode && parent.NodeType == DocumentNode {
		return hierarchyRequestError("cannot insert a text node directly under a document")
	}
	if node.NodeType == DocumentTypeNode && parent.NodeType != DocumentNode {
		return hierarchyRequestError("a doctype can only be inserted under a document")
	}
	if parent.NodeType != DocumentNode {
		return nil
	}

	switch node.NodeType {
	case DocumentFragmentNode:
		elementChildren := 0
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch c.NodeType {
			case ElementNode:
				elementChildren++
			case TextNode:
				return hierarchyRequestError("fragment with a text child cannot be inserted under a document")
			}
		}
		if elementChildren > 1 {
			return hierarchyRequestError("fragment with %d element children cannot be inserted under a document", elementChildren)
		}
		if elementChildren == 1 {
			if hasElementChildOtherThan(parent, nil) {
				return hierarchyRequestError("document already has an element child")
			}
			if err := checkAgainstDoctypePosition(child); err != nil {
				return err
			}
		}
	case ElementNode:
		if hasElementChildOtherThan(parent, nil) {
			return hierarchyRequestError("document already has an element child")
		}
		if err := checkAgainstDoctypePosition(child); err != nil {
			return err
		}
	case DocumentTypeNode:
		if hasDoctypeChildOtherThan(parent, nil) {
			return hierarchyRequestError("document already has a doctype child")
		}
		if child != nil && elementPreceding(child) {
			return hierarchyRequestError("doctype cannot follow the document element")
		}
		if child == nil && hasElementChildOtherThan(parent, nil) {
			return hierarchyRequestError("doctype cannot follow the document element")
		}
	}
	return nil
}

func hasElementChildOtherThan(parent, exclude *Node) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode && c != exclude {
			return true
		}
	}
	return false
}

func hasDoctypeChildOtherThan(parent, exclude *Node) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == DocumentTypeNode && c != exclude {
			return true
		}
	}
	return false
}

// checkAgainstDoctypePosition rejects placing an element before the
// document's doctype: the reference child may not be a doctype, nor may a
// doctype follow it.
func checkAgainstDoctypePosition(child *Node) error {
	if child == nil {
		return nil
	}
	if child.NodeType == DocumentTypeNode {
		return hierarchyRequestError("element cannot be inserted before the doctype")
	}
	if doctypeFollowing(child) {
		return hierarchyRequestError("element cannot be inserted before the doctype")
	}
	return nil
}

// doctypeFollowing reports whether a doctype sibling follows child.
func doctypeFollowing(child *Node) bool {
	for s := child.NextSibling; s != nil; s = s.NextSibling {
		if s.NodeType == DocumentTypeNode {
			return true
		}
	}
	return false
}

// elementPreceding reports whether an element sibling precedes child.
func elementPreceding(child *Node) bool {
	for s := child.PreviousSibling; s != nil; s = s.PreviousSibling {
		if s.NodeType == ElementNode {
			return true
		}
	}
	return false
}

// PreInsert is https://dom.spec.whatwg.org/#concept-node-pre-insert:
// validate, resolve the reference child (inserting a node before itself
// means before its current next sibling), insert. Returns the inserted node
// itself, never a copy.
func PreInsert(node, parent, child *Node) (*Node, error) {
	if err := ensurePreInsertionValidity(node, parent, child); err != nil {
		return nil, err
	}
	refChild := child
	if refChild == node {
		refChild = node.NextSibling
	}
	insertNode(node, parent, refChild, false)
	return node, nil
}

// InsertBefore is https://dom.spec.whatwg.org/#dom-node-insertbefore.
func (n *Node) InsertBefore(node, child *Node) (*Node, error) {
	defer logMutation(n, "InsertBefore")()
	return PreInsert(node, n, child)
}

// AppendChild is https://dom.spec.whatwg.org/#dom-node-appendchild.
func (n *Node) AppendChild(node *Node) (*Node, error) {
	defer logMutation(n, "AppendChild")()
	return PreInsert(node, n, nil)
}

// RemoveChild is https://dom.spec.whatwg.org/#dom-node-removechild.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	defer logMutation(n, "RemoveChild")()
	if child.ParentNode != n {
		return nil, notFoundError("node to remove is not a child of this node")
	}
	removeNode(child, false)
	return child, nil
}

// insertNode is https://dom.spec.whatwg.org/#concept-node-insert. Fragments
// are emptied, not copied: their children move. With suppressObservers set,
// neither the children-changed hook nor a mutation record fires here; the
// caller owns the single logical notification.
func insertNode(node, parent, child *Node, suppressObservers bool) {
	doc := parent.nodeDocument()
	if doc != nil && doc.Document != nil {
		doc.Document.incrementBlocker()
		defer doc.Document.decrementBlocker()
	}

	var nodes NodeList
	if node.NodeType == DocumentFragmentNode {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
	} else {
		nodes = NodeList{node}
	}
	count := len(nodes)
	if count == 0 {
		return
	}
	if node.NodeType == DocumentFragmentNode {
		for _, c := range nodes {
			removeNode(c, true)
		}
		// observers on the emptied fragment see the move
		queueTreeMutationRecord(node, nil, nodes, nil, nil)
	}

	// Adoption first: it detaches a node being moved, so the range
	// adjustment below sees post-removal indices.
	for _, n := range nodes {
		if doc != nil {
			adopt(n, doc)
		} else if n.ParentNode != nil {
			removeNode(n, false)
		}
	}

	if child != nil {
		childIndex := child.index()
		for _, r := range parent.liveRanges() {
			r.nodesInserted(parent, childIndex, count)
		}
	}

	var prev *Node
	if child != nil {
		prev = child.PreviousSibling
	} else {
		prev = parent.LastChild
	}

	for _, n := range nodes {
		spliceBefore(parent, n, child)
		parent.bumpVersion()

		if parent.NodeType == ElementNode && parent.Element.IsShadowHost() && n.isSlottable() {
			assignSlot(n)
		}
		if parent.isSlotElement() && parent.getRoot().isShadowRoot() && len(parent.AssignedNodes()) == 0 {
			signalSlotChange(parent)
		}
		assignSlottablesForTree(n.getRoot())

		ctx := &BindContext{SubtreeRoot: n, Parent: parent, Connected: parent.IsConnected()}
		bindNodeToTree(n, parent.IsConnected(), parent.IsInDocumentTree(),
			parent.IsInShadowTree() || parent.isShadowRoot(),
			parent.HasFlag(FlagInUAWidget), containingShadowRootFor(parent), ctx)

		if n.IsConnected() && doc != nil && doc.Document != nil {
			doc.Document.deferPostConnection(n)
		}
	}

	if !suppressObservers {
		parent.childrenChanged(&ChildrenChange{
			Added:           nodes,
			PreviousSibling: prev,
			NextSibling:     child,
		})
		queueTreeMutationRecord(parent, nodes, nil, prev, child)
	}
	MarkNodeDirty(parent, DamageContentOrHeritage)
}

// removeNode is https://dom.spec.whatwg.org/#concept-node-remove. The
// node's parent must be non-nil.
func removeNode(node *Node, suppressObservers bool) {
	parent := node.ParentNode
	index := node.index()

	doc := node.nodeDocument()
	if doc != nil && doc.Document != nil {
		for _, r := range doc.Document.ranges {
			r.nodeAboutToBeRemoved(node, parent, index)
		}
	}

	prev, next := node.PreviousSibling, node.NextSibling
	detachFromParent(node)
	parent.bumpVersion()
	node.version++

	if slot := node.AssignedSlot(); slot != nil {
		assignSlottables(slot)
		node.rare.assignedSlot = nil
	}
	if parent.isSlotElement() && parent.getRoot().isShadowRoot() && len(parent.AssignedNodes()) == 0 {
		signalSlotChange(parent)
	}
	if hasSlotDescendant(node) {
		assignSlottablesForTree(parent.getRoot())
	}

	ctx := &BindContext{SubtreeRoot: node, Parent: parent, Connected: false}
	unbindNodeFromTree(node, false, ctx)

	if !suppressObservers {
		parent.childrenChanged(&ChildrenChange{
			Removed:         NodeList{node},
			PreviousSibling: prev,
			NextSibling:     next,
		})
		queueTreeMutationRecord(parent, nil, NodeList{node}, prev, next)
	}
	MarkNodeDirty(parent, DamageContentOrHeritage)
}

// ReplaceChild is https://dom.spec.whatwg.org/#concept-node-replace: one
// logical mutation. The removal and insertion run with observers
// suppressed; a single children-changed call and a single mutation record
// cover the whole swap. The replacement is adopted before the old child is
// removed so record ordering matches what script observes.
func (n *Node) ReplaceChild(node, child *Node) (*Node, error) {
	defer logMutation(n, "ReplaceChild")()
	if err := ensureReplaceValidity(node, n, child); err != nil {
		return nil, err
	}

	doc := n.nodeDocument()
	if doc != nil && doc.Document != nil {
		doc.Document.incrementBlocker()
		defer doc.Document.decrementBlocker()
	}

	refChild := child.NextSibling
	if refChild == node {
		refChild = node.NextSibling
	}
	prev := child.PreviousSibling

	if doc != nil {
		adopt(node, doc)
	}

	var removed NodeList
	if child.ParentNode != nil {
		removed = NodeList{child}
		removeNode(child, true)
	}

	var added NodeList
	if node.NodeType == DocumentFragmentNode {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			added = append(added, c)
		}
	} else {
		added = NodeList{node}
	}

	insertNode(node, n, refChild, true)

	n.childrenChanged(&ChildrenChange{
		Added:           added,
		Removed:         removed,
		PreviousSibling: prev,
		NextSibling:     refChild,
	})
	queueTreeMutationRecord(n, added, removed, prev, refChild)
	return child, nil
}

// ensureReplaceValidity mirrors ensurePreInsertionValidity with the
// document multiplicity rules not counting the child being replaced.
func ensureReplaceValidity(node, parent, child *Node) error {
	switch parent.NodeType {
	case DocumentNode, DocumentFragmentNode, ElementNode:
	default:
		return hierarchyRequestError("parent kind %d cannot host children", parent.NodeType)
	}
	if node.isHostIncludingInclusiveAncestorOf(parent) {
		return hierarchyRequestError("node is an inclusive ancestor of parent")
	}
	if child.ParentNode != parent {
		return notFoundError("node to replace is not a child of parent")
	}
	switch node.NodeType {
	case DocumentFragmentNode, DocumentTypeNode, ElementNode,
		TextNode, CDATASectionNode, ProcessingInstructionNode, CommentNode:
	default:
		return hierarchyRequestError("node kind %d cannot be inserted", node.NodeType)
	}
	if node.NodeType == TextNode && parent.NodeType == DocumentNode {
		return hierarchyRequestError("cannot insert a text node directly under a document")
	}
	if node.NodeType == DocumentTypeNode && parent.NodeType != DocumentNode {
		return hierarchyRequestError("a doctype can only be inserted under a document")
	}
	if parent.NodeType != DocumentNode {
		return nil
	}

	switch node.NodeType {
	case DocumentFragmentNode:
		elementChildren := 0
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch c.NodeType {
			case ElementNode:
				elementChildren++
			case TextNode:
				return hierarchyRequestError("fragment with a text child cannot be inserted under a document")
			}
		}
		if elementChildren > 1 {
			return hierarchyRequestError("fragment with %d element children cannot be inserted under a document", elementChildren)
		}
		if elementChildren == 1 {
			if hasElementChildOtherThan(parent, child) {
				return hierarchyRequestError("document already has an element child")
			}
			if doctypeFollowing(child) {
				return hierarchyRequestError("element cannot be inserted before the doctype")
			}
		}
	case ElementNode:
		if hasElementChildOtherThan(parent, child) {
			return hierarchyRequestError("document already has an element child")
		}
		if doctypeFollowing(child) {
			return hierarchyRequestError("element cannot be inserted before the doctype")
		}
	case DocumentTypeNode:
		if hasDoctypeChildOtherThan(parent, child) {
			return hierarchyRequestError("document already has a doctype child")
		}
		if elementPreceding(child) {
			return hierarchyRequestError("doctype cannot follow the document element")
		}
	}
	return nil
}

// ReplaceAll is https://dom.spec.whatwg.org/#concept-node-replace-all, the
// whole-child-list swap behind textContent assignment and replaceChildren.
// node may be nil, meaning remove everything. No validation by design; the
// callers guarantee hierarchy validity.
func (n *Node) ReplaceAll(node *Node) {
	defer logMutation(n, "ReplaceAll")()
	doc := n.nodeDocument()
	if doc != nil && doc.Document != nil {
		doc.Document.incrementBlocker()
		defer doc.Document.decrementBlocker()
	}

	if node != nil && doc != nil {
		adopt(node, doc)
	}

	var removed NodeList
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		removed = append(removed, c)
	}
	var added NodeList
	if node != nil {
		if node.NodeType == DocumentFragmentNode {
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				added = append(added, c)
			}
		} else {
			added = NodeList{node}
		}
	}

	for _, c := range removed {
		removeNode(c, true)
	}
	if node != nil {
		insertNode(node, n, nil, true)
	}

	if len(added) > 0 || len(removed) > 0 {
		n.childrenChanged(&ChildrenChange{Added: added, Removed: removed})
		queueTreeMutationRecord(n, added, removed, nil, nil)
	}
}

// Normalize is https://dom.spec.whatwg.org/#dom-node-normalize: merge
// adjacent exclusive (non-CDATA) text descendants into the first of each
// run, re-pointing live ranges into the survivor; empty text nodes are
// removed outright.
func (n *Node) Normalize() {
	defer logMutation(n, "Normalize")()
	var texts []*Node
	it := NewTreeIterator(n)
	for it.Next() {
		if d := it.Node(); d.NodeType == TextNode {
			texts = append(texts, d)
		}
	}

	for _, node := range texts {
		if node.ParentNode == nil {
			continue // absorbed by an earlier merge
		}
		length := node.Text.Length
		if length == 0 {
			removeNode(node, false)
			continue
		}

		var data webidl.DOMString
		for s := node.NextSibling; s != nil && s.NodeType == TextNode; s = s.NextSibling {
			data += s.Text.Data
		}
		if len(data) == 0 {
			continue
		}
		_ = node.ReplaceData(length, 0, data)

		doc := node.nodeDocument()
		current := node.NextSibling
		offset := length
		for current != nil && current.NodeType == TextNode {
			index := current.index()
			if doc != nil && doc.Document != nil {
				for _, r := range doc.Document.ranges {
					r.textMerged(current, node, offset, index)
				}
			}
			offset += current.Text.Length
			current = current.NextSibling
		}

		for node.NextSibling != nil && node.NextSibling.NodeType == TextNode {
			removeNode(node.NextSibling, false)
		}
	}
}

// spliceBefore links n into parent's child chain immediately before child
// (nil means append). All four link fields of n and the two neighbor links
// update before control leaves this function; no reader can observe a
// half-spliced chain.
func spliceBefore(parent, n, child *Node) {
	n.ParentNode = parent
	if child == nil {
		n.PreviousSibling = parent.LastChild
		n.NextSibling = nil
		if parent.LastChild != nil {
			parent.LastChild.NextSibling = n
		} else {
			parent.FirstChild = n
		}
		parent.LastChild = n
	} else {
		prev := child.PreviousSibling
		n.PreviousSibling = prev
		n.NextSibling = child
		child.PreviousSibling = n
		if prev != nil {
			prev.NextSibling = n
		} else {
			parent.FirstChild = n
		}
	}
	parent.childrenCount++
}

// detachFromParent unlinks n, fully severing parent and sibling references
// so an orphaned subtree holds no stale back-references.
func detachFromParent(n *Node) {
	parent := n.ParentNode
	if n.PreviousSibling != nil {
		n.PreviousSibling.NextSibling = n.NextSibling
	} else {
		parent.FirstChild = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PreviousSibling = n.PreviousSibling
	} else {
		parent.LastChild = n.PreviousSibling
	}
	n.ParentNode = nil
	n.PreviousSibling = nil
	n.NextSibling = nil
	parent.childrenCount--
}

func containingShadowRootFor(parent *Node) *Node {
	if parent.isShadowRoot() {
		return parent
	}
	return parent.ContainingShadowRoot()
}

// bindNodeToTree propagates connectedness, document-tree, shadow-tree, and
// UA-widget state over the inserted subtree, descending into hosted shadow
// trees, firing the bind hook and queueing connected reactions as it goes.
func bindNodeToTree(n *Node, connected, inDocTree, inShadow, uaWidget bool, shadowRoot *Node, ctx *BindContext) {
	wasConnected := n.IsConnected()
	setFlagTo(n, FlagIsConnected, connected)
	setFlagTo(n, FlagIsInDocumentTree, inDocTree && !inShadow)
	setFlagTo(n, FlagIsInShadowTree, inShadow)
	if uaWidget {
		n.setFlag(FlagInUAWidget)
	}
	if shadowRoot != nil {
		n.ensureRareData().containingShadowRoot = shadowRoot
	} else if n.rare != nil {
		n.rare.containingShadowRoot = nil
	}

	n.bindToTree(ctx)
	if n.NodeType == ElementNode && connected && !wasConnected {
		enqueueConnectedReaction(n)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		bindNodeToTree(c, connected, inDocTree, inShadow, uaWidget || n.HasFlag(FlagInUAWidget), shadowRoot, ctx)
	}
	if n.NodeType == ElementNode && n.Element.IsShadowHost() {
		sr := n.Element.shadowRoot
		bindNodeToTree(sr, connected, false, true, uaWidget, sr, ctx)
	}
}

// unbindNodeFromTree clears the flags a removal invalidates. Shadow trees
// hosted inside the removed subtree keep their shadow membership while
// losing document connectedness.
func unbindNodeFromTree(n *Node, insideHostedShadow bool, ctx *BindContext) {
	wasConnected := n.IsConnected()
	n.clearFlag(disconnectClearMask)
	if !insideHostedShadow {
		n.clearFlag(FlagIsInShadowTree | FlagInUAWidget)
		if n.rare != nil {
			n.rare.containingShadowRoot = nil
		}
	}

	n.unbindFromTree(ctx)
	if n.NodeType == ElementNode && wasConnected {
		enqueueDisconnectedReaction(n)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		unbindNodeFromTree(c, insideHostedShadow, ctx)
	}
	if n.NodeType == ElementNode && n.Element.IsShadowHost() {
		unbindNodeFromTree(n.Element.shadowRoot, true, ctx)
	}
}

func setFlagTo(n *Node, f NodeFlags, on bool) {
	if on {
		n.setFlag(f)
	} else {
		n.clearFlag(f)
	}
}

func hasSlotDescendant(n *Node) bool {
	it := NewTreeIterator(n)
	for it.Next() {
		if it.Node().isSlotElement() {
			return true
		}
	}
	return false
}

// adopt is https://dom.spec.whatwg.org/#concept-node-adopt: detach from the
// old tree, then rewrite the owner document across the shadow-including
// subtree, including every element's attributes, queueing adoptedCallback
// reactions and running per-kind adopting steps in shadow-including tree
// order.
func adopt(node *Node, document *Node) {
	oldDocument := node.nodeDocument()
	if node.ParentNode != nil {
		removeNode(node, false)
	}
	if document == oldDocument {
		return
	}

	it := NewShadowIncludingTreeIterator(node)
	for it.Next() {
		d := it.Node()
		d.OwnerDocument = document
		if d.NodeType == ElementNode {
			for _, a := range d.Element.Attributes.Attrs {
				a.OwnerDocument = document
			}
			enqueueAdoptedReaction(d, oldDocument, document)
		}
		d.adoptingSteps(oldDocument)
	}
}
