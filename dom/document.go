package dom

import "github.com/heathj/domcore/webidl"

// DamageKind classifies what kind of recomputation a dirtied node needs. The
// core decides when to dirty; what the style/layout side does with it is its
// own business.
type DamageKind uint

const (
	DamageStyleAttribute DamageKind = iota
	DamageContentOrHeritage
	DamageOther
)

// Document is https://dom.spec.whatwg.org/#interface-document, plus the
// per-document mutation-core state: the script-and-layout blocker, the
// deferred post-connection queue, the observer and custom-element reaction
// queues, and the live-range list.
type Document struct {
	URL, DocumentURI                        string
	CompatMode, CharacterSet, InputEncoding string
	ContentType                             string
	Origin                                  string
	Mode                                    string
	Type                                    string

	// script-and-layout blocker: a nestable refcount held across batched
	// mutations. Deferred post-connection steps only run when it unwinds to
	// zero, so observers of a batch see one coherent picture.
	blockerCount   int
	postConnection []*Node

	// mutation observers that have at least one registration in this
	// document, in first-registration order; delivery order follows it
	observers []*MutationObserver

	// live ranges whose boundary points live in this document
	ranges []*Range

	// slots with a pending slotchange signal, drained at the microtask
	// checkpoint
	signalSlots []*Node

	// pending custom-element reactions for the host upgrade subsystem
	reactions []Reaction

	dirtyCallback      func(*Node, DamageKind)
	slotChangeCallback func(*Node)
	upgradeCallback    func(*Node)
}

// SetDirtyCallback registers the style/layout side's "mark this node's
// rendering stale" hook.
func (d *Document) SetDirtyCallback(cb func(*Node, DamageKind)) { d.dirtyCallback = cb }

// SetSlotChangeCallback registers the consumer of slotchange signals.
func (d *Document) SetSlotChangeCallback(cb func(*Node)) { d.slotChangeCallback = cb }

// SetUpgradeCallback registers the custom-element subsystem's upgrade
// attempt hook, invoked for not-yet-defined elements on connection.
func (d *Document) SetUpgradeCallback(cb func(*Node)) { d.upgradeCallback = cb }

// MarkNodeDirty notifies the external style/layout subsystem. Safe to call
// on detached nodes and documents without a callback.
func MarkNodeDirty(n *Node, damage DamageKind) {
	doc := n.nodeDocument()
	if doc == nil || doc.Document == nil {
		return
	}
	if cb := doc.Document.dirtyCallback; cb != nil {
		cb(n, damage)
	}
}

// incrementBlocker/decrementBlocker bracket every mutation algorithm. When
// the outermost scope unwinds, deferred post-connection steps run in
// insertion order. A post-connection step may mutate the tree again, which
// re-enters the blocker; anything it defers runs in the same drain.
func (d *Document) incrementBlocker() { d.blockerCount++ }

func (d *Document) decrementBlocker() {
	d.blockerCount--
	if d.blockerCount > 0 {
		return
	}
	for len(d.postConnection) > 0 {
		pending := d.postConnection
		d.postConnection = nil
		for _, n := range pending {
			n.postConnectionSteps()
		}
	}
}

func (d *Document) deferPostConnection(n *Node) {
	d.postConnection = append(d.postConnection, n)
}

// PerformMicrotaskCheckpoint delivers pending slotchange signals and queued
// mutation records. Call it from the event loop after the outermost script
// invocation returns; delivery never runs concurrently with the mutation
// that queued the work. Observer callbacks may mutate the tree, and records
// those mutations queue are picked up by the next checkpoint.
func (d *Document) PerformMicrotaskCheckpoint() {
	if len(d.signalSlots) > 0 {
		slots := d.signalSlots
		d.signalSlots = nil
		if d.slotChangeCallback != nil {
			for _, slot := range slots {
				d.slotChangeCallback(slot)
			}
		}
	}

	observers := make([]*MutationObserver, len(d.observers))
	copy(observers, d.observers)
	for _, mo := range observers {
		records := mo.TakeRecords()
		if len(records) > 0 {
			mo.callback(records, mo)
		}
	}
}

// TakeReactions drains the pending custom-element reaction queue in enqueue
// order.
func (d *Document) TakeReactions() []Reaction {
	r := d.reactions
	d.reactions = nil
	return r
}

func (d *Document) enqueueReaction(r Reaction) {
	d.reactions = append(d.reactions, r)
}

// CreateElement is https://dom.spec.whatwg.org/#dom-document-createelement,
// without the name validation the parser already performs.
func (n *Node) CreateElement(localName webidl.DOMString) *Node {
	return NewDOMElement(n, localName, Htmlns)
}

// CreateTextNode is https://dom.spec.whatwg.org/#dom-document-createtextnode.
func (n *Node) CreateTextNode(data webidl.DOMString) *Node {
	return NewTextNode(n, data)
}

// CreateComment is https://dom.spec.whatwg.org/#dom-document-createcomment.
func (n *Node) CreateComment(data webidl.DOMString) *Node {
	return NewComment(data, n)
}

// CreateCDATASection is https://dom.spec.whatwg.org/#dom-document-createcdatasection.
func (n *Node) CreateCDATASection(data webidl.DOMString) (*Node, error) {
	if n.Document.Type == "html" {
		return nil, notSupportedError("CDATA sections are not supported in HTML documents")
	}
	return NewCDATASectionNode(n, data), nil
}

// CreateDocumentFragment is https://dom.spec.whatwg.org/#dom-document-createdocumentfragment.
func (n *Node) CreateDocumentFragment() *Node {
	return NewDocumentFragmentNode(n)
}

// CreateProcessingInstruction is
// https://dom.spec.whatwg.org/#dom-document-createprocessinginstruction.
func (n *Node) CreateProcessingInstruction(target, data webidl.DOMString) *Node {
	return NewProcessingInstructionNode(n, target, data)
}

// CreateRange returns a live range collapsed at (document, 0), registered
// for boundary adjustment.
func (n *Node) CreateRange() *Range {
	r := &Range{}
	r.setStartBoundary(n, 0)
	r.setEndBoundary(n, 0)
	return r
}

// AdoptNode is https://dom.spec.whatwg.org/#dom-document-adoptnode, with n
// as the adopting document.
func (n *Node) AdoptNode(node *Node) (*Node, error) {
	if node.NodeType == DocumentNode {
		return nil, notSupportedError("cannot adopt a document node")
	}
	if node.isShadowRoot() {
		return nil, hierarchyRequestError("cannot adopt a shadow root")
	}
	adopt(node, n)
	return node, nil
}

// Doctype returns the document's doctype child, or nil.
func (n *Node) Doctype() *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == DocumentTypeNode {
			return c
		}
	}
	return nil
}

// DocumentElement returns the document's element child, or nil.
func (n *Node) DocumentElement() *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.NodeType == ElementNode {
			return c
		}
	}
	return nil
}
