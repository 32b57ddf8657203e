package dom

import (
	"github.com/heathj/domcore/webidl"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

type DocumentPosition uint16

const (
	Disconnected           DocumentPosition = 0x01
	Preceding              DocumentPosition = 0x02
	Following              DocumentPosition = 0x04
	Contain                DocumentPosition = 0x08
	ContainedBy            DocumentPosition = 0x10
	ImplementationSpecific DocumentPosition = 0x20
)

// NodeFlags is the per-node flag bitset. Flag maintenance is owned by the
// mutation algorithms: connecting a subtree sets the connectedness flags on
// every descendant, removal clears them, so a flag can never disagree with
// the node's structural position.
type NodeFlags uint32

const (
	FlagIsConnected NodeFlags = 1 << iota
	FlagIsInDocumentTree
	FlagIsInShadowTree
	FlagHasDirtyDescendants
	FlagClickInProgress
	FlagSequentiallyFocusable
	FlagHasSnapshot
	FlagHandledSnapshot
	FlagWeirdParserInsertionMode
	FlagInUAWidget
	FlagParserAssociatedFormOwner
)

// flags cleared when a node leaves a document tree
const disconnectClearMask = FlagIsConnected | FlagIsInDocumentTree |
	FlagHasDirtyDescendants | FlagHasSnapshot | FlagHandledSnapshot

// https://dom.spec.whatwg.org/#node
//
// The child list is a first-class doubly-linked chain: FirstChild/LastChild
// on the parent, PreviousSibling/NextSibling on each child. The link fields
// are exported for read access in the manner of the rest of the tree record;
// writing them outside the mutation algorithms breaks the invariants they
// maintain, so all edits go through PreInsert/RemoveChild and friends.
type Node struct {
	NodeType        NodeType
	NodeName        webidl.DOMString
	BaseURI         webidl.USVString
	OwnerDocument   *Node
	ParentNode      *Node
	FirstChild      *Node
	LastChild       *Node
	PreviousSibling *Node
	NextSibling     *Node
	Flags           NodeFlags

	childrenCount int
	// inclusive-descendants version, bumped on any structural or character
	// data change beneath this node; propagates to the root. Cache
	// invalidation only, never ordering.
	version uint64
	rare    *RareData

	// Node types
	*Element
	*Attr
	*Text
	*CDATASection
	*ProcessingInstruction
	*Comment
	*Document
	*DocumentType
	*DocumentFragment
}

// NewDocumentNode returns a detached document of the given type ("html" or
// "xml"). A document is its own owner.
func NewDocumentNode(docType string) *Node {
	n := &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Flags:    FlagIsConnected | FlagIsInDocumentTree,
		Document: &Document{Type: docType, ContentType: "text/html", CompatMode: "CSS1Compat"},
	}
	n.OwnerDocument = n
	return n
}

// NewDOMElement returns a detached element owned by od. The optional
// trailing argument is the namespace prefix.
func NewDOMElement(od *Node, name webidl.DOMString, namespace Namespace, optionals ...webidl.DOMString) *Node {
	var prefix webidl.DOMString
	if len(optionals) >= 1 {
		prefix = optionals[0]
	}
	n := &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			NamespaceURI: namespace,
			Prefix:       prefix,
			LocalName:    name,
			Attributes:   NewNamedNodeMap(map[string]*Attr{}, nil),
		},
	}
	n.Attributes.AssociatedElement = n
	return n
}

// NewTextNode returns a detached text node with its data section filled.
func NewTextNode(od *Node, text webidl.DOMString) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		OwnerDocument: od,
		Text: &Text{
			CharacterData: &CharacterData{
				Data:   text,
				Length: len(text),
			},
		},
	}
}

// NewCDATASectionNode returns a detached CDATA section node.
func NewCDATASectionNode(od *Node, data webidl.DOMString) *Node {
	return &Node{
		NodeType:      CDATASectionNode,
		NodeName:      "#cdata-section",
		OwnerDocument: od,
		CDATASection: &CDATASection{
			CharacterData: &CharacterData{
				Data:   data,
				Length: len(data),
			},
		},
	}
}

// NewComment returns a detached comment node with its data section filled.
func NewComment(data webidl.DOMString, od *Node) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		OwnerDocument: od,
		Comment: &Comment{
			CharacterData: &CharacterData{
				Data:   data,
				Length: len(data),
			},
		},
	}
}

// NewProcessingInstructionNode returns a detached processing instruction.
func NewProcessingInstructionNode(od *Node, target, data webidl.DOMString) *Node {
	return &Node{
		NodeType:      ProcessingInstructionNode,
		NodeName:      target,
		OwnerDocument: od,
		ProcessingInstruction: &ProcessingInstruction{
			Target: target,
			CharacterData: &CharacterData{
				Data:   data,
				Length: len(data),
			},
		},
	}
}

// NewDocTypeNode returns a detached doctype node.
func NewDocTypeNode(name, pub, sys webidl.DOMString) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

// NewDocumentFragmentNode returns a detached, empty plain fragment.
func NewDocumentFragmentNode(od *Node) *Node {
	return &Node{
		NodeType:         DocumentFragmentNode,
		NodeName:         "#document-fragment",
		OwnerDocument:    od,
		DocumentFragment: &DocumentFragment{},
	}
}

// NewAttrNode returns a detached attribute node.
func NewAttrNode(od *Node, a *Attr) *Node {
	return &Node{
		NodeType:      AttrNode,
		NodeName:      a.Name,
		OwnerDocument: od,
		Attr:          a,
	}
}

func (n *Node) HasFlag(f NodeFlags) bool { return n.Flags&f != 0 }
func (n *Node) setFlag(f NodeFlags)      { n.Flags |= f }
func (n *Node) clearFlag(f NodeFlags)    { n.Flags &^= f }

// IsConnected is https://dom.spec.whatwg.org/#connected: the node's
// shadow-including root is a document.
func (n *Node) IsConnected() bool { return n.HasFlag(FlagIsConnected) }

// IsInDocumentTree reports whether the node's plain (non-shadow) root is a
// document.
func (n *Node) IsInDocumentTree() bool { return n.HasFlag(FlagIsInDocumentTree) }

// IsInShadowTree reports whether the node's root is a shadow root.
func (n *Node) IsInShadowTree() bool { return n.HasFlag(FlagIsInShadowTree) }

func (n *Node) HasChildNodes() bool { return n.FirstChild != nil }

// ChildrenCount is the live count of children; always equal to the length
// of the first-child/next-sibling walk.
func (n *Node) ChildrenCount() int { return n.childrenCount }

// Version returns the node's inclusive-descendants version counter.
func (n *Node) Version() uint64 { return n.version }

// bumpVersion invalidates cached queries on n and on every ancestor up to
// and including the root.
func (n *Node) bumpVersion() {
	for a := n; a != nil; a = a.ParentNode {
		a.version++
	}
}

// nodeDocument is https://dom.spec.whatwg.org/#concept-node-document. A
// document is its own node document.
func (n *Node) nodeDocument() *Node {
	if n.NodeType == DocumentNode {
		return n
	}
	return n.OwnerDocument
}

// getRoot walks the plain parent chain.
func (n *Node) getRoot() *Node {
	root := n
	for root.ParentNode != nil {
		root = root.ParentNode
	}
	return root
}

// shadowIncludingRoot hops from a shadow root to its host.
func (n *Node) shadowIncludingRoot() *Node {
	root := n.getRoot()
	for root.isShadowRoot() {
		root = root.DocumentFragment.Host.shadowIncludingRoot()
	}
	return root
}

type GetRootNodeOptions struct {
	Composed bool
}

// GetRootNode is https://dom.spec.whatwg.org/#dom-node-getrootnode.
func (n *Node) GetRootNode(o GetRootNodeOptions) *Node {
	if o.Composed {
		return n.shadowIncludingRoot()
	}
	return n.getRoot()
}

func (n *Node) isShadowRoot() bool {
	return n.NodeType == DocumentFragmentNode && n.DocumentFragment.Host != nil
}

// index is the zero-based position of n among its parent's children, -1 if
// detached.
func (n *Node) index() int {
	if n.ParentNode == nil {
		return -1
	}
	i := 0
	for sib := n.ParentNode.FirstChild; sib != nil; sib = sib.NextSibling {
		if sib == n {
			return i
		}
		i++
	}
	return -1
}

// childAt returns the i-th child or nil.
func (n *Node) childAt(i int) *Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; c = c.NextSibling {
		i--
	}
	return c
}

// isInclusiveAncestorOf is the plain-tree ancestor relation, inclusive.
func (n *Node) isInclusiveAncestorOf(other *Node) bool {
	for a := other; a != nil; a = a.ParentNode {
		if a == n {
			return true
		}
	}
	return false
}

// isHostIncludingInclusiveAncestorOf is
// https://dom.spec.whatwg.org/#concept-tree-host-including-inclusive-ancestor,
// the relation the cycle check in pre-insertion validation uses so that a
// fragment cannot be inserted inside its own host's shadow tree.
func (n *Node) isHostIncludingInclusiveAncestorOf(other *Node) bool {
	if n.isInclusiveAncestorOf(other) {
		return true
	}
	root := other.getRoot()
	if root.NodeType == DocumentFragmentNode && root.DocumentFragment.Host != nil {
		return n.isHostIncludingInclusiveAncestorOf(root.DocumentFragment.Host)
	}
	return false
}

// isShadowIncludingInclusiveAncestorOf crosses shadow boundaries downward.
func (n *Node) isShadowIncludingInclusiveAncestorOf(other *Node) bool {
	for a := other; a != nil; {
		if a == n {
			return true
		}
		if a.ParentNode != nil {
			a = a.ParentNode
		} else if a.isShadowRoot() {
			a = a.DocumentFragment.Host
		} else {
			a = nil
		}
	}
	return false
}

// Contains is https://dom.spec.whatwg.org/#dom-node-contains.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	return n.isInclusiveAncestorOf(other)
}

// IsSameNode is https://dom.spec.whatwg.org/#dom-node-issamenode.
func (n *Node) IsSameNode(other *Node) bool { return n == other }

// characterData returns the active character data payload for text-like
// kinds, nil otherwise.
func (n *Node) characterData() *CharacterData {
	switch n.NodeType {
	case TextNode:
		return n.Text.CharacterData
	case CDATASectionNode:
		return n.CDATASection.CharacterData
	case CommentNode:
		return n.Comment.CharacterData
	case ProcessingInstructionNode:
		return n.ProcessingInstruction.CharacterData
	}
	return nil
}

// length is https://dom.spec.whatwg.org/#concept-node-length.
func (n *Node) length() int {
	switch n.NodeType {
	case DocumentTypeNode, AttrNode:
		return 0
	case TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		return n.characterData().Length
	}
	return n.childrenCount
}
