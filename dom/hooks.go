package dom

// Per-kind virtual hooks. Node kinds form a closed set, so dispatch is a
// function table keyed by NodeType rather than an open interface hierarchy;
// the host (style system, custom-element runtime, HTML layer) registers the
// overrides it cares about and everything else stays a no-op.

// BindContext carries the structural context of a (dis)connection.
type BindContext struct {
	// Root of the subtree being inserted or removed.
	SubtreeRoot *Node
	// Parent the subtree was attached to or detached from.
	Parent *Node
	// Whether the node is connected to a document after the edit.
	Connected bool
}

// ChildrenChange is the payload of the children-changed hook: one logical
// mutation, with enough context for incremental updates (selector
// invalidation, live list caches, slot re-signaling) without a rescan.
type ChildrenChange struct {
	Added           NodeList
	Removed         NodeList
	PreviousSibling *Node
	NextSibling     *Node
}

// Hooks is the per-kind hook table. Nil entries are no-ops.
type Hooks struct {
	BindToTree          func(n *Node, ctx *BindContext)
	UnbindFromTree      func(n *Node, ctx *BindContext)
	ChildrenChanged     func(n *Node, change *ChildrenChange)
	AdoptingSteps       func(n *Node, oldDocument *Node)
	CloningSteps        func(copy, source *Node, document *Node, deep bool)
	PostConnectionSteps func(n *Node)
}

var hookTable = map[NodeType]*Hooks{}

// RegisterHooks installs the hook table for a node kind, replacing any
// previous table. Pass nil to clear.
func RegisterHooks(t NodeType, h *Hooks) {
	if h == nil {
		delete(hookTable, t)
		return
	}
	hookTable[t] = h
}

func (n *Node) hooks() *Hooks { return hookTable[n.NodeType] }

func (n *Node) bindToTree(ctx *BindContext) {
	if h := n.hooks(); h != nil && h.BindToTree != nil {
		h.BindToTree(n, ctx)
	}
}

func (n *Node) unbindFromTree(ctx *BindContext) {
	if h := n.hooks(); h != nil && h.UnbindFromTree != nil {
		h.UnbindFromTree(n, ctx)
	}
}

// childrenChanged fires exactly once per logical mutation, even when the
// mutation is internally a remove plus an insert.
func (n *Node) childrenChanged(change *ChildrenChange) {
	if h := n.hooks(); h != nil && h.ChildrenChanged != nil {
		h.ChildrenChanged(n, change)
	}
}

func (n *Node) adoptingSteps(oldDocument *Node) {
	if h := n.hooks(); h != nil && h.AdoptingSteps != nil {
		h.AdoptingSteps(n, oldDocument)
	}
}

func (n *Node) cloningSteps(copy, document *Node, deep bool) {
	if h := n.hooks(); h != nil && h.CloningSteps != nil {
		h.CloningSteps(copy, n, document, deep)
	}
}

func (n *Node) postConnectionSteps() {
	if h := n.hooks(); h != nil && h.PostConnectionSteps != nil {
		h.PostConnectionSteps(n)
	}
}
