package dom

// Custom-element reaction queueing. The core only decides when a reaction
// is due; running callbacks (and isolating their failures) belongs to the
// external upgrade subsystem, which drains Document.TakeReactions. A
// reaction callback that edits the tree re-enters the mutation algorithms
// like any other caller.

type ReactionKind uint

const (
	ReactionConnected ReactionKind = iota
	ReactionDisconnected
	ReactionAdopted
)

// Reaction is one queued custom-element reaction.
type Reaction struct {
	Kind ReactionKind
	Node *Node

	// Adopted only
	OldDocument *Node
	NewDocument *Node
}

func enqueueConnectedReaction(n *Node) {
	doc := n.nodeDocument()
	if doc == nil || doc.Document == nil {
		return
	}
	if n.Element.isCustom() {
		doc.Document.enqueueReaction(Reaction{Kind: ReactionConnected, Node: n})
		return
	}
	// not yet defined: give the upgrade subsystem a shot
	if n.Element.CustomState == CustomStateUndefined && doc.Document.upgradeCallback != nil {
		doc.Document.upgradeCallback(n)
	}
}

func enqueueDisconnectedReaction(n *Node) {
	doc := n.nodeDocument()
	if doc == nil || doc.Document == nil || !n.Element.isCustom() {
		return
	}
	doc.Document.enqueueReaction(Reaction{Kind: ReactionDisconnected, Node: n})
}

func enqueueAdoptedReaction(n, oldDoc, newDoc *Node) {
	if newDoc == nil || newDoc.Document == nil || !n.Element.isCustom() {
		return
	}
	newDoc.Document.enqueueReaction(Reaction{
		Kind:        ReactionAdopted,
		Node:        n,
		OldDocument: oldDoc,
		NewDocument: newDoc,
	})
}
