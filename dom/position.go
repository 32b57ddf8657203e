package dom

import (
	"bytes"

	"github.com/heathj/domcore/webidl"
)

// CompareDocumentPosition is
// https://dom.spec.whatwg.org/#dom-node-comparedocumentposition. For nodes
// sharing a root, the result is the total preorder/containment order. For
// disconnected nodes the tie-break is a byte-wise comparison of the two
// nodes' lazily assigned debug ids: stable because the ids are stored, and
// antisymmetric because they are unique and totally ordered.
func (n *Node) CompareDocumentPosition(other *Node) DocumentPosition {
	if n == other {
		return 0
	}

	node1, node2 := other, n
	var attr1, attr2 *Node
	if node1 != nil && node1.NodeType == AttrNode {
		attr1 = node1
		node1 = attr1.Attr.OwnerElement
	}
	if node2.NodeType == AttrNode {
		attr2 = node2
		node2 = attr2.Attr.OwnerElement
		if attr1 != nil && node1 != nil && node2 == node1 {
			// both are attributes of the same element; attribute order is
			// implementation-defined but must be deterministic
			for _, name := range node2.Element.Attributes.sortedNames() {
				a := node2.Element.Attributes.Attrs[webidl.DOMString(name)]
				if a == attr1.Attr {
					return ImplementationSpecific | Preceding
				}
				if a == attr2.Attr {
					return ImplementationSpecific | Following
				}
			}
		}
	}

	if node1 == nil || node2 == nil || node1.getRoot() != node2.getRoot() {
		result := Disconnected | ImplementationSpecific
		id1, id2 := disconnectedOrderID(node1, attr1, other), disconnectedOrderID(node2, attr2, n)
		if bytes.Compare(id1, id2) < 0 {
			return result | Preceding
		}
		return result | Following
	}

	if (node1 != node2 && node1.isInclusiveAncestorOf(node2) && attr1 == nil) ||
		(node1 == node2 && attr2 != nil) {
		return Contain | Preceding
	}
	if (node1 != node2 && node2.isInclusiveAncestorOf(node1) && attr2 == nil) ||
		(node1 == node2 && attr1 != nil) {
		return ContainedBy | Following
	}

	if precedesInTreeOrder(node1, node2) {
		return Preceding
	}
	return Following
}

// disconnectedOrderID picks the identity used for the disconnected
// tie-break: the original node's debug id (the attr node itself when the
// owner element is gone).
func disconnectedOrderID(node, attr, original *Node) []byte {
	target := node
	if target == nil {
		if attr != nil {
			target = attr
		} else {
			target = original
		}
	}
	id := target.DebugID()
	return id[:]
}

// precedesInTreeOrder reports whether a comes before b in preorder. Both
// share a root and neither contains the other: the order is decided by the
// sibling indices at the point their ancestor chains diverge.
func precedesInTreeOrder(a, b *Node) bool {
	chainA := inclusiveAncestorChain(a)
	chainB := inclusiveAncestorChain(b)
	i := 0
	for i < len(chainA) && i < len(chainB) && chainA[i] == chainB[i] {
		i++
	}
	// i > 0 since the roots match, and both chains have an entry at i since
	// neither node contains the other
	return chainA[i].index() < chainB[i].index()
}

// inclusiveAncestorChain is root-first.
func inclusiveAncestorChain(n *Node) []*Node {
	var chain []*Node
	for a := n; a != nil; a = a.ParentNode {
		chain = append(chain, a)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
