package dom

// Tree traversal. Every iterator here is live: it holds node handles, not a
// resolved snapshot, and re-derives the next node from the current links on
// each call. A callback that mutates the tree mid-iteration (a mutation
// observer, a custom-element reaction) therefore cannot leave an iterator
// pointing at stale structure; iteration simply continues from wherever the
// current node ended up. All iterators are restartable.

// following is https://dom.spec.whatwg.org/#concept-tree-following, bounded
// by root.
func following(n, root *Node) *Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for cur := n; cur != nil && cur != root; cur = cur.ParentNode {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}

// preceding is https://dom.spec.whatwg.org/#concept-tree-preceding, bounded
// by root.
func preceding(n, root *Node) *Node {
	if n == root {
		return nil
	}
	if n.PreviousSibling != nil {
		cur := n.PreviousSibling
		for cur.LastChild != nil {
			cur = cur.LastChild
		}
		return cur
	}
	return n.ParentNode
}

// shadowIncludingFollowing descends into an element's shadow tree before its
// light children, giving shadow-including tree order.
func shadowIncludingFollowing(n, root *Node) *Node {
	if n.NodeType == ElementNode && n.Element.IsShadowHost() {
		return n.Element.shadowRoot
	}
	if n.FirstChild != nil {
		return n.FirstChild
	}
	cur := n
	for cur != nil && cur != root {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
		p := cur.ParentNode
		if p == nil && cur.isShadowRoot() {
			host := cur.DocumentFragment.Host
			if host == root {
				return host.FirstChild
			}
			if host.FirstChild != nil {
				return host.FirstChild
			}
			p = host
		}
		cur = p
	}
	return nil
}

// TreeIterator walks root's inclusive descendants in preorder. With
// shadowInclusive set it crosses shadow boundaries in shadow-including tree
// order.
type TreeIterator struct {
	root, current   *Node
	started         bool
	shadowInclusive bool
}

func NewTreeIterator(root *Node) *TreeIterator {
	return &TreeIterator{root: root}
}

func NewShadowIncludingTreeIterator(root *Node) *TreeIterator {
	return &TreeIterator{root: root, shadowInclusive: true}
}

func (it *TreeIterator) peek() *Node {
	if !it.started {
		return it.root
	}
	if it.current == nil {
		return nil
	}
	if it.shadowInclusive {
		return shadowIncludingFollowing(it.current, it.root)
	}
	return following(it.current, it.root)
}

func (it *TreeIterator) Next() bool { return it.peek() != nil }

func (it *TreeIterator) Node() *Node {
	n := it.peek()
	if n != nil {
		it.started = true
		it.current = n
	}
	return n
}

func (it *TreeIterator) Restart() {
	it.started = false
	it.current = nil
}

// ReverseTreeIterator walks root's inclusive descendants in reverse
// preorder (last deepest descendant first, root last).
type ReverseTreeIterator struct {
	root, current *Node
	started       bool
}

func NewReverseTreeIterator(root *Node) *ReverseTreeIterator {
	return &ReverseTreeIterator{root: root}
}

func (it *ReverseTreeIterator) peek() *Node {
	if !it.started {
		cur := it.root
		for cur.LastChild != nil {
			cur = cur.LastChild
		}
		return cur
	}
	if it.current == nil {
		return nil
	}
	return preceding(it.current, it.root)
}

func (it *ReverseTreeIterator) Next() bool { return it.peek() != nil }

func (it *ReverseTreeIterator) Node() *Node {
	n := it.peek()
	if n != nil {
		it.started = true
		it.current = n
	}
	return n
}

func (it *ReverseTreeIterator) Restart() {
	it.started = false
	it.current = nil
}

// SiblingIterator walks the child chain of a parent, starting at a given
// child (inclusive).
type SiblingIterator struct {
	start, current *Node
	started        bool
}

func NewSiblingIterator(start *Node) *SiblingIterator {
	return &SiblingIterator{start: start}
}

func (it *SiblingIterator) peek() *Node {
	if !it.started {
		return it.start
	}
	if it.current == nil {
		return nil
	}
	return it.current.NextSibling
}

func (it *SiblingIterator) Next() bool { return it.peek() != nil }

func (it *SiblingIterator) Node() *Node {
	n := it.peek()
	if n != nil {
		it.started = true
		it.current = n
	}
	return n
}

func (it *SiblingIterator) Restart() {
	it.started = false
	it.current = nil
}

// AncestorIterator walks a node's inclusive ancestors toward the root.
type AncestorIterator struct {
	start, current *Node
	started        bool
}

func NewAncestorIterator(start *Node) *AncestorIterator {
	return &AncestorIterator{start: start}
}

func (it *AncestorIterator) peek() *Node {
	if !it.started {
		return it.start
	}
	if it.current == nil {
		return nil
	}
	return it.current.ParentNode
}

func (it *AncestorIterator) Next() bool { return it.peek() != nil }

func (it *AncestorIterator) Node() *Node {
	n := it.peek()
	if n != nil {
		it.started = true
		it.current = n
	}
	return n
}

func (it *AncestorIterator) Restart() {
	it.started = false
	it.current = nil
}

// FollowingIterator walks the nodes following start in tree order, start
// excluded, unbounded within start's tree.
type FollowingIterator struct {
	start, current *Node
	started        bool
}

func NewFollowingIterator(start *Node) *FollowingIterator {
	return &FollowingIterator{start: start}
}

func (it *FollowingIterator) peek() *Node {
	if !it.started {
		return following(it.start, nil)
	}
	if it.current == nil {
		return nil
	}
	return following(it.current, nil)
}

func (it *FollowingIterator) Next() bool { return it.peek() != nil }

func (it *FollowingIterator) Node() *Node {
	n := it.peek()
	if n != nil {
		it.started = true
		it.current = n
	}
	return n
}

func (it *FollowingIterator) Restart() {
	it.started = false
	it.current = nil
}

// PrecedingIterator walks the nodes preceding start in tree order, start
// excluded, stopping at the tree root.
type PrecedingIterator struct {
	start, current *Node
	started        bool
}

func NewPrecedingIterator(start *Node) *PrecedingIterator {
	return &PrecedingIterator{start: start}
}

func (it *PrecedingIterator) peek() *Node {
	if !it.started {
		return preceding(it.start, nil)
	}
	if it.current == nil {
		return nil
	}
	return preceding(it.current, nil)
}

func (it *PrecedingIterator) Next() bool { return it.peek() != nil }

func (it *PrecedingIterator) Node() *Node {
	n := it.peek()
	if n != nil {
		it.started = true
		it.current = n
	}
	return n
}

func (it *PrecedingIterator) Restart() {
	it.started = false
	it.current = nil
}
