package dom

// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

func (h *NodeList) Contains(n *Node) int {
	for i := range *h {
		if n == (*h)[i] {
			return i
		}
	}
	return -1
}

func (h *NodeList) Remove(i int) *Node {
	if i < 0 || i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

func (h *NodeList) WedgeIn(i int, n *Node) {
	if i < 0 {
		return
	}
	if i >= len(*h) {
		*h = append(*h, n)
		return
	}
	*h = append((*h)[:i+1], (*h)[i:]...)
	(*h)[i] = n
}

// equal compares by identity, element-wise.
func (h NodeList) equal(o NodeList) bool {
	if len(h) != len(o) {
		return false
	}
	for i := range h {
		if h[i] != o[i] {
			return false
		}
	}
	return true
}

// NodeIterator walks a NodeList snapshot front to back.
type NodeIterator struct {
	nodeList NodeList
	i        int
}

func NewNodeIterator(nl NodeList) *NodeIterator {
	return &NodeIterator{nodeList: nl}
}

func (n *NodeIterator) Next() bool {
	return n.i < len(n.nodeList)
}

func (n *NodeIterator) Node() *Node {
	if n.i >= 0 && n.i < len(n.nodeList) {
		node := n.nodeList[n.i]
		n.i++
		return node
	}
	return nil
}

// NodeRewinder walks a NodeList snapshot back to front.
type NodeRewinder struct {
	nodeList NodeList
	i        int
}

func NewNodeRewinder(nl NodeList) *NodeRewinder {
	return &NodeRewinder{
		nodeList: nl,
		i:        len(nl) - 1,
	}
}

func (n *NodeRewinder) Prev() bool {
	return n.i >= 0
}

func (n *NodeRewinder) Node() *Node {
	if n.i >= 0 && n.i < len(n.nodeList) {
		node := n.nodeList[n.i]
		n.i--
		return node
	}
	return nil
}
