package dom

// Live ranges. A range's boundary points track structural edits: the
// mutation algorithms call the adjustment methods at the points prescribed
// in the insert/remove/normalize/character-data contracts, and nothing else
// may rewrite a boundary directly.

// BoundaryPoint is https://dom.spec.whatwg.org/#concept-range-bp.
type BoundaryPoint struct {
	Node   *Node
	Offset int
}

// Range is https://dom.spec.whatwg.org/#range, reduced to the live
// boundary-point bookkeeping the tree core owns. Selection/extraction
// belong to the script layer.
type Range struct {
	start, end BoundaryPoint
}

// NewRange returns a live range collapsed at (node, offset).
func NewRange(node *Node, offset int) (*Range, error) {
	r := &Range{}
	if err := r.SetStart(node, offset); err != nil {
		return nil, err
	}
	if err := r.SetEnd(node, offset); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Range) Start() BoundaryPoint { return r.start }
func (r *Range) End() BoundaryPoint   { return r.end }

func (r *Range) IsCollapsed() bool {
	return r.start.Node == r.end.Node && r.start.Offset == r.end.Offset
}

func validateBoundary(node *Node, offset int) error {
	if node.NodeType == DocumentTypeNode {
		return hierarchyRequestError("a doctype cannot be a range boundary")
	}
	if offset < 0 || offset > node.length() {
		return indexSizeError("offset %d out of range [0,%d]", offset, node.length())
	}
	return nil
}

// SetStart is https://dom.spec.whatwg.org/#dom-range-setstart, without the
// start-after-end collapse (callers of the core keep boundaries ordered).
func (r *Range) SetStart(node *Node, offset int) error {
	if err := validateBoundary(node, offset); err != nil {
		return err
	}
	r.setStartBoundary(node, offset)
	return nil
}

// SetEnd is https://dom.spec.whatwg.org/#dom-range-setend.
func (r *Range) SetEnd(node *Node, offset int) error {
	if err := validateBoundary(node, offset); err != nil {
		return err
	}
	r.setEndBoundary(node, offset)
	return nil
}

// Collapse is https://dom.spec.whatwg.org/#dom-range-collapse.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.setEndBoundary(r.start.Node, r.start.Offset)
	} else {
		r.setStartBoundary(r.end.Node, r.end.Offset)
	}
}

// SelectNodeContents is https://dom.spec.whatwg.org/#dom-range-selectnodecontents.
func (r *Range) SelectNodeContents(node *Node) error {
	if node.NodeType == DocumentTypeNode {
		return hierarchyRequestError("a doctype cannot be a range boundary")
	}
	r.setStartBoundary(node, 0)
	r.setEndBoundary(node, node.length())
	return nil
}

// SelectNode is https://dom.spec.whatwg.org/#dom-range-selectnode.
func (r *Range) SelectNode(node *Node) error {
	parent := node.ParentNode
	if parent == nil {
		return domError(InvalidStateError, "cannot select a node without a parent")
	}
	index := node.index()
	r.setStartBoundary(parent, index)
	r.setEndBoundary(parent, index+1)
	return nil
}

// Detach unregisters the range from its boundary nodes and document; the
// range stops tracking mutations.
func (r *Range) Detach() {
	start, end := r.start.Node, r.end.Node
	r.start, r.end = BoundaryPoint{}, BoundaryPoint{}
	if start != nil {
		start.unregisterRange(r)
		r.unregisterFromDocument(start)
	}
	if end != nil {
		end.unregisterRange(r)
		r.unregisterFromDocument(end)
	}
}

func (r *Range) setStartBoundary(node *Node, offset int) {
	old := r.start.Node
	r.start = BoundaryPoint{Node: node, Offset: offset}
	r.rehome(old, node)
}

func (r *Range) setEndBoundary(node *Node, offset int) {
	old := r.end.Node
	r.end = BoundaryPoint{Node: node, Offset: offset}
	r.rehome(old, node)
}

func (r *Range) rehome(old, next *Node) {
	if next != nil {
		next.registerRange(r)
		doc := next.nodeDocument()
		if doc != nil && doc.Document != nil {
			found := false
			for _, have := range doc.Document.ranges {
				if have == r {
					found = true
					break
				}
			}
			if !found {
				doc.Document.ranges = append(doc.Document.ranges, r)
			}
		}
	}
	if old != nil && old != next {
		old.unregisterRange(r)
		if r.start.Node == nil || old.nodeDocument() != r.start.Node.nodeDocument() {
			r.unregisterFromDocument(old)
		}
	}
}

func (r *Range) unregisterFromDocument(node *Node) {
	doc := node.nodeDocument()
	if doc == nil || doc.Document == nil {
		return
	}
	// keep the registration while any boundary is still in this document
	for _, b := range []*Node{r.start.Node, r.end.Node} {
		if b != nil && b.nodeDocument() == doc {
			return
		}
	}
	for i, have := range doc.Document.ranges {
		if have == r {
			doc.Document.ranges = append(doc.Document.ranges[:i], doc.Document.ranges[i+1:]...)
			return
		}
	}
}

// nodesInserted is insert's live-range adjustment: count nodes spliced in
// before index childIndex of parent.
func (r *Range) nodesInserted(parent *Node, childIndex, count int) {
	if r.start.Node == parent && r.start.Offset > childIndex {
		r.start.Offset += count
	}
	if r.end.Node == parent && r.end.Offset > childIndex {
		r.end.Offset += count
	}
}

// nodeAboutToBeRemoved is https://dom.spec.whatwg.org/#concept-node-remove
// steps 2-5: boundaries inside the removed subtree move to the removal
// point, boundaries past it shift left by one.
func (r *Range) nodeAboutToBeRemoved(node, parent *Node, index int) {
	if node.isInclusiveAncestorOf(r.start.Node) {
		r.setStartBoundary(parent, index)
	}
	if node.isInclusiveAncestorOf(r.end.Node) {
		r.setEndBoundary(parent, index)
	}
	if r.start.Node == parent && r.start.Offset > index {
		r.start.Offset--
	}
	if r.end.Node == parent && r.end.Offset > index {
		r.end.Offset--
	}
}

// characterDataReplaced is the boundary adjustment of
// https://dom.spec.whatwg.org/#concept-cd-replace: boundaries inside the
// replaced span snap to its start, boundaries past it shift by the length
// delta.
func (r *Range) characterDataReplaced(node *Node, offset, count, dataLen int) {
	adjust := func(b *BoundaryPoint) {
		if b.Node != node {
			return
		}
		switch {
		case b.Offset > offset && b.Offset <= offset+count:
			b.Offset = offset
		case b.Offset > offset+count:
			b.Offset += dataLen - count
		}
	}
	adjust(&r.start)
	adjust(&r.end)
}

// textMerged is normalize's boundary re-pointing: currentNode's data was
// appended to the surviving node at byte offset mergedAt.
func (r *Range) textMerged(currentNode, survivor *Node, mergedAt, index int) {
	if r.start.Node == currentNode {
		r.setStartBoundary(survivor, r.start.Offset+mergedAt)
	}
	if r.end.Node == currentNode {
		r.setEndBoundary(survivor, r.end.Offset+mergedAt)
	}
	parent := currentNode.ParentNode
	if r.start.Node == parent && r.start.Offset == index {
		r.setStartBoundary(survivor, mergedAt)
	}
	if r.end.Node == parent && r.end.Offset == index {
		r.setEndBoundary(survivor, mergedAt)
	}
}
