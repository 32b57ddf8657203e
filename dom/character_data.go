package dom

import "github.com/heathj/domcore/webidl"

// CharacterData is https://dom.spec.whatwg.org/#characterdata. Length is in
// bytes, matching the offsets the rest of the core uses.
type CharacterData struct {
	Data   webidl.DOMString
	Length int
}

// Text is https://dom.spec.whatwg.org/#text
type Text struct {
	*CharacterData
}

// CDATASection is https://dom.spec.whatwg.org/#cdatasection
type CDATASection struct {
	*CharacterData
}

// Comment is https://dom.spec.whatwg.org/#interface-comment
type Comment struct {
	*CharacterData
}

// ProcessingInstruction is https://dom.spec.whatwg.org/#processinginstruction
type ProcessingInstruction struct {
	Target webidl.DOMString
	*CharacterData
}

// DocumentType is https://dom.spec.whatwg.org/#documenttype
type DocumentType struct {
	Name     webidl.DOMString
	PublicID webidl.DOMString
	SystemID webidl.DOMString
}

// documentRanges is the live ranges registered with n's document, nil for
// nodes without one.
func documentRanges(n *Node) []*Range {
	doc := n.nodeDocument()
	if doc == nil || doc.Document == nil {
		return nil
	}
	return doc.Document.ranges
}

// SubstringData is https://dom.spec.whatwg.org/#concept-cd-substring.
func (n *Node) SubstringData(offset, count int) (webidl.DOMString, error) {
	cd := n.characterData()
	if offset < 0 || offset > cd.Length {
		return "", indexSizeError("offset %d out of range [0,%d]", offset, cd.Length)
	}
	if offset+count > cd.Length || count < 0 {
		return cd.Data[offset:], nil
	}
	return cd.Data[offset : offset+count], nil
}

// ReplaceData is https://dom.spec.whatwg.org/#concept-cd-replace: the one
// primitive behind append/insert/delete. Queues a characterData mutation
// record with the old data, then adjusts live ranges anchored inside the
// replaced span.
func (n *Node) ReplaceData(offset, count int, data webidl.DOMString) error {
	cd := n.characterData()
	length := cd.Length
	if offset < 0 || offset > length {
		return indexSizeError("offset %d out of range [0,%d]", offset, length)
	}
	if count < 0 || offset+count > length {
		count = length - offset
	}
	queueCharacterDataMutationRecord(n, cd.Data)

	cd.Data = cd.Data[:offset] + data + cd.Data[offset+count:]
	cd.Length = len(cd.Data)

	for _, r := range n.liveRanges() {
		r.characterDataReplaced(n, offset, count, len(data))
	}

	n.bumpVersion()
	MarkNodeDirty(n, DamageContentOrHeritage)
	return nil
}

// AppendData is https://dom.spec.whatwg.org/#dom-characterdata-appenddata.
func (n *Node) AppendData(data webidl.DOMString) error {
	return n.ReplaceData(n.characterData().Length, 0, data)
}

// InsertData is https://dom.spec.whatwg.org/#dom-characterdata-insertdata.
func (n *Node) InsertData(offset int, data webidl.DOMString) error {
	return n.ReplaceData(offset, 0, data)
}

// DeleteData is https://dom.spec.whatwg.org/#dom-characterdata-deletedata.
func (n *Node) DeleteData(offset, count int) error {
	return n.ReplaceData(offset, count, "")
}

// SplitText is https://dom.spec.whatwg.org/#concept-text-split. The new node
// carries the data past offset; live ranges pointing past the split are
// re-pointed into the new node.
func (n *Node) SplitText(offset int) (*Node, error) {
	cd := n.characterData()
	length := cd.Length
	if offset < 0 || offset > length {
		return nil, indexSizeError("offset %d out of range [0,%d]", offset, length)
	}
	count := length - offset
	newData := cd.Data[offset:]
	newNode := NewTextNode(n.nodeDocument(), newData)
	parent := n.ParentNode
	if parent != nil {
		insertNode(newNode, parent, n.NextSibling, false)
		index := n.index()
		for _, r := range documentRanges(n) {
			if r.start.Node == n && r.start.Offset > offset {
				r.setStartBoundary(newNode, r.start.Offset-offset)
			}
			if r.end.Node == n && r.end.Offset > offset {
				r.setEndBoundary(newNode, r.end.Offset-offset)
			}
			if r.start.Node == parent && r.start.Offset == index+1 {
				r.start.Offset++
			}
			if r.end.Node == parent && r.end.Offset == index+1 {
				r.end.Offset++
			}
		}
	}
	if err := n.ReplaceData(offset, count, ""); err != nil {
		return nil, err
	}
	return newNode, nil
}

// TextContent is https://dom.spec.whatwg.org/#dom-node-textcontent, the
// getter: descendant text in tree order for elements and fragments, the
// node's own data for character data and attributes.
func (n *Node) TextContent() webidl.DOMString {
	switch n.NodeType {
	case ElementNode, DocumentFragmentNode:
		var out webidl.DOMString
		it := NewTreeIterator(n)
		for it.Next() {
			if d := it.Node(); d.NodeType == TextNode {
				out += d.Text.Data
			}
		}
		return out
	case AttrNode:
		return n.Attr.Value
	}
	if cd := n.characterData(); cd != nil {
		return cd.Data
	}
	return ""
}

// SetTextContent is the textContent setter: a whole-child-list swap via
// replace-all for elements and fragments, a data replace for character
// data.
func (n *Node) SetTextContent(data webidl.DOMString) {
	switch n.NodeType {
	case ElementNode, DocumentFragmentNode:
		var node *Node
		if data != "" {
			node = NewTextNode(n.nodeDocument(), data)
		}
		n.ReplaceAll(node)
	case AttrNode:
		n.Attr.Value = data
	default:
		if cd := n.characterData(); cd != nil {
			_ = n.ReplaceData(0, cd.Length, data)
		}
	}
}
