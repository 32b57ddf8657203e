package dom

import "github.com/heathj/domcore/webidl"

// Cloning, https://dom.spec.whatwg.org/#concept-node-clone, and deep
// structural equality.

// CloneNodeDef is CloneNode with the default shallow flag.
func (n *Node) CloneNodeDef() (*Node, error) {
	return n.CloneNode(false)
}

// CloneNode is https://dom.spec.whatwg.org/#dom-node-clonenode. Cloning a
// shadow root directly is unsupported; clonable shadow roots are copied as
// part of cloning their host.
func (n *Node) CloneNode(deep bool) (*Node, error) {
	if n.isShadowRoot() {
		return nil, notSupportedError("a shadow root cannot be cloned directly")
	}
	return cloneNode(n, nil, deep), nil
}

// ImportNode is https://dom.spec.whatwg.org/#dom-document-importnode, with
// n as the importing document.
func (n *Node) ImportNode(node *Node, deep bool) (*Node, error) {
	if node.NodeType == DocumentNode || node.isShadowRoot() {
		return nil, notSupportedError("documents and shadow roots cannot be imported")
	}
	return cloneNode(node, n, deep), nil
}

// cloneNode produces a structurally independent copy in document (nil
// meaning the source's own document). The copy starts detached; deep
// cloning splices children in original order with observers suppressed,
// since a brand-new tree has none.
func cloneNode(node, document *Node, deep bool) *Node {
	if document == nil {
		document = node.nodeDocument()
	}

	var copy *Node
	switch node.NodeType {
	case ElementNode:
		copy = NewDOMElement(document, node.NodeName, node.Element.NamespaceURI, node.Element.Prefix)
		copy.Element.Id = node.Element.Id
		copy.Element.IsValue = node.Element.IsValue
		for _, name := range node.Element.Attributes.sortedNames() {
			a := node.Element.Attributes.Attrs[webidl.DOMString(name)]
			copy.Element.Attributes.SetNamedItem(&Attr{
				Namespace:     a.Namespace,
				Prefix:        a.Prefix,
				LocalName:     a.LocalName,
				Name:          a.Name,
				Value:         a.Value,
				Specified:     a.Specified,
				OwnerDocument: document,
			})
		}
	case DocumentNode:
		copy = NewDocumentNode(node.Document.Type)
		copy.Document.URL = node.Document.URL
		copy.Document.DocumentURI = node.Document.DocumentURI
		copy.Document.CompatMode = node.Document.CompatMode
		copy.Document.CharacterSet = node.Document.CharacterSet
		copy.Document.InputEncoding = node.Document.InputEncoding
		copy.Document.ContentType = node.Document.ContentType
		copy.Document.Origin = node.Document.Origin
		copy.Document.Mode = node.Document.Mode
	case DocumentTypeNode:
		copy = NewDocTypeNode(node.DocumentType.Name, node.DocumentType.PublicID, node.DocumentType.SystemID)
	case AttrNode:
		copy = NewAttrNode(document, &Attr{
			Namespace:     node.Attr.Namespace,
			Prefix:        node.Attr.Prefix,
			LocalName:     node.Attr.LocalName,
			Name:          node.Attr.Name,
			Value:         node.Attr.Value,
			Specified:     node.Attr.Specified,
			OwnerDocument: document,
		})
	case TextNode:
		copy = NewTextNode(document, node.Text.Data)
	case CDATASectionNode:
		copy = NewCDATASectionNode(document, node.CDATASection.Data)
	case CommentNode:
		copy = NewComment(node.Comment.Data, document)
	case ProcessingInstructionNode:
		copy = NewProcessingInstructionNode(document, node.ProcessingInstruction.Target, node.ProcessingInstruction.Data)
	case DocumentFragmentNode:
		copy = NewDocumentFragmentNode(document)
	}

	if copy.NodeType == DocumentNode {
		document = copy
	} else {
		copy.OwnerDocument = document
	}

	node.cloningSteps(copy, document, deep)

	if deep {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			insertNode(cloneNode(c, document, true), copy, nil, true)
		}
	}

	// shadow content follows the host regardless of the outer deep flag
	if node.NodeType == ElementNode && node.Element.IsShadowHost() {
		source := node.Element.shadowRoot
		if source.DocumentFragment.Clonable {
			shadow, _ := copy.AttachShadow(ShadowRootInit{
				Mode:           source.DocumentFragment.Mode,
				DelegatesFocus: source.DocumentFragment.DelegatesFocus,
				Clonable:       true,
				SlotAssignment: source.DocumentFragment.SlotAssignment,
			})
			shadow.DocumentFragment.Declarative = source.DocumentFragment.Declarative
			for c := source.FirstChild; c != nil; c = c.NextSibling {
				insertNode(cloneNode(c, document, true), shadow, nil, true)
			}
		}
	}

	return copy
}

// IsEqualNode is https://dom.spec.whatwg.org/#concept-node-equals: deep
// structural equality, identity aside.
func (n *Node) IsEqualNode(other *Node) bool {
	if other == nil || n.NodeType != other.NodeType {
		return false
	}

	switch n.NodeType {
	case DocumentTypeNode:
		if n.DocumentType.Name != other.DocumentType.Name ||
			n.DocumentType.PublicID != other.DocumentType.PublicID ||
			n.DocumentType.SystemID != other.DocumentType.SystemID {
			return false
		}
	case ElementNode:
		if n.Element.NamespaceURI != other.Element.NamespaceURI ||
			n.Element.Prefix != other.Element.Prefix ||
			n.Element.LocalName != other.Element.LocalName ||
			len(n.Element.Attributes.Attrs) != len(other.Element.Attributes.Attrs) {
			return false
		}
		for _, a := range n.Element.Attributes.Attrs {
			b := other.Element.Attributes.getAttributeByNSLocalName(a.Namespace, a.LocalName)
			if b == nil || a.Value != b.Value {
				return false
			}
		}
	case AttrNode:
		if n.Attr.Namespace != other.Attr.Namespace ||
			n.Attr.LocalName != other.Attr.LocalName ||
			n.Attr.Value != other.Attr.Value {
			return false
		}
	case ProcessingInstructionNode:
		if n.ProcessingInstruction.Target != other.ProcessingInstruction.Target ||
			n.ProcessingInstruction.Data != other.ProcessingInstruction.Data {
			return false
		}
	case TextNode, CDATASectionNode, CommentNode:
		if n.characterData().Data != other.characterData().Data {
			return false
		}
	}

	if n.childrenCount != other.childrenCount {
		return false
	}
	a, b := n.FirstChild, other.FirstChild
	for a != nil && b != nil {
		if !a.IsEqualNode(b) {
			return false
		}
		a, b = a.NextSibling, b.NextSibling
	}
	return a == nil && b == nil
}
