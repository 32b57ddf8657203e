package dom

import (
	"fmt"
	"strings"

	"github.com/heathj/domcore/webidl"
	"github.com/xlab/treeprint"
)

// html5lib tree-construction test format, the same shape the parser test
// fixtures use.
func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.Element.NamespaceURI {
		case Svgns:
			e += "svg "
		case Mathmlns:
			e += "math "
		}
		e += string(node.NodeName)
		if node.Element.Attributes != nil && len(node.Element.Attributes.Attrs) != 0 {
			e += ">"
			spaces := "| "
			for i := 1; i < ident; i++ {
				spaces += "  "
			}
			for _, name := range node.Element.Attributes.sortedNames() {
				attr := node.Element.Attributes.Attrs[webidl.DOMString(name)]
				var ns string
				switch attr.Namespace {
				case Xmlnsns:
					ns = "xmlns "
				case Xmlns:
					ns = "xml "
				case Xlinkns:
					ns = "xlink "
				case Svgns:
					ns = "svg "
				case Mathmlns:
					ns = "math "
				}
				e += "\n" + spaces + ns + name + "=\"" + string(attr.Value) + "\""
			}
		} else {
			e += ">"
		}
		return e
	case TextNode:
		return "\"" + string(node.Text.Data) + "\""
	case CDATASectionNode:
		return "<![CDATA[ " + string(node.CDATASection.Data) + " ]]>"
	case CommentNode:
		return "<!-- " + string(node.Comment.Data) + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + string(node.DocumentType.Name)
		if len(node.DocumentType.PublicID) != 0 || len(node.DocumentType.SystemID) != 0 {
			d += " \"" + string(node.DocumentType.PublicID) + "\""
			d += " \"" + string(node.DocumentType.SystemID) + "\""
		}
		d += ">"
		return d
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		if node.isShadowRoot() {
			return "#shadow-root"
		}
		return "#document-fragment"
	case ProcessingInstructionNode:
		return "<?" + string(node.ProcessingInstruction.Target) + " " + string(node.ProcessingInstruction.CharacterData.Data) + ">"
	case AttrNode:
		return string(node.Attr.Name) + "=\"" + string(node.Attr.Value) + "\""
	default:
		return fmt.Sprintf("#unknown(%d)", node.NodeType)
	}
}

func (node *Node) serialize(ident int) string {
	ser := serializeNodeType(node, ident+1) + "\n"
	if node.NodeType != DocumentNode {
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		ser += child.serialize(ident + 1)
	}
	return ser
}

func (node *Node) String() string {
	return strings.TrimRight(node.serialize(0), "\n")
}

// Dump renders the subtree as an ASCII tree, one node per branch, for
// debugging and test failure output.
func (node *Node) Dump() string {
	tree := treeprint.NewWithRoot(serializeNodeType(node, 0))
	dumpChildren(tree, node)
	return tree.String()
}

func dumpChildren(branch treeprint.Tree, node *Node) {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		child := branch.AddBranch(serializeNodeType(c, 0))
		dumpChildren(child, c)
	}
	if c := shadowRootOf(node); c != nil {
		child := branch.AddBranch(serializeNodeType(c, 0))
		dumpChildren(child, c)
	}
}

func shadowRootOf(node *Node) *Node {
	if node.NodeType == ElementNode {
		return node.Element.shadowRoot
	}
	return nil
}
