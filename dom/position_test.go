package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareDocumentPosition(t *testing.T) {
	doc, body := newTestDoc(t)
	first := NewDOMElement(doc, "first", Htmlns)
	second := NewDOMElement(doc, "second", Htmlns)
	inner := NewTextNode(doc, "x")
	for _, n := range []*Node{first, second} {
		_, err := body.AppendChild(n)
		require.NoError(t, err)
	}
	_, err := first.AppendChild(inner)
	require.NoError(t, err)

	require.Equal(t, DocumentPosition(0), body.CompareDocumentPosition(body))

	require.Equal(t, Following, first.CompareDocumentPosition(second))
	require.Equal(t, Preceding, second.CompareDocumentPosition(first))

	require.Equal(t, ContainedBy|Following, body.CompareDocumentPosition(first))
	require.Equal(t, Contain|Preceding, first.CompareDocumentPosition(body))

	// deep non-sibling comparison: inner precedes second
	require.Equal(t, Following, inner.CompareDocumentPosition(second))
	require.Equal(t, Preceding, second.CompareDocumentPosition(inner))
}

func TestCompareDocumentPositionAntisymmetry(t *testing.T) {
	doc, body := newTestDoc(t)
	var nodes []*Node
	nodes = append(nodes, doc, body)
	for i := 0; i < 3; i++ {
		el := NewDOMElement(doc, "div", Htmlns)
		_, err := body.AppendChild(el)
		require.NoError(t, err)
		text := NewTextNode(doc, "t")
		_, err = el.AppendChild(text)
		require.NoError(t, err)
		nodes = append(nodes, el, text)
	}

	opposite := map[DocumentPosition]DocumentPosition{
		Preceding:               Following,
		Following:               Preceding,
		Contain | Preceding:     ContainedBy | Following,
		ContainedBy | Following: Contain | Preceding,
	}
	for _, a := range nodes {
		for _, b := range nodes {
			if a == b {
				continue
			}
			ab := a.CompareDocumentPosition(b)
			ba := b.CompareDocumentPosition(a)
			require.Equal(t, opposite[ab], ba, "%s vs %s", a.NodeName, b.NodeName)
		}
	}
}

func TestCompareDocumentPositionDisconnected(t *testing.T) {
	doc, body := newTestDoc(t)
	loose := NewDOMElement(doc, "div", Htmlns)

	got := body.CompareDocumentPosition(loose)
	require.NotZero(t, got&Disconnected)
	require.NotZero(t, got&ImplementationSpecific)
	require.NotZero(t, got&(Preceding|Following))

	// stable across calls, antisymmetric across operands
	require.Equal(t, got, body.CompareDocumentPosition(loose))
	back := loose.CompareDocumentPosition(body)
	require.Equal(t, got&(Disconnected|ImplementationSpecific), back&(Disconnected|ImplementationSpecific))
	require.NotEqual(t, got&(Preceding|Following), back&(Preceding|Following))
}

func TestCompareDocumentPositionAttributes(t *testing.T) {
	doc, body := newTestDoc(t)
	el := NewDOMElement(doc, "div", Htmlns)
	_, err := body.AppendChild(el)
	require.NoError(t, err)
	el.SetAttribute("alpha", "1")
	el.SetAttribute("beta", "2")

	alphaAttr := el.Element.Attributes.GetNamedItem("alpha")
	betaAttr := el.Element.Attributes.GetNamedItem("beta")
	alphaAttr.OwnerElement = el
	betaAttr.OwnerElement = el
	alpha := NewAttrNode(doc, alphaAttr)
	beta := NewAttrNode(doc, betaAttr)

	// attributes of the same element order deterministically
	ab := alpha.CompareDocumentPosition(beta)
	ba := beta.CompareDocumentPosition(alpha)
	require.NotZero(t, ab&ImplementationSpecific)
	require.NotEqual(t, ab&(Preceding|Following), ba&(Preceding|Following))
	require.Equal(t, ab, alpha.CompareDocumentPosition(beta), "order is stable")

	// an attribute is contained by its owner element
	require.Equal(t, ContainedBy|Following, el.CompareDocumentPosition(alpha))
	require.Equal(t, Contain|Preceding, alpha.CompareDocumentPosition(el))
}
