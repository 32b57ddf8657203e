package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectNames(it interface {
	Next() bool
	Node() *Node
}) []string {
	var names []string
	for it.Next() {
		names = append(names, string(it.Node().NodeName))
	}
	return names
}

// buildTraversalTree returns doc -> html -> body -> [div[span[#text, b], #text2], p].
func buildTraversalTree(t *testing.T) (doc, body, div, span, p *Node) {
	t.Helper()
	doc, body = newTestDoc(t)
	div = NewDOMElement(doc, "div", Htmlns)
	span = NewDOMElement(doc, "span", Htmlns)
	p = NewDOMElement(doc, "p", Htmlns)
	_, err := body.AppendChild(div)
	require.NoError(t, err)
	_, err = body.AppendChild(p)
	require.NoError(t, err)
	_, err = div.AppendChild(span)
	require.NoError(t, err)
	_, err = div.AppendChild(NewTextNode(doc, "t2"))
	require.NoError(t, err)
	_, err = span.AppendChild(NewTextNode(doc, "t1"))
	require.NoError(t, err)
	b := NewDOMElement(doc, "b", Htmlns)
	_, err = span.AppendChild(b)
	require.NoError(t, err)
	return doc, body, div, span, p
}

func TestTreeIteratorPreorder(t *testing.T) {
	doc, _, _, _, _ := buildTraversalTree(t)
	it := NewTreeIterator(doc)
	require.Equal(t,
		[]string{"#document", "html", "body", "div", "span", "#text", "b", "#text", "p"},
		collectNames(it))

	it.Restart()
	require.True(t, it.Next())
	require.Same(t, doc, it.Node(), "restart rewinds to the root")
}

func TestReverseTreeIteratorIsPreorderReversed(t *testing.T) {
	doc, _, _, _, _ := buildTraversalTree(t)
	forward := collectNames(NewTreeIterator(doc))
	backward := collectNames(NewReverseTreeIterator(doc))
	for i, j := 0, len(backward)-1; i < len(forward); i, j = i+1, j-1 {
		require.Equal(t, forward[i], backward[j])
	}
}

func TestSiblingAndAncestorIterators(t *testing.T) {
	_, _, div, span, p := buildTraversalTree(t)

	require.Equal(t, []string{"div", "p"}, collectNames(NewSiblingIterator(div)))
	require.Equal(t, []string{"p"}, collectNames(NewSiblingIterator(p)))
	require.Equal(t,
		[]string{"span", "div", "body", "html", "#document"},
		collectNames(NewAncestorIterator(span)))
}

func TestFollowingAndPrecedingIterators(t *testing.T) {
	_, _, div, span, _ := buildTraversalTree(t)

	require.Equal(t,
		[]string{"#text", "b", "#text", "p"},
		collectNames(NewFollowingIterator(span)))
	require.Equal(t,
		[]string{"body", "html", "#document"},
		collectNames(NewPrecedingIterator(div)))
}

func TestShadowIncludingOrder(t *testing.T) {
	doc, body := newTestDoc(t)
	host := NewDOMElement(doc, "host", Htmlns)
	_, err := body.AppendChild(host)
	require.NoError(t, err)
	light := NewDOMElement(doc, "light", Htmlns)
	_, err = host.AppendChild(light)
	require.NoError(t, err)
	shadow, err := host.AttachShadow(ShadowRootInit{Mode: ShadowRootOpen})
	require.NoError(t, err)
	inner := NewDOMElement(doc, "inner", Htmlns)
	_, err = shadow.AppendChild(inner)
	require.NoError(t, err)

	require.Equal(t,
		[]string{"body", "host", "#document-fragment", "inner", "light"},
		collectNames(NewShadowIncludingTreeIterator(body)))

	// the plain iterator never crosses the shadow boundary
	require.Equal(t,
		[]string{"body", "host", "light"},
		collectNames(NewTreeIterator(body)))
}

func TestIteratorSurvivesMutation(t *testing.T) {
	_, body, div, span, p := buildTraversalTree(t)

	var visited []string
	it := NewTreeIterator(body)
	for it.Next() {
		n := it.Node()
		visited = append(visited, string(n.NodeName))
		if n == span {
			// drop an upcoming subtree mid-walk; the iterator re-derives the
			// next node from the live links
			_, err := body.RemoveChild(p)
			require.NoError(t, err)
		}
	}
	require.Equal(t, []string{"body", "div", "span", "#text", "b", "#text"}, visited)

	// removing the current node ends the walk at the detached subtree
	visited = nil
	it = NewTreeIterator(body)
	for it.Next() {
		n := it.Node()
		visited = append(visited, string(n.NodeName))
		if n == div {
			_, err := body.RemoveChild(div)
			require.NoError(t, err)
		}
	}
	require.Equal(t, []string{"body", "div", "span", "#text", "b", "#text"}, visited)
}
