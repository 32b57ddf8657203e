package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeMergesAdjacentText(t *testing.T) {
	doc, body := newTestDoc(t)
	a := NewTextNode(doc, "a")
	b := NewTextNode(doc, "b")
	el := NewDOMElement(doc, "span", Htmlns)
	c := NewTextNode(doc, "c")
	d := NewTextNode(doc, "d")
	empty := NewTextNode(doc, "")
	for _, n := range []*Node{a, b, el, c, d, empty} {
		_, err := body.AppendChild(n)
		require.NoError(t, err)
	}

	body.Normalize()

	require.Equal(t, 3, body.ChildrenCount())
	require.Same(t, a, body.FirstChild)
	require.Equal(t, "ab", string(a.Text.Data))
	require.Same(t, el, a.NextSibling)
	require.Same(t, c, el.NextSibling)
	require.Equal(t, "cd", string(c.Text.Data))
	require.Nil(t, b.ParentNode)
	require.Nil(t, d.ParentNode)
	require.Nil(t, empty.ParentNode)
	verifyChildLinks(t, body)
}

func TestNormalizeRemovesLoneEmptyText(t *testing.T) {
	doc, body := newTestDoc(t)
	empty := NewTextNode(doc, "")
	_, err := body.AppendChild(empty)
	require.NoError(t, err)

	body.Normalize()
	require.Equal(t, 0, body.ChildrenCount())
	require.Nil(t, empty.ParentNode)
}

func TestNormalizeRepointsRanges(t *testing.T) {
	doc, body := newTestDoc(t)
	a := NewTextNode(doc, "foo")
	b := NewTextNode(doc, "bar")
	for _, n := range []*Node{a, b} {
		_, err := body.AppendChild(n)
		require.NoError(t, err)
	}

	// boundary inside the merged node moves to the survivor, shifted by the
	// survivor's prior length
	inB, err := NewRange(b, 1)
	require.NoError(t, err)
	// boundary between the two texts collapses onto the merge point
	between, err := NewRange(body, 1)
	require.NoError(t, err)

	body.Normalize()

	require.Equal(t, "foobar", string(a.Text.Data))
	require.Same(t, a, inB.Start().Node)
	require.Equal(t, 4, inB.Start().Offset)
	require.Same(t, a, between.Start().Node)
	require.Equal(t, 3, between.Start().Offset)
}

func TestNormalizeSkipsCDATA(t *testing.T) {
	doc := NewDocumentNode("xml")
	root := NewDOMElement(doc, "root", Htmlns)
	_, err := doc.AppendChild(root)
	require.NoError(t, err)
	text := NewTextNode(doc, "x")
	cdata := NewCDATASectionNode(doc, "y")
	for _, n := range []*Node{text, cdata} {
		_, err := root.AppendChild(n)
		require.NoError(t, err)
	}

	root.Normalize()
	require.Equal(t, 2, root.ChildrenCount())
	require.Equal(t, "x", string(text.Text.Data))
	require.Equal(t, "y", string(cdata.CDATASection.Data))
}
