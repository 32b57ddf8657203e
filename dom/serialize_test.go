package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringFormat(t *testing.T) {
	doc := NewDocumentNode("html")
	_, err := doc.AppendChild(NewDocTypeNode("html", "", ""))
	require.NoError(t, err)
	html := NewDOMElement(doc, "html", Htmlns)
	_, err = doc.AppendChild(html)
	require.NoError(t, err)
	body := NewDOMElement(doc, "body", Htmlns)
	body.SetAttribute("class", "x")
	_, err = html.AppendChild(body)
	require.NoError(t, err)
	_, err = body.AppendChild(NewTextNode(doc, "hi"))
	require.NoError(t, err)
	_, err = body.AppendChild(NewComment("c", doc))
	require.NoError(t, err)

	want := strings.Join([]string{
		`#document`,
		`| <!DOCTYPE html>`,
		`| <html>`,
		`|   <body>`,
		`|     class="x"`,
		`|     "hi"`,
		`|     <!-- c -->`,
	}, "\n")
	require.Equal(t, want, doc.String())
}

func TestStringDoctypeWithIDs(t *testing.T) {
	dt := NewDocTypeNode("html", "pub", "sys")
	require.Equal(t, `| <!DOCTYPE html "pub" "sys">`, dt.String())
}

func TestStringFragmentAndShadowRoot(t *testing.T) {
	doc, body := newTestDoc(t)
	frag := NewDocumentFragmentNode(doc)
	require.Equal(t, "| #document-fragment", frag.String())

	host := NewDOMElement(doc, "div", Htmlns)
	_, err := body.AppendChild(host)
	require.NoError(t, err)
	shadow, err := host.AttachShadow(ShadowRootInit{Mode: ShadowRootOpen})
	require.NoError(t, err)
	require.Equal(t, "| #shadow-root", shadow.String())
}

func TestStringProcessingInstruction(t *testing.T) {
	doc := NewDocumentNode("xml")
	pi := doc.CreateProcessingInstruction("xml-stylesheet", `href="a.css"`)
	require.Equal(t, `| <?xml-stylesheet href="a.css">`, pi.String())
}

func TestDumpIncludesShadowTree(t *testing.T) {
	doc, body := newTestDoc(t)
	host := NewDOMElement(doc, "div", Htmlns)
	_, err := body.AppendChild(host)
	require.NoError(t, err)
	shadow, err := host.AttachShadow(ShadowRootInit{Mode: ShadowRootOpen})
	require.NoError(t, err)
	_, err = shadow.AppendChild(NewDOMElement(doc, "span", Htmlns))
	require.NoError(t, err)

	dump := doc.Dump()
	require.Contains(t, dump, "#shadow-root")
	require.Contains(t, dump, "<span>")
	require.Contains(t, dump, "<div>")
}
