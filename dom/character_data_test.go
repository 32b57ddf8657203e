package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstringData(t *testing.T) {
	doc, _ := newTestDoc(t)
	text := NewTextNode(doc, "hello world")

	got, err := text.SubstringData(0, 5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	// a count past the end clamps
	got, err = text.SubstringData(6, 100)
	require.NoError(t, err)
	require.Equal(t, "world", string(got))

	_, err = text.SubstringData(12, 1)
	require.True(t, IsDOMException(err, IndexSizeError))
}

func TestReplaceDataPrimitives(t *testing.T) {
	doc, _ := newTestDoc(t)

	tests := []struct {
		name string
		run  func(n *Node) error
		want string
	}{
		{"append", func(n *Node) error { return n.AppendData("!") }, "abc!"},
		{"insert", func(n *Node) error { return n.InsertData(1, "X") }, "aXbc"},
		{"delete", func(n *Node) error { return n.DeleteData(0, 2) }, "c"},
		{"replace", func(n *Node) error { return n.ReplaceData(1, 1, "ZZ") }, "aZZc"},
		{"delete clamps", func(n *Node) error { return n.DeleteData(1, 100) }, "a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := NewTextNode(doc, "abc")
			require.NoError(t, tc.run(text))
			require.Equal(t, tc.want, string(text.Text.Data))
			require.Equal(t, len(tc.want), text.Text.Length)
		})
	}

	text := NewTextNode(doc, "abc")
	require.True(t, IsDOMException(text.InsertData(4, "x"), IndexSizeError))
}

func TestReplaceDataOnCommentAndPI(t *testing.T) {
	doc, _ := newTestDoc(t)
	comment := NewComment("draft", doc)
	require.NoError(t, comment.AppendData(" v2"))
	require.Equal(t, "draft v2", string(comment.Comment.Data))

	pi := NewProcessingInstructionNode(doc, "target", "a=1")
	require.NoError(t, pi.ReplaceData(2, 1, "2"))
	require.Equal(t, "a=2", string(pi.ProcessingInstruction.Data))
}

func TestSplitTextNotifiesObservers(t *testing.T) {
	doc, body := newTestDoc(t)
	text := NewTextNode(doc, "hello")
	_, err := body.AppendChild(text)
	require.NoError(t, err)

	var changes []*ChildrenChange
	RegisterHooks(ElementNode, &Hooks{
		ChildrenChanged: func(n *Node, change *ChildrenChange) {
			if n == body {
				changes = append(changes, change)
			}
		},
	})
	defer RegisterHooks(ElementNode, nil)

	mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	require.NoError(t, mo.Observe(body, MutationObserverInit{ChildList: true}))

	tail, err := text.SplitText(2)
	require.NoError(t, err)

	records := mo.TakeRecords()
	require.Len(t, records, 1, "the tail insertion is an observable childList mutation")
	require.Equal(t, NodeList{tail}, records[0].AddedNodes)
	require.Same(t, text, records[0].PreviousSibling)
	require.Len(t, changes, 1)
	require.Equal(t, NodeList{tail}, changes[0].Added)
}

func TestSplitTextDetached(t *testing.T) {
	doc, _ := newTestDoc(t)
	text := NewTextNode(doc, "abcd")
	tail, err := text.SplitText(2)
	require.NoError(t, err)
	require.Equal(t, "ab", string(text.Text.Data))
	require.Equal(t, "cd", string(tail.Text.Data))
	require.Nil(t, tail.ParentNode, "splitting a detached node leaves the tail detached")
}
