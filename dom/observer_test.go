package dom

import (
	"testing"

	"github.com/heathj/domcore/webidl"
	"github.com/stretchr/testify/require"
)

func TestObserveRequiresAType(t *testing.T) {
	_, body := newTestDoc(t)
	mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	require.Error(t, mo.Observe(body, MutationObserverInit{}))
	require.NoError(t, mo.Observe(body, MutationObserverInit{ChildList: true}))
}

func TestChildListRecords(t *testing.T) {
	doc, body := newTestDoc(t)
	a := NewDOMElement(doc, "a", Htmlns)
	_, err := body.AppendChild(a)
	require.NoError(t, err)

	mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	require.NoError(t, mo.Observe(body, MutationObserverInit{ChildList: true}))

	b := NewDOMElement(doc, "b", Htmlns)
	_, err = body.InsertBefore(b, a)
	require.NoError(t, err)
	_, err = body.RemoveChild(a)
	require.NoError(t, err)

	records := mo.TakeRecords()
	require.Len(t, records, 2, "records arrive in FIFO order")

	require.Equal(t, webidl.DOMString("childList"), records[0].Type)
	require.Same(t, body, records[0].Target)
	require.Equal(t, NodeList{b}, records[0].AddedNodes)
	require.Empty(t, records[0].RemovedNodes)
	require.Nil(t, records[0].PreviousSibling)
	require.Same(t, a, records[0].NextSibling)

	require.Equal(t, NodeList{a}, records[1].RemovedNodes)
	require.Same(t, b, records[1].PreviousSibling)
	require.Nil(t, records[1].NextSibling)

	require.Empty(t, mo.TakeRecords(), "TakeRecords drains the queue")
}

func TestFragmentObserverSeesMove(t *testing.T) {
	doc, body := newTestDoc(t)
	frag := NewDocumentFragmentNode(doc)
	mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	require.NoError(t, mo.Observe(frag, MutationObserverInit{ChildList: true}))

	// inserting an empty fragment is a no-op: no record at all
	_, err := body.AppendChild(frag)
	require.NoError(t, err)
	require.Empty(t, mo.TakeRecords())

	kid := NewDOMElement(doc, "p", Htmlns)
	_, err = frag.AppendChild(kid)
	require.NoError(t, err)
	mo.TakeRecords()

	// emptying the fragment into a parent is observable on the fragment
	_, err = body.AppendChild(frag)
	require.NoError(t, err)
	records := mo.TakeRecords()
	require.Len(t, records, 1)
	require.Same(t, frag, records[0].Target)
	require.Equal(t, NodeList{kid}, records[0].RemovedNodes)
	require.Empty(t, records[0].AddedNodes)
}

func TestSubtreeOption(t *testing.T) {
	doc, body := newTestDoc(t)
	div := NewDOMElement(doc, "div", Htmlns)
	_, err := body.AppendChild(div)
	require.NoError(t, err)

	flat := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	deep := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	require.NoError(t, flat.Observe(body, MutationObserverInit{ChildList: true}))
	require.NoError(t, deep.Observe(body, MutationObserverInit{ChildList: true, Subtree: true}))

	_, err = div.AppendChild(NewTextNode(doc, "x"))
	require.NoError(t, err)

	require.Empty(t, flat.TakeRecords(), "non-subtree observer ignores descendant mutations")
	records := deep.TakeRecords()
	require.Len(t, records, 1)
	require.Same(t, div, records[0].Target)
}

func TestAttributeRecords(t *testing.T) {
	doc, body := newTestDoc(t)
	div := NewDOMElement(doc, "div", Htmlns)
	_, err := body.AppendChild(div)
	require.NoError(t, err)
	div.SetAttribute("class", "old")

	tests := []struct {
		name    string
		options MutationObserverInit
		wantOld bool
	}{
		{"attributes", MutationObserverInit{Attributes: true}, false},
		{"with old value", MutationObserverInit{AttributeOldValue: true}, true},
		{"filter class", MutationObserverInit{AttributeFilter: []webidl.DOMString{"class"}}, false},
		{"filter id", MutationObserverInit{AttributeFilter: []webidl.DOMString{"id"}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
			require.NoError(t, mo.Observe(div, tc.options))
			defer mo.Disconnect()

			div.SetAttribute("class", "new")
			div.SetAttribute("id", "x")
			div.RemoveAttribute("id")
			div.SetAttribute("class", "old")

			records := mo.TakeRecords()
			if tc.options.AttributeFilter != nil {
				// "class" mutates twice, "id" twice; each filter passes half
				require.Len(t, records, 2)
				for _, record := range records {
					require.Equal(t, tc.options.AttributeFilter[0], record.AttributeName)
				}
				return
			}
			require.Len(t, records, 4)
			require.Equal(t, webidl.DOMString("attributes"), records[0].Type)
			require.Equal(t, webidl.DOMString("class"), records[0].AttributeName)
			require.Equal(t, tc.wantOld, records[0].HasOldValue)
			if tc.wantOld {
				require.Equal(t, webidl.DOMString("old"), records[0].OldValue)
			}
		})
	}
}

func TestCharacterDataRecords(t *testing.T) {
	doc, body := newTestDoc(t)
	text := NewTextNode(doc, "before")
	_, err := body.AppendChild(text)
	require.NoError(t, err)

	plain := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	withOld := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	require.NoError(t, plain.Observe(text, MutationObserverInit{CharacterData: true}))
	require.NoError(t, withOld.Observe(text, MutationObserverInit{CharacterDataOldValue: true}))

	require.NoError(t, text.ReplaceData(0, 6, "after"))

	records := plain.TakeRecords()
	require.Len(t, records, 1)
	require.Equal(t, webidl.DOMString("characterData"), records[0].Type)
	require.False(t, records[0].HasOldValue)

	records = withOld.TakeRecords()
	require.Len(t, records, 1)
	require.True(t, records[0].HasOldValue)
	require.Equal(t, webidl.DOMString("before"), records[0].OldValue)
}

func TestCheckpointDeliversInRegistrationOrder(t *testing.T) {
	doc, body := newTestDoc(t)

	var order []string
	first := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {
		order = append(order, "first")
	})
	second := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {
		order = append(order, "second")
	})
	require.NoError(t, second.Observe(body, MutationObserverInit{ChildList: true}))
	require.NoError(t, first.Observe(body, MutationObserverInit{ChildList: true}))

	_, err := body.AppendChild(NewDOMElement(doc, "div", Htmlns))
	require.NoError(t, err)

	doc.Document.PerformMicrotaskCheckpoint()
	require.Equal(t, []string{"second", "first"}, order)

	// nothing pending: callbacks do not fire again
	order = nil
	doc.Document.PerformMicrotaskCheckpoint()
	require.Empty(t, order)
}

func TestObserverCallbackMayMutate(t *testing.T) {
	doc, body := newTestDoc(t)

	calls := 0
	mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {
		calls++
		if calls == 1 {
			_, err := body.AppendChild(NewDOMElement(doc, "p", Htmlns))
			require.NoError(t, err)
		}
	})
	require.NoError(t, mo.Observe(body, MutationObserverInit{ChildList: true}))

	_, err := body.AppendChild(NewDOMElement(doc, "div", Htmlns))
	require.NoError(t, err)

	doc.Document.PerformMicrotaskCheckpoint()
	require.Equal(t, 1, calls)
	// the mutation made inside the callback is seen by the next checkpoint
	doc.Document.PerformMicrotaskCheckpoint()
	require.Equal(t, 2, calls)
}

func TestDisconnectDropsRegistrationsAndQueue(t *testing.T) {
	doc, body := newTestDoc(t)
	mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {
		t.Fatal("disconnected observer must not be called")
	})
	require.NoError(t, mo.Observe(body, MutationObserverInit{ChildList: true}))

	_, err := body.AppendChild(NewDOMElement(doc, "div", Htmlns))
	require.NoError(t, err)
	mo.Disconnect()
	require.Empty(t, mo.TakeRecords())

	_, err = body.AppendChild(NewDOMElement(doc, "div", Htmlns))
	require.NoError(t, err)
	doc.Document.PerformMicrotaskCheckpoint()
	require.Empty(t, mo.TakeRecords())
}

func TestObserveSameTargetReplacesOptions(t *testing.T) {
	doc, body := newTestDoc(t)
	mo := NewMutationObserver(func(records []*MutationRecord, observer *MutationObserver) {})
	require.NoError(t, mo.Observe(body, MutationObserverInit{ChildList: true}))
	require.NoError(t, mo.Observe(body, MutationObserverInit{Attributes: true}))

	_, err := body.AppendChild(NewDOMElement(doc, "div", Htmlns))
	require.NoError(t, err)
	require.Empty(t, mo.TakeRecords(), "childList interest was replaced")

	body.SetAttribute("class", "x")
	require.Len(t, mo.TakeRecords(), 1)
}
