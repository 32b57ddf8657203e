package dom

import (
	"github.com/heathj/domcore/webidl"
	"github.com/pkg/errors"
)

// MutationRecord is https://dom.spec.whatwg.org/#mutationrecord.
type MutationRecord struct {
	Type            webidl.DOMString // "childList", "attributes", "characterData"
	Target          *Node
	AddedNodes      NodeList
	RemovedNodes    NodeList
	PreviousSibling *Node
	NextSibling     *Node
	AttributeName   webidl.DOMString
	OldValue        webidl.DOMString
	HasOldValue     bool
}

// MutationCallback receives the drained record queue at a microtask
// checkpoint. It runs on the same goroutine as the mutations it describes
// and may itself mutate the tree.
type MutationCallback func(records []*MutationRecord, observer *MutationObserver)

// MutationObserverInit is https://dom.spec.whatwg.org/#dictdef-mutationobserverinit.
// A nil AttributeFilter means all attributes.
type MutationObserverInit struct {
	ChildList             bool
	Attributes            bool
	CharacterData         bool
	Subtree               bool
	AttributeOldValue     bool
	CharacterDataOldValue bool
	AttributeFilter       []webidl.DOMString
}

type RegisteredObserver struct {
	Observer *MutationObserver
	Options  MutationObserverInit
}

// MutationObserver is https://dom.spec.whatwg.org/#mutationobserver.
// Records are queued synchronously by the mutation algorithms and delivered
// in FIFO order by Document.PerformMicrotaskCheckpoint, observers in
// registration order.
type MutationObserver struct {
	callback MutationCallback
	queue    []*MutationRecord
	targets  []*Node
}

func NewMutationObserver(cb MutationCallback) *MutationObserver {
	return &MutationObserver{callback: cb}
}

// Observe is https://dom.spec.whatwg.org/#dom-mutationobserver-observe.
// Observing the same target again replaces the registration's options.
func (mo *MutationObserver) Observe(target *Node, options MutationObserverInit) error {
	if options.AttributeOldValue || options.AttributeFilter != nil {
		options.Attributes = true
	}
	if options.CharacterDataOldValue {
		options.CharacterData = true
	}
	if !options.ChildList && !options.Attributes && !options.CharacterData {
		return errors.New("observe: one of childList, attributes, or characterData must be set")
	}

	rd := target.ensureRareData()
	for _, ro := range rd.registeredObservers {
		if ro.Observer == mo {
			ro.Options = options
			return nil
		}
	}
	rd.registeredObservers = append(rd.registeredObservers, &RegisteredObserver{
		Observer: mo,
		Options:  options,
	})
	mo.targets = append(mo.targets, target)

	doc := target.nodeDocument()
	if doc != nil && doc.Document != nil {
		registered := false
		for _, have := range doc.Document.observers {
			if have == mo {
				registered = true
				break
			}
		}
		if !registered {
			doc.Document.observers = append(doc.Document.observers, mo)
		}
	}
	return nil
}

// Disconnect is https://dom.spec.whatwg.org/#dom-mutationobserver-disconnect:
// drop every registration and the pending queue.
func (mo *MutationObserver) Disconnect() {
	for _, target := range mo.targets {
		if target.rare == nil {
			continue
		}
		ros := target.rare.registeredObservers
		for i, ro := range ros {
			if ro.Observer == mo {
				target.rare.registeredObservers = append(ros[:i], ros[i+1:]...)
				break
			}
		}
		doc := target.nodeDocument()
		if doc != nil && doc.Document != nil {
			for i, have := range doc.Document.observers {
				if have == mo {
					doc.Document.observers = append(doc.Document.observers[:i], doc.Document.observers[i+1:]...)
					break
				}
			}
		}
	}
	mo.targets = nil
	mo.queue = nil
}

// TakeRecords drains the pending queue in FIFO order.
func (mo *MutationObserver) TakeRecords() []*MutationRecord {
	records := mo.queue
	mo.queue = nil
	return records
}

// queueMutationRecord is https://dom.spec.whatwg.org/#queue-a-mutation-record.
// Records are built lazily: the ancestor walk runs first, and nothing is
// allocated unless some observer is actually interested.
func queueMutationRecord(target *Node, recordType webidl.DOMString,
	attrName webidl.DOMString, oldValue webidl.DOMString, hasOldValue bool,
	added, removed NodeList, prev, next *Node) {

	type interested struct {
		observer *MutationObserver
		wantsOld bool
	}
	var interestedObservers []interested
	seen := map[*MutationObserver]int{}

	it := NewAncestorIterator(target)
	for it.Next() {
		ancestor := it.Node()
		if ancestor.rare == nil {
			continue
		}
		for _, ro := range ancestor.rare.registeredObservers {
			opt := ro.Options
			if ancestor != target && !opt.Subtree {
				continue
			}
			switch recordType {
			case "attributes":
				if !opt.Attributes {
					continue
				}
				if opt.AttributeFilter != nil && !filterContains(opt.AttributeFilter, attrName) {
					continue
				}
			case "characterData":
				if !opt.CharacterData {
					continue
				}
			case "childList":
				if !opt.ChildList {
					continue
				}
			}
			wantsOld := hasOldValue &&
				((recordType == "attributes" && opt.AttributeOldValue) ||
					(recordType == "characterData" && opt.CharacterDataOldValue))
			if i, ok := seen[ro.Observer]; ok {
				if wantsOld {
					interestedObservers[i].wantsOld = true
				}
				continue
			}
			seen[ro.Observer] = len(interestedObservers)
			interestedObservers = append(interestedObservers, interested{ro.Observer, wantsOld})
		}
	}
	if len(interestedObservers) == 0 {
		return
	}

	base := &MutationRecord{
		Type:            recordType,
		Target:          target,
		AddedNodes:      added,
		RemovedNodes:    removed,
		PreviousSibling: prev,
		NextSibling:     next,
		AttributeName:   attrName,
	}
	var withOld *MutationRecord
	for _, in := range interestedObservers {
		record := base
		if in.wantsOld {
			if withOld == nil {
				r := *base
				r.OldValue = oldValue
				r.HasOldValue = true
				withOld = &r
			}
			record = withOld
		}
		in.observer.queue = append(in.observer.queue, record)
	}
}

func filterContains(filter []webidl.DOMString, name webidl.DOMString) bool {
	for _, f := range filter {
		if f == name {
			return true
		}
	}
	return false
}

func queueTreeMutationRecord(target *Node, added, removed NodeList, prev, next *Node) {
	queueMutationRecord(target, "childList", "", "", false, added, removed, prev, next)
}

func queueAttributeMutationRecord(target *Node, name, oldValue webidl.DOMString, hasOldValue bool) {
	queueMutationRecord(target, "attributes", name, oldValue, hasOldValue, nil, nil, nil, nil)
}

func queueCharacterDataMutationRecord(target *Node, oldData webidl.DOMString) {
	queueMutationRecord(target, "characterData", "", oldData, true, nil, nil, nil, nil)
}
