package dom

import (
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/sirupsen/logrus"
)

// logMutation snapshots the tree around a mutation and logs a colorized
// diff at debug level. Returns the deferred half; a no-op (and no
// serialization cost) unless debug logging is on.
func logMutation(n *Node, method string) func() {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return func() {}
	}
	root := n.getRoot()
	before := root.String()
	return func() {
		printDiff(before, root.String(), method)
	}
}

func printDiff(a, b, method string) {
	if a == b {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, true)
	logrus.WithField("method", method).Debugf("[TREE]: %s\n\n", dmp.DiffPrettyText(diffs))
}
