package ast

// Walker performs a pre-order traversal per spec.md §4.H: for lists and
// arguments, into children first (materializing them via the mutable
// accessor) then to the next sibling; for atoms and errors, only onward
// via next. Traversal stops at an
// end-of-program atom or a nil next, guaranteeing termination.
type Walker struct {
	// Action runs on every visited node before recursion continues.
	Action func(n *Node)
}

// Walk traverses starting at root.
func (w *Walker) Walk(root *Node) {
	for n := root; n != nil; n = n.Next() {
		if w.Action != nil {
			w.Action(n)
		}
		switch n.Kind {
		case KindList:
			w.Walk(n.Children())
		case KindArguments:
			w.Walk(n.Children())
		}
		if n.Kind == KindAtomEndOfProgram {
			return
		}
	}
}
