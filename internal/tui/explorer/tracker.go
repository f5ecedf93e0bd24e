package explorer

// tracker tracks the cursor node, as well as which nodes are currently
// visible.
type tracker struct {
	nodes       []node
	cursorID    string
	cursorIndex int
	// index of first visible row
	start int
	// height of tree widget
	height int
}

func (t *tracker) reindex(tree *tree) {
	t.nodes = nil
	found := false
	t.doReindex(tree, &found)

	// If the cursor node has gone then keep the cursor at the same position,
	// as near as possible.
	if !found {
		t.cursorIndex = clamp(t.cursorIndex, 0, len(t.nodes)-1)
		if len(t.nodes) > 0 {
			t.cursorID = t.nodes[t.cursorIndex].ID()
		}
	}
	t.setStart()
}

func (t *tracker) doReindex(tree *tree, found *bool) {
	t.nodes = append(t.nodes, tree.value)
	// Track index of cursor node
	if tree.value.ID() == t.cursorID {
		t.cursorIndex = len(t.nodes) - 1
		*found = true
	}
	if dir, ok := tree.value.(dirNode); ok && dir.closed {
		return
	}
	for _, child := range tree.children {
		t.doReindex(child, found)
	}
}

func (t *tracker) cursorNode() (node, bool) {
	if len(t.nodes) == 0 {
		return nil, false
	}
	return t.nodes[t.cursorIndex], true
}

// moveCursor moves the cursor n nodes down, or up if n is negative.
func (t *tracker) moveCursor(n int) {
	if len(t.nodes) == 0 {
		return
	}
	t.cursorIndex = clamp(t.cursorIndex+n, 0, len(t.nodes)-1)
	t.cursorID = t.nodes[t.cursorIndex].ID()
	t.setStart()
}

func (t *tracker) setHeight(height int) {
	t.height = height
	t.setStart()
}

func (t *tracker) setStart() {
	// Start index must be at least the cursor position minus the max number
	// of visible nodes.
	minimum := max(0, t.cursorIndex-t.height+1)
	// Start index must be at most the lesser of:
	// (a) the cursor position, or
	// (b) the number of nodes minus the maximum number of visible rows (as many
	// rows as possible are rendered)
	maximum := max(0, min(t.cursorIndex, len(t.nodes)-t.height))
	t.start = clamp(t.start, minimum, maximum)
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}
