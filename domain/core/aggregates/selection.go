package aggregates

import (
	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
)

// selectionIndex holds the transient selection. It never contains
// container ids and follows node order.
type selectionIndex struct {
	ids []valueobjects.NodeID
}

func (s *selectionIndex) reset() {
	s.ids = s.ids[:0]
}

func (s *selectionIndex) remove(id valueobjects.NodeID) {
	s.ids = removeID(s.ids, id)
}

// SelectByIDs replaces the selection with the non-container nodes whose id
// is in ids. The result follows node order, not the order of ids.
func (g *FlowGraph) SelectByIDs(ids ...valueobjects.NodeID) {
	g.selection.reset()
	for _, n := range g.nodes {
		if !n.IsContainer() && containsID(ids, n.ID()) {
			g.selection.ids = append(g.selection.ids, n.ID())
		}
	}
}

// SelectInRect replaces the selection with the non-container nodes whose
// rectangle overlaps rect and that pass the predicate
func (g *FlowGraph) SelectInRect(rect valueobjects.Rect, predicate entities.NodePredicate) {
	g.selection.reset()
	for _, n := range g.nodes {
		if !n.IsContainer() && rect.Overlaps(n.Rect()) && predicate.Accept(n) {
			g.selection.ids = append(g.selection.ids, n.ID())
		}
	}
}

// ResetSelection clears the selection
func (g *FlowGraph) ResetSelection() {
	g.selection.reset()
}

// Selected returns the selected ids
func (g *FlowGraph) Selected() []valueobjects.NodeID {
	ids := make([]valueobjects.NodeID, len(g.selection.ids))
	copy(ids, g.selection.ids)
	return ids
}

// IsSelected reports whether id is selected
func (g *FlowGraph) IsSelected(id valueobjects.NodeID) bool {
	return containsID(g.selection.ids, id)
}
