package cart

import "github.com/google/uuid"

// Line is one cart entry with the store its food belongs to.
type Line struct {
	ID           uuid.UUID
	FoodID       uuid.UUID
	SizeOptionID *uuid.UUID
	Quantity     int32
	Note         string
	StoreID      uuid.UUID
}

// Grouping partitions cart lines by store. StoreIDs keeps the order in which
// each store first appears in the cart.
type Grouping struct {
	StoreIDs []uuid.UUID
	Lines    map[uuid.UUID][]Line
}

// GroupByStore splits lines per store without reordering lines inside a store.
func GroupByStore(lines []Line) Grouping {
	g := Grouping{Lines: make(map[uuid.UUID][]Line)}
	for _, line := range lines {
		if _, seen := g.Lines[line.StoreID]; !seen {
			g.StoreIDs = append(g.StoreIDs, line.StoreID)
		}
		g.Lines[line.StoreID] = append(g.Lines[line.StoreID], line)
	}
	return g
}

// LineIDs returns the ids of every grouped line in grouping order.
func (g Grouping) LineIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, storeID := range g.StoreIDs {
		for _, line := range g.Lines[storeID] {
			ids = append(ids, line.ID)
		}
	}
	return ids
}

// Len reports the number of stores in the grouping.
func (g Grouping) Len() int { return len(g.StoreIDs) }
