package solver

// FlowEdge is one (edge, amount) entry of a per-commodity flow group.
type FlowEdge struct {
	From   int
	To     int
	Amount float64
}

// Partition groups flow records by their commodity. Every requested
// commodity appears in the result: a commodity without any flow maps to an
// empty group, which is how an infeasible request surfaces. Callers must
// treat such empty groups as a valid "no path found" outcome, not as an
// error, and must not rely on any ordering within a group.
func Partition(records []FlowRecord, requested []Commodity) map[Commodity][]FlowEdge {
	groups := make(map[Commodity][]FlowEdge, len(requested))
	for _, c := range requested {
		groups[c] = []FlowEdge{}
	}
	for _, r := range records {
		groups[r.Commodity] = append(groups[r.Commodity], FlowEdge{
			From:   r.From,
			To:     r.To,
			Amount: r.Amount,
		})
	}
	return groups
}
