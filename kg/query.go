// SPDX-License-Identifier: MIT

package kg

// Query is a triple with one missing endpoint. Value is the known endpoint.
type Query struct {
	Value       string
	Relation    string
	HeadMissing bool // otherwise the tail is missing
}

// Fill completes q with entity in the missing position.
func (q Query) Fill(entity string) Triple {
	if q.HeadMissing {
		return Triple{Head: entity, Relation: q.Relation, Tail: q.Value}
	}

	return Triple{Head: q.Value, Relation: q.Relation, Tail: entity}
}

// Answers returns the sorted entities that complete q to a triple of g.
func (q Query) Answers(g *Graph) []string {
	if q.HeadMissing {
		return g.Heads(q.Relation, q.Value)
	}

	return g.Tails(q.Value, q.Relation)
}
