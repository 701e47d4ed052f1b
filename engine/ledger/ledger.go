// Package ledger implements debit/credit of countable resources between any
// two holders. The bank and every town embed a Stock and move resources only
// through these functions.
package ledger

import (
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/types"
)

// Holder is anything that keeps counts of resources.
type Holder interface {
	Count(r types.Resource) int
	Accepts(r types.Resource) bool
	Add(r types.Resource, amount int)
}

// Stock is the set of resource counters shared by the bank and the towns.
type Stock struct {
	Money   int `json:"money"`
	People  int `json:"people"`
	Points  int `json:"points"`
	Corn    int `json:"corn"`
	Indigo  int `json:"indigo"`
	Sugar   int `json:"sugar"`
	Tobacco int `json:"tobacco"`
	Coffee  int `json:"coffee"`
}

// counter returns the field backing a resource, nil for unknown resources.
func (s *Stock) counter(r types.Resource) *int {
	switch r {
	case types.Money:
		return &s.Money
	case types.People:
		return &s.People
	case types.Points:
		return &s.Points
	case types.Corn:
		return &s.Corn
	case types.Indigo:
		return &s.Indigo
	case types.Sugar:
		return &s.Sugar
	case types.Tobacco:
		return &s.Tobacco
	case types.Coffee:
		return &s.Coffee
	default:
		return nil
	}
}

// Count returns the amount held. Unknown resources count as 0.
func (s *Stock) Count(r types.Resource) int {
	if c := s.counter(r); c != nil {
		return *c
	}
	return 0
}

// Accepts reports whether the stock has a counter for the resource.
func (s *Stock) Accepts(r types.Resource) bool {
	return s.counter(r) != nil
}

// Add changes a counter by amount. Unknown resources are ignored; callers go
// through Give which checks Accepts first.
func (s *Stock) Add(r types.Resource, amount int) {
	if c := s.counter(r); c != nil {
		*c += amount
	}
}

// Has reports whether h holds at least amount of r.
func Has(h Holder, r types.Resource, amount int) bool {
	return h.Count(r) >= amount
}

// Give moves amount of r from one holder to another. It fails without
// changing anything if the destination cannot hold r or the source is short.
func Give(from, to Holder, amount int, r types.Resource) error {
	if !to.Accepts(r) {
		return rules.Violation("destination can't accept %s", r)
	}
	if amount < 0 {
		return rules.Violation("negative transfer of %s: %d", r, amount)
	}
	if from.Count(r) < amount {
		return rules.Violation("not enough %s: have %d, need %d", r, from.Count(r), amount)
	}
	from.Add(r, -amount)
	to.Add(r, amount)
	return nil
}

// GiveAll moves the whole stock of r.
func GiveAll(from, to Holder, r types.Resource) error {
	return Give(from, to, from.Count(r), r)
}

// GiveOrMake credits the destination with the full amount while debiting the
// source only down to zero. Victory points are paid this way so a shipment
// is never refused because the visible stock ran out.
func GiveOrMake(from, to Holder, amount int, r types.Resource) error {
	if !to.Accepts(r) {
		return rules.Violation("destination can't accept %s", r)
	}
	if amount < 0 {
		return rules.Violation("negative transfer of %s: %d", r, amount)
	}
	from.Add(r, -min(amount, from.Count(r)))
	to.Add(r, amount)
	return nil
}

// Pop removes amount of r from h and returns it.
func Pop(h Holder, r types.Resource, amount int) (int, error) {
	if amount < 0 {
		return 0, rules.Violation("negative pop of %s: %d", r, amount)
	}
	if !Has(h, r, amount) {
		return 0, rules.Violation("not enough %s: have %d, need %d", r, h.Count(r), amount)
	}
	h.Add(r, -amount)
	return amount, nil
}
