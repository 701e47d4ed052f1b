package actions

import (
	"sort"

	"github.com/nathoo/plantation/engine/catalog"
	"github.com/nathoo/plantation/engine/rules"
	"github.com/nathoo/plantation/engine/town"
	"github.com/nathoo/plantation/types"
)

// mayorHolders lists the people holders of a town in distribution order:
// home, one entry per placed tile, then each placed building.
func mayorHolders(t *town.Town) []string {
	holders := []string{types.Home}
	for _, tile := range t.ListTiles() {
		holders = append(holders, string(tile))
	}
	for _, b := range t.ListBuildings() {
		holders = append(holders, string(b))
	}
	return holders
}

func holderSpace(holder string) int {
	if catalog.IsTile(holder) {
		return 1
	}
	return catalog.Space(types.Building(holder))
}

// mayorPossibilities enumerates the ways to spread the town's people. With
// enough people every slot is filled and the rest stay home. Otherwise the
// full occupancy is reduced one colonist at a time, in every position, until
// it matches the people available. Cap bounds each reduction step.
func mayorPossibilities(t *town.Town, opts Options) []Action {
	holders := mayorHolders(t)
	people, jobs := t.CountTotalPeople(), t.CountTotalJobs()

	full := make([]byte, len(holders))
	for i, h := range holders[1:] {
		full[i+1] = byte(holderSpace(h))
	}
	if people >= jobs {
		dist := toDistribution(holders, full)
		dist[0].Amount = people - jobs
		return []Action{{Type: types.MayorAction, Name: t.Name, Distribution: dist}}
	}

	level := []string{string(full)}
	for total := jobs; total > people; total-- {
		next := make(map[string]struct{})
		for _, key := range level {
			for i := 1; i < len(key); i++ {
				if key[i] == 0 {
					continue
				}
				b := []byte(key)
				b[i]--
				next[string(b)] = struct{}{}
			}
		}
		level = sample(sortedKeys(next), opts)
	}

	out := make([]Action, 0, len(level))
	for _, key := range level {
		out = append(out, Action{
			Type:         types.MayorAction,
			Name:         t.Name,
			Distribution: toDistribution(holders, []byte(key)),
		})
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// sample keeps opts.Cap keys at most, chosen with opts.Rand, or the first
// ones when no source is given. The kept keys stay in order.
func sample(keys []string, opts Options) []string {
	if opts.Cap <= 0 || opts.Cap >= len(keys) {
		return keys
	}
	if opts.Rand == nil {
		return keys[:opts.Cap]
	}
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < opts.Cap; i++ {
		j := i + opts.Rand.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	picked := idx[:opts.Cap]
	sort.Ints(picked)
	out := make([]string, len(picked))
	for i, p := range picked {
		out[i] = keys[p]
	}
	return out
}

func toDistribution(holders []string, amounts []byte) []Assignment {
	dist := make([]Assignment, len(holders))
	for i, h := range holders {
		dist[i] = Assignment{Holder: h, Amount: int(amounts[i])}
	}
	return dist
}

// reactMayor moves the town's people to the given distribution. The
// distribution must name every holder in order and keep the same total.
func reactMayor(t *town.Town, a Action) ([]Action, error) {
	holders := mayorHolders(t)
	dist := a.Distribution
	if len(dist) == 0 || dist[0].Holder != types.Home {
		return nil, rules.Violation("distribution must start with %s", types.Home)
	}
	if len(dist) != len(holders) {
		return nil, rules.Violation("expected %d assignments, got %d", len(holders), len(dist))
	}

	tiles := make(map[types.Tile]int, len(catalog.Tiles))
	buildings := make(map[types.Building]int, len(holders))
	total := 0
	for i, as := range dist {
		if as.Holder != holders[i] {
			return nil, rules.Violation("assignment %d: expected %s, got %s", i, holders[i], as.Holder)
		}
		if as.Amount < 0 || (i > 0 && as.Amount > holderSpace(as.Holder)) {
			return nil, rules.Violation("can't put %d people on %s", as.Amount, as.Holder)
		}
		total += as.Amount
		switch {
		case i == 0:
		case catalog.IsTile(as.Holder):
			tiles[types.Tile(as.Holder)] += as.Amount
		default:
			buildings[types.Building(as.Holder)] += as.Amount
		}
	}
	if total != t.CountTotalPeople() {
		return nil, rules.Violation("wrong total of people: have %d, distributed %d", t.CountTotalPeople(), total)
	}

	t.People = dist[0].Amount
	for tile, data := range t.Tiles {
		data.Worked = tiles[tile]
		t.Tiles[tile] = data
	}
	for b, data := range t.Buildings {
		data.Worked = buildings[b]
		t.Buildings[b] = data
	}
	return nil, nil
}
