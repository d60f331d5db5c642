package dedup

// Cluster is a group of raw names judged to be the same player.
type Cluster struct {
	Representative string   `json:"representative"`
	Members        []string `json:"members"`
}

// Deduper clusters roster names and picks a display name per cluster.
type Deduper struct {
	matcher *Matcher
}

// New builds a Deduper over the given variation table and configuration.
func New(table *VariationTable, cfg Config) *Deduper {
	return &Deduper{matcher: NewMatcher(table, cfg)}
}

// Matcher exposes the pairwise scorer used for clustering.
func (d *Deduper) Matcher() *Matcher {
	return d.matcher
}

// Dedupe returns one representative per cluster, in first-seen cluster order.
func (d *Deduper) Dedupe(names []string) []string {
	clusters := d.Clusters(names)
	out := make([]string, len(clusters))
	for i, c := range clusters {
		out[i] = c.Representative
	}
	return out
}

// Clusters groups names with the configured strategy. Members keep their
// input order; clusters are ordered by their earliest member.
func (d *Deduper) Clusters(names []string) []Cluster {
	if len(names) == 0 {
		return []Cluster{}
	}
	prepared := make([]preparedName, len(names))
	for i, name := range names {
		prepared[i] = d.matcher.prepare(name)
	}

	var groups [][]int
	switch d.matcher.cfg.Strategy {
	case StrategyConnected:
		groups = d.connectedGroups(prepared)
	default:
		groups = d.seedGroups(prepared)
	}

	clusters := make([]Cluster, 0, len(groups))
	for _, idx := range groups {
		members := make([]string, len(idx))
		for k, i := range idx {
			members[k] = names[i]
		}
		clusters = append(clusters, Cluster{
			Representative: BestName(members),
			Members:        members,
		})
	}
	return clusters
}

// seedGroups compares every unprocessed name after the seed against the seed
// only, never against names already pulled into the cluster.
func (d *Deduper) seedGroups(prepared []preparedName) [][]int {
	processed := make([]bool, len(prepared))
	var groups [][]int
	for i := range prepared {
		if processed[i] {
			continue
		}
		processed[i] = true
		group := []int{i}
		for j := i + 1; j < len(prepared); j++ {
			if processed[j] {
				continue
			}
			if d.matcher.score(prepared[i], prepared[j]) > d.matcher.cfg.MatchThreshold {
				processed[j] = true
				group = append(group, j)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func (d *Deduper) connectedGroups(prepared []preparedName) [][]int {
	ds := newDisjointSet(len(prepared))
	for i := range prepared {
		for j := i + 1; j < len(prepared); j++ {
			if ds.find(i) == ds.find(j) {
				continue
			}
			if d.matcher.score(prepared[i], prepared[j]) > d.matcher.cfg.MatchThreshold {
				ds.union(i, j)
			}
		}
	}

	order := make(map[int]int)
	var groups [][]int
	for i := range prepared {
		root := ds.find(i)
		pos, ok := order[root]
		if !ok {
			pos = len(groups)
			order[root] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], i)
	}
	return groups
}
