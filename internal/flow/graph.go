package flow

import (
	"math"
	"sort"

	"github.com/eleven-am/insight-backend/internal/recording"
)

// ExitPage marks the end of a session in a node's transitions.
const ExitPage = "exit"

type Transition struct {
	Target  string `json:"target"`
	Percent int    `json:"percent"`
}

type Node struct {
	Page  string       `json:"page"`
	Users int          `json:"users"`
	Next  []Transition `json:"next"`
}

type pageStats struct {
	users       int
	total       int
	transitions map[string]int
}

// BuildGraph aggregates page transitions over all sessions.
func BuildGraph(sessions []*recording.Session) []Node {
	stats := make(map[string]*pageStats)
	get := func(page string) *pageStats {
		ps, ok := stats[page]
		if !ok {
			ps = &pageStats{transitions: make(map[string]int)}
			stats[page] = ps
		}
		return ps
	}

	for _, s := range sessions {
		seq := ExtractSequence(s)
		if len(seq) == 0 {
			continue
		}

		seen := make(map[string]bool, len(seq))
		for i, page := range seq {
			ps := get(page)
			if !seen[page] {
				seen[page] = true
				ps.users++
			}

			next := ExitPage
			if i+1 < len(seq) {
				next = seq[i+1]
			}
			ps.transitions[next]++
			ps.total++
		}
	}

	nodes := make([]Node, 0, len(stats))
	for page, ps := range stats {
		if ps.total == 0 {
			continue
		}

		next := make([]Transition, 0, len(ps.transitions))
		for target, count := range ps.transitions {
			next = append(next, Transition{
				Target:  target,
				Percent: int(math.Round(float64(count) / float64(ps.total) * 100)),
			})
		}
		sort.Slice(next, func(i, j int) bool {
			if next[i].Percent != next[j].Percent {
				return next[i].Percent > next[j].Percent
			}
			return next[i].Target < next[j].Target
		})

		nodes = append(nodes, Node{Page: page, Users: ps.users, Next: next})
	}

	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Users != nodes[j].Users {
			return nodes[i].Users > nodes[j].Users
		}
		return nodes[i].Page < nodes[j].Page
	})
	return nodes
}
