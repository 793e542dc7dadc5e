package schedule

import (
	"sort"

	"github.com/jmorand/planline/internal/domain"
)

// graph is the adjacency view of a task set built once per scheduling run.
// Dependencies referencing tasks outside the set are dropped.
type graph struct {
	tasks    map[string]*domain.Task
	incoming map[string][]domain.Dependency // keyed by successor
	outgoing map[string][]domain.Dependency // keyed by predecessor
	order    []string
}

// buildGraph filters edges, topologically sorts the tasks and detects
// cycles. The order is deterministic: ties break on priority, then name,
// then task ID.
func buildGraph(tasks []*domain.Task, deps []domain.Dependency) (*graph, error) {
	g := &graph{
		tasks:    make(map[string]*domain.Task, len(tasks)),
		incoming: make(map[string][]domain.Dependency),
		outgoing: make(map[string][]domain.Dependency),
	}
	for _, t := range tasks {
		g.tasks[t.ID] = t
	}

	indegree := make(map[string]int, len(tasks))
	for id := range g.tasks {
		indegree[id] = 0
	}
	for _, d := range deps {
		if g.tasks[d.PredecessorID] == nil || g.tasks[d.SuccessorID] == nil {
			continue
		}
		g.incoming[d.SuccessorID] = append(g.incoming[d.SuccessorID], d)
		g.outgoing[d.PredecessorID] = append(g.outgoing[d.PredecessorID], d)
		indegree[d.SuccessorID]++
	}

	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	g.sortReady(ready)

	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		g.order = append(g.order, id)

		var unlocked []string
		for _, d := range g.outgoing[id] {
			indegree[d.SuccessorID]--
			if indegree[d.SuccessorID] == 0 {
				unlocked = append(unlocked, d.SuccessorID)
			}
		}
		g.sortReady(unlocked)
		ready = append(ready, unlocked...)
	}

	if len(g.order) != len(g.tasks) {
		return nil, cycleEdge(g, indegree)
	}
	return g, nil
}

// DetectCycle reports whether the dependency set admits a topological order,
// without computing any dates. Used to reject an edge before it is stored.
func DetectCycle(tasks []*domain.Task, deps []domain.Dependency) error {
	_, err := buildGraph(tasks, deps)
	return err
}

// cycleEdge picks one edge inside the unresolved subgraph so the error can
// name a concrete offender.
func cycleEdge(g *graph, indegree map[string]int) error {
	stuck := make(map[string]bool)
	for id, deg := range indegree {
		if deg > 0 {
			stuck[id] = true
		}
	}
	var edges []domain.Dependency
	for succ := range stuck {
		for _, d := range g.incoming[succ] {
			if stuck[d.PredecessorID] {
				edges = append(edges, d)
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].PredecessorID != edges[j].PredecessorID {
			return edges[i].PredecessorID < edges[j].PredecessorID
		}
		return edges[i].SuccessorID < edges[j].SuccessorID
	})
	if len(edges) == 0 {
		// Unreachable with a well-formed indegree map.
		return &CycleError{}
	}
	return &CycleError{PredecessorID: edges[0].PredecessorID, SuccessorID: edges[0].SuccessorID}
}

func (g *graph) sortReady(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := g.tasks[ids[i]], g.tasks[ids[j]]
		ra, rb := domain.PriorityRank(a.Priority), domain.PriorityRank(b.Priority)
		if ra != rb {
			return ra < rb
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
