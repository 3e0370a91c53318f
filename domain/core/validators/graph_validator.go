package validators

import (
	"fmt"

	"uiflow/domain/config"
	"uiflow/domain/core/aggregates"
	"uiflow/domain/core/entities"
	"uiflow/pkg/errors"
)

// GraphValidator checks cross-node consistency of a flow graph. The graph
// API tolerates stale references (default ids, root id) so these checks
// are diagnostics run before saving or after loading, not hard rules.
type GraphValidator struct {
	config *config.DomainConfig
}

// NewGraphValidator creates a validator for the given domain rules
func NewGraphValidator(cfg *config.DomainConfig) *GraphValidator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &GraphValidator{config: cfg}
}

// Validate returns a validation error listing every problem found, or nil
func (v *GraphValidator) Validate(g *aggregates.FlowGraph) error {
	return v.Issues(g).ErrorOrNil()
}

// Issues collects every consistency problem of the graph
func (v *GraphValidator) Issues(g *aggregates.FlowGraph) *errors.ValidationErrors {
	issues := errors.NewValidationErrors()
	if g == nil {
		issues.Add("graph", "graph cannot be nil")
		return issues
	}

	for _, n := range g.Nodes() {
		v.validateLinks(g, n, issues)
		v.validateTags(g, n, issues)
	}

	if root := g.RootNode(); !root.IsZero() {
		if _, ok := g.Node(root); !ok {
			issues.Add("root_node", fmt.Sprintf("root node %d does not exist", root))
		}
	}

	for _, id := range g.DefaultNodes() {
		if _, ok := g.Node(id); !ok {
			issues.Add("default_nodes", fmt.Sprintf("default node %d does not exist", id))
		}
	}

	for _, id := range g.Selected() {
		if n, ok := g.Node(id); ok && n.IsContainer() {
			issues.Add("selection", fmt.Sprintf("container %d is selected", id))
		}
	}

	if limit := v.config.MaxNodesPerGraph; limit > 0 && g.NodeCount() > limit {
		issues.Add("nodes", fmt.Sprintf("graph has %d nodes, maximum is %d", g.NodeCount(), limit))
	}

	return issues
}

func (v *GraphValidator) validateLinks(g *aggregates.FlowGraph, n *entities.Node, issues *errors.ValidationErrors) {
	for _, l := range n.Links() {
		if l.Target == n.ID() {
			if !v.config.AllowSelfLinks {
				issues.Add("links", fmt.Sprintf("node %d links to itself", n.ID()))
			}
			continue
		}

		peer, ok := g.Node(l.Target)
		if !ok {
			issues.Add("links", fmt.Sprintf("node %d links to missing node %d", n.ID(), l.Target))
			continue
		}
		if !l.OneWay && !peer.AlreadyAttached(n.ID(), l.Component) {
			issues.Add("links", fmt.Sprintf("two-way link %d -> %d has no reverse link", n.ID(), l.Target))
		}
	}
}

func (v *GraphValidator) validateTags(g *aggregates.FlowGraph, n *entities.Node, issues *errors.ValidationErrors) {
	ids := n.TagIDs()
	for _, id := range ids {
		if _, ok := g.Tag(id); !ok {
			issues.Add("tags", fmt.Sprintf("node %d references unknown tag %d", n.ID(), id))
		}
	}
	if limit := v.config.MaxTagsPerNode; limit > 0 && len(ids) > limit {
		issues.Add("tags", fmt.Sprintf("node %d has %d tags, maximum is %d", n.ID(), len(ids), limit))
	}
}
