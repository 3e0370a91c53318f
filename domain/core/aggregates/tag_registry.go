package aggregates

import (
	"fmt"
	"unicode/utf8"

	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
	"uiflow/domain/events"
	pkgerrors "uiflow/pkg/errors"
)

// TagRegistry is the deduplicated set of tags of one graph. Titles are
// unique ignoring case. Tags are never removed, even when unreferenced.
type TagRegistry struct {
	tags []*entities.Tag
}

func newTagRegistry() *TagRegistry {
	return &TagRegistry{tags: []*entities.Tag{}}
}

// NextID returns max+1 over the registered tag ids
func (r *TagRegistry) NextID() valueobjects.TagID {
	ids := make([]valueobjects.TagID, len(r.tags))
	for i, t := range r.tags {
		ids[i] = t.ID()
	}
	return valueobjects.NextID(ids)
}

// Get returns the tag with the given id
func (r *TagRegistry) Get(id valueobjects.TagID) (*entities.Tag, bool) {
	for _, t := range r.tags {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

// FindByTitle returns the tag whose title matches ignoring case
func (r *TagRegistry) FindByTitle(title string) (*entities.Tag, bool) {
	for _, t := range r.tags {
		if t.SameTitle(title) {
			return t, true
		}
	}
	return nil, false
}

// All returns the registered tags in registration order
func (r *TagRegistry) All() []*entities.Tag {
	tags := make([]*entities.Tag, len(r.tags))
	copy(tags, r.tags)
	return tags
}

// Len returns the number of registered tags
func (r *TagRegistry) Len() int {
	return len(r.tags)
}

func (r *TagRegistry) register(tag *entities.Tag) {
	r.tags = append(r.tags, tag)
}

// Tags returns the graph's tag registry contents
func (g *FlowGraph) Tags() []*entities.Tag {
	return g.tags.All()
}

// Tag returns the registered tag with the given id
func (g *FlowGraph) Tag(id valueobjects.TagID) (*entities.Tag, bool) {
	return g.tags.Get(id)
}

// NextTagID returns max+1 over the registered tag ids
func (g *FlowGraph) NextTagID() valueobjects.TagID {
	return g.tags.NextID()
}

// NewTag builds an unregistered tag carrying the next free tag id.
// Pass it to AddTag to register it.
func (g *FlowGraph) NewTag(title string) (*entities.Tag, error) {
	return entities.NewTag(g.NextTagID(), title)
}

// AddTag attaches a tag to a node. When a registered tag already has the
// same title ignoring case, the supplied tag is discarded and the
// registered one is used. The resolved tag is returned.
func (g *FlowGraph) AddTag(node *entities.Node, tag *entities.Tag) (*entities.Tag, error) {
	if tag == nil {
		return nil, pkgerrors.NewValidationError("tag cannot be nil")
	}
	if err := g.checkOwned(node); err != nil {
		return nil, err
	}
	if limit := g.config.MaxTagTitleLength; limit > 0 && utf8.RuneCountInString(tag.Title()) > limit {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("tag title exceeds maximum length of %d characters", limit))
	}

	resolved, found := g.tags.FindByTitle(tag.Title())
	if !found {
		if existing, clash := g.tags.Get(tag.ID()); clash {
			return nil, pkgerrors.NewConflictError(
				fmt.Sprintf("tag id %d already used by %q", tag.ID(), existing.Title()))
		}
		resolved = tag
	}

	if !node.HasTag(resolved.ID()) {
		if limit := g.config.MaxTagsPerNode; limit > 0 && len(node.TagIDs()) >= limit {
			return nil, pkgerrors.NewValidationError(fmt.Sprintf("maximum tags reached: %d", limit))
		}
	}

	if !found {
		g.tags.register(resolved)
	}
	node.AddTagID(resolved.ID())

	g.MarkDirty()
	g.addEvent(events.NewNodeTagged(g.name, node.ID(), resolved.ID(), resolved.Title(), !found, g.now()))

	return resolved, nil
}

// RemoveTag drops the tag reference from the node. The tag stays in the
// registry.
func (g *FlowGraph) RemoveTag(node *entities.Node, tag *entities.Tag) {
	if node != nil && tag != nil && node.RemoveTagID(tag.ID()) {
		g.addEvent(events.NewNodeUntagged(g.name, node.ID(), tag.ID(), tag.Title(), g.now()))
	}
	g.MarkDirty()
}

// TagsOf resolves the node's tag references against the registry.
// References to unknown tags are skipped.
func (g *FlowGraph) TagsOf(node *entities.Node) []*entities.Tag {
	if node == nil {
		return nil
	}
	tags := make([]*entities.Tag, 0, len(node.TagIDs()))
	for _, id := range node.TagIDs() {
		if t, ok := g.tags.Get(id); ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// SetTagEnabled toggles a registered tag. It reports whether the tag exists.
func (g *FlowGraph) SetTagEnabled(id valueobjects.TagID, enabled bool) bool {
	t, ok := g.tags.Get(id)
	if !ok {
		return false
	}
	t.SetEnabled(enabled)
	g.MarkDirty()
	return true
}

// SetTagColor recolors a registered tag. It reports whether the tag exists.
func (g *FlowGraph) SetTagColor(id valueobjects.TagID, color int) bool {
	t, ok := g.tags.Get(id)
	if !ok {
		return false
	}
	t.SetColor(color)
	g.MarkDirty()
	return true
}

func (g *FlowGraph) checkOwned(node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node cannot be nil")
	}
	if owned, ok := g.Node(node.ID()); !ok || owned != node {
		return pkgerrors.NewValidationError("node does not belong to this graph").
			WithDetail("node_id", int(node.ID()))
	}
	return nil
}
