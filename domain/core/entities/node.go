package entities

import (
	"fmt"

	"uiflow/domain/core/valueobjects"
	pkgerrors "uiflow/pkg/errors"
)

// NodeKind distinguishes the three kinds of flow vertices
type NodeKind string

const (
	// KindWindow is a navigable node backed by a concrete screen
	KindWindow NodeKind = "window"
	// KindContainer is a structural node that groups others and is never navigable
	KindContainer NodeKind = "container"
	// KindDefaultLink is a placeholder entry marker
	KindDefaultLink NodeKind = "default_link"
)

// IsValid reports whether k is one of the known kinds
func (k NodeKind) IsValid() bool {
	switch k {
	case KindWindow, KindContainer, KindDefaultLink:
		return true
	default:
		return false
	}
}

// Link is a directed attachment from the owning node to Target
type Link struct {
	Target    valueobjects.NodeID
	OneWay    bool
	Component valueobjects.ComponentRef
}

// matches reports whether the link points at target and, when component
// is set, originates from that component.
func (l Link) matches(target valueobjects.NodeID, component valueobjects.ComponentRef) bool {
	if l.Target != target {
		return false
	}
	return component.IsZero() || l.Component == component
}

// Owner is the graph a node belongs to. Nodes use it to reach their peers
// when mirroring two-way links and to report mutations.
type Owner interface {
	Node(id valueobjects.NodeID) (*Node, bool)
	AllowsSelfLinks() bool
	MarkDirty()
}

// Node is a vertex of the flow graph. Nodes are created only by their
// owning graph and are not safe for concurrent use.
type Node struct {
	id      valueobjects.NodeID
	kind    NodeKind
	owner   Owner
	enabled bool
	title   string
	screen  string
	rect    valueobjects.Rect
	tagIDs  []valueobjects.TagID
	links   []Link
}

// NewNode constructs a node. An invalid kind or id is an invariant
// violation and is reported as a validation error.
func NewNode(id valueobjects.NodeID, kind NodeKind, owner Owner) (*Node, error) {
	if id <= 0 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid node id %d", id))
	}
	if !kind.IsValid() {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid node kind %q", kind))
	}
	if owner == nil {
		return nil, pkgerrors.NewValidationError("node owner cannot be nil")
	}

	return &Node{
		id:      id,
		kind:    kind,
		owner:   owner,
		enabled: true,
		tagIDs:  []valueobjects.TagID{},
		links:   []Link{},
	}, nil
}

// ID returns the node's identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Kind returns the node's kind
func (n *Node) Kind() NodeKind {
	return n.kind
}

// IsWindow reports whether the node is backed by a screen
func (n *Node) IsWindow() bool {
	return n.kind == KindWindow
}

// IsContainer reports whether the node is a structural container
func (n *Node) IsContainer() bool {
	return n.kind == KindContainer
}

// IsDefaultLink reports whether the node is a default-link marker
func (n *Node) IsDefaultLink() bool {
	return n.kind == KindDefaultLink
}

// IsEnabled reports whether the node takes part in active queries
func (n *Node) IsEnabled() bool {
	return n.enabled
}

// SetEnabled enables or disables the node
func (n *Node) SetEnabled(enabled bool) {
	if n.enabled == enabled {
		return
	}
	n.enabled = enabled
	n.owner.MarkDirty()
}

// Title returns the display title
func (n *Node) Title() string {
	return n.title
}

// SetTitle changes the display title
func (n *Node) SetTitle(title string) {
	if n.title == title {
		return
	}
	n.title = title
	n.owner.MarkDirty()
}

// ScreenRef returns the reference the rendering layer resolves to a screen
func (n *Node) ScreenRef() string {
	return n.screen
}

// SetScreenRef binds the node to a screen reference
func (n *Node) SetScreenRef(ref string) {
	if n.screen == ref {
		return
	}
	n.screen = ref
	n.owner.MarkDirty()
}

// Rect returns the node's canvas rectangle
func (n *Node) Rect() valueobjects.Rect {
	return n.rect
}

// MoveTo places the node at a new rectangle
func (n *Node) MoveTo(rect valueobjects.Rect) {
	if rect.Equals(n.rect) {
		return
	}
	n.rect = rect
	n.owner.MarkDirty()
}

// TagIDs returns the ids of the tags attached to the node
func (n *Node) TagIDs() []valueobjects.TagID {
	tags := make([]valueobjects.TagID, len(n.tagIDs))
	copy(tags, n.tagIDs)
	return tags
}

// HasTag reports whether the node references the tag
func (n *Node) HasTag(id valueobjects.TagID) bool {
	for _, t := range n.tagIDs {
		if t == id {
			return true
		}
	}
	return false
}

// AddTagID adds a tag reference. It returns false if the node already had it.
// Registry lookups and dirty tracking are done by the graph.
func (n *Node) AddTagID(id valueobjects.TagID) bool {
	if n.HasTag(id) {
		return false
	}
	n.tagIDs = append(n.tagIDs, id)
	return true
}

// RemoveTagID drops a tag reference. It returns false if the node did not have it.
func (n *Node) RemoveTagID(id valueobjects.TagID) bool {
	for i, t := range n.tagIDs {
		if t == id {
			n.tagIDs = append(n.tagIDs[:i], n.tagIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Links returns the node's outgoing links in attach order
func (n *Node) Links() []Link {
	links := make([]Link, len(n.links))
	copy(links, n.links)
	return links
}

// AlreadyAttached reports whether the node links to target. With a
// component the check is scoped to links from that component.
func (n *Node) AlreadyAttached(target valueobjects.NodeID, component valueobjects.ComponentRef) bool {
	for _, l := range n.links {
		if l.matches(target, component) {
			return true
		}
	}
	return false
}

// Attach links the node to target. A two-way attach also links target
// back to this node through the owner. Attaching an existing link again
// is a no-op, except that a two-way attach upgrades a one-way link.
func (n *Node) Attach(target valueobjects.NodeID, oneWay bool, component valueobjects.ComponentRef) error {
	if target == n.id && !n.owner.AllowsSelfLinks() {
		return pkgerrors.NewValidationError("cannot link node to itself").
			WithDetail("node_id", int(n.id))
	}

	n.addLink(Link{Target: target, OneWay: oneWay, Component: component})

	if !oneWay && target != n.id {
		if peer, ok := n.owner.Node(target); ok {
			peer.addLink(Link{Target: n.id, OneWay: false, Component: component})
		}
	}

	n.owner.MarkDirty()
	return nil
}

// Detach removes the links to target. An empty component removes every
// link to target. A two-way detach also removes the mirror links on target.
// A one-way detach leaves target's links in place but downgrades the ones
// that lost their reverse link to one-way.
// It returns whether anything was removed.
func (n *Node) Detach(target valueobjects.NodeID, oneWay bool, component valueobjects.ComponentRef) bool {
	removed := n.removeLinks(target, component)

	if target != n.id {
		if peer, ok := n.owner.Node(target); ok {
			switch {
			case !oneWay:
				if peer.removeLinks(n.id, component) {
					removed = true
				}
			case removed:
				peer.downgradeLinksTo(n)
			}
		}
	}

	n.owner.MarkDirty()
	return removed
}

// addLink appends link unless one with the same target and component
// exists. An existing one-way link becomes two-way when link is two-way.
func (n *Node) addLink(link Link) {
	for i, l := range n.links {
		if l.Target == link.Target && l.Component == link.Component {
			if l.OneWay && !link.OneWay {
				n.links[i].OneWay = false
			}
			return
		}
	}
	n.links = append(n.links, link)
}

// downgradeLinksTo marks two-way links to peer as one-way once peer no
// longer links back.
func (n *Node) downgradeLinksTo(peer *Node) {
	for i, l := range n.links {
		if l.Target == peer.id && !l.OneWay && !peer.AlreadyAttached(n.id, l.Component) {
			n.links[i].OneWay = true
		}
	}
}

func (n *Node) removeLinks(target valueobjects.NodeID, component valueobjects.ComponentRef) bool {
	kept := n.links[:0]
	removed := false
	for _, l := range n.links {
		if l.matches(target, component) {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	n.links = kept
	return removed
}

// NodeState is the persisted part of a node
type NodeState struct {
	Enabled   bool
	Title     string
	ScreenRef string
	Rect      valueobjects.Rect
	TagIDs    []valueobjects.TagID
	Links     []Link
}

// ReconstructNode rebuilds a node from persisted state. Duplicate tag ids
// and duplicate links (same target and component) are collapsed.
func ReconstructNode(id valueobjects.NodeID, kind NodeKind, owner Owner, state NodeState) (*Node, error) {
	node, err := NewNode(id, kind, owner)
	if err != nil {
		return nil, err
	}

	node.enabled = state.Enabled
	node.title = state.Title
	node.screen = state.ScreenRef
	node.rect = state.Rect
	for _, tagID := range state.TagIDs {
		node.AddTagID(tagID)
	}
	for _, l := range state.Links {
		node.addLink(l)
	}

	return node, nil
}

// State returns the persisted part of the node
func (n *Node) State() NodeState {
	return NodeState{
		Enabled:   n.enabled,
		Title:     n.title,
		ScreenRef: n.screen,
		Rect:      n.rect,
		TagIDs:    n.TagIDs(),
		Links:     n.Links(),
	}
}
