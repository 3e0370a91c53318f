package aggregates

import (
	"fmt"
	"strings"
	"time"

	"uiflow/domain/config"
	"uiflow/domain/core/entities"
	"uiflow/domain/core/valueobjects"
	"uiflow/domain/events"
	pkgerrors "uiflow/pkg/errors"
)

// neverModified is the last-modified stamp of a graph that was never flushed
const neverModified = "-"

// FlowGraph is the aggregate root of one edited flow asset. It owns the
// nodes, the tag registry, the root and default designations, the
// selection and the dirty flag.
//
// All lookups are linear scans over insertion-ordered slices. FlowGraph
// is owned by a single editing session and is not safe for concurrent use.
type FlowGraph struct {
	name   string
	config *config.DomainConfig
	now    func() time.Time

	nodes        []*entities.Node
	tags         *TagRegistry
	rootNode     valueobjects.NodeID
	defaultNodes []valueobjects.NodeID
	selection    selectionIndex

	dirty        bool
	lastModified string

	namespace      string
	forceRecompile bool
	scrollPosition valueobjects.Vector2
	layoutWindows  bool
	layoutScale    float64

	events []events.DomainEvent
}

// Option customizes a FlowGraph
type Option func(*FlowGraph)

// WithClock replaces the wall clock used for flush stamps and events
func WithClock(now func() time.Time) Option {
	return func(g *FlowGraph) {
		if now != nil {
			g.now = now
		}
	}
}

// NewFlowGraph creates an empty graph for the named asset
func NewFlowGraph(name string, opts ...Option) (*FlowGraph, error) {
	return NewFlowGraphWithConfig(name, config.DefaultDomainConfig(), opts...)
}

// NewFlowGraphWithConfig creates an empty graph with explicit domain rules
func NewFlowGraphWithConfig(name string, cfg *config.DomainConfig, opts ...Option) (*FlowGraph, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.NewValidationError("graph name required")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	g := &FlowGraph{
		name:           name,
		config:         cfg,
		now:            time.Now,
		nodes:          []*entities.Node{},
		tags:           newTagRegistry(),
		defaultNodes:   []valueobjects.NodeID{},
		lastModified:   neverModified,
		scrollPosition: valueobjects.Vector2{X: -1, Y: -1},
		events:         []events.DomainEvent{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.applyDefaultNamespace()

	return g, nil
}

// Name returns the asset name of the graph
func (g *FlowGraph) Name() string {
	return g.name
}

// Config returns the domain rules the graph enforces
func (g *FlowGraph) Config() *config.DomainConfig {
	return g.config
}

// Node returns the node with the given id
func (g *FlowGraph) Node(id valueobjects.NodeID) (*entities.Node, bool) {
	if i := g.indexOf(id); i >= 0 {
		return g.nodes[i], true
	}
	return nil, false
}

// Nodes returns every node in insertion order
func (g *FlowGraph) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// NodeCount returns the number of nodes
func (g *FlowGraph) NodeCount() int {
	return len(g.nodes)
}

// AllowsSelfLinks implements entities.Owner
func (g *FlowGraph) AllowsSelfLinks() bool {
	return g.config.AllowSelfLinks
}

// AllocateID returns max+1 over the live node ids, or 1 for an empty graph.
// The value is recomputed on every call, so freeing the highest id makes it
// available again while lower gaps stay unused.
func (g *FlowGraph) AllocateID() valueobjects.NodeID {
	ids := make([]valueobjects.NodeID, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID()
	}
	return valueobjects.NextID(ids)
}

// CreateWindow appends a new window node
func (g *FlowGraph) CreateWindow() (*entities.Node, error) {
	return g.CreateNode(entities.KindWindow)
}

// CreateContainer appends a new container node
func (g *FlowGraph) CreateContainer() (*entities.Node, error) {
	return g.CreateNode(entities.KindContainer)
}

// CreateDefaultLink appends a new default-link marker
func (g *FlowGraph) CreateDefaultLink() (*entities.Node, error) {
	return g.CreateNode(entities.KindDefaultLink)
}

// CreateNode appends a node of the given kind under a freshly allocated id
func (g *FlowGraph) CreateNode(kind entities.NodeKind) (*entities.Node, error) {
	if limit := g.config.MaxNodesPerGraph; limit > 0 && len(g.nodes) >= limit {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("maximum nodes reached: %d", limit))
	}

	node, err := entities.NewNode(g.AllocateID(), kind, g)
	if err != nil {
		return nil, err
	}

	g.nodes = append(g.nodes, node)
	g.MarkDirty()
	g.addEvent(events.NewNodeCreated(g.name, node.ID(), string(kind), g.now()))

	return node, nil
}

// DestroyNode removes a node, drops it from the selection and the default
// ids, and removes every remaining link that points at it. Unknown ids are
// a no-op that still marks the graph dirty.
func (g *FlowGraph) DestroyNode(id valueobjects.NodeID) {
	existed := false
	if i := g.indexOf(id); i >= 0 {
		g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
		existed = true
	}

	g.selection.remove(id)
	g.defaultNodes = removeID(g.defaultNodes, id)

	for _, n := range g.nodes {
		n.Detach(id, true, "")
	}

	g.MarkDirty()
	g.addEvent(events.NewNodeDestroyed(g.name, id, existed, g.now()))
}

// Attach links source to target. A two-way attach is mirrored by the
// source node. An unknown source is a no-op that still marks the graph dirty.
func (g *FlowGraph) Attach(source, target valueobjects.NodeID, oneWay bool, component valueobjects.ComponentRef) error {
	if node, ok := g.Node(source); ok {
		if err := node.Attach(target, oneWay, component); err != nil {
			return err
		}
		g.addEvent(events.NewNodesAttached(g.name, source, target, oneWay, component, g.now()))
	}

	g.MarkDirty()
	return nil
}

// Detach removes links from source to target, mirrored for a two-way
// detach. It reports whether any link was removed. Missing ids are a no-op
// that still marks the graph dirty.
func (g *FlowGraph) Detach(source, target valueobjects.NodeID, oneWay bool, component valueobjects.ComponentRef) bool {
	removed := false
	if node, ok := g.Node(source); ok {
		removed = node.Detach(target, oneWay, component)
		if removed {
			g.addEvent(events.NewNodesDetached(g.name, source, target, oneWay, component, g.now()))
		}
	}

	g.MarkDirty()
	return removed
}

// AlreadyAttached reports whether source links to target, scoped to
// component when one is given
func (g *FlowGraph) AlreadyAttached(source, target valueobjects.NodeID, component valueobjects.ComponentRef) bool {
	for _, n := range g.nodes {
		if n.ID() == source && n.AlreadyAttached(target, component) {
			return true
		}
	}
	return false
}

// SetRootNode overwrites the root designation without checking the id
func (g *FlowGraph) SetRootNode(id valueobjects.NodeID) {
	g.rootNode = id
	g.MarkDirty()
	g.addEvent(events.NewRootNodeChanged(g.name, id, g.now()))
}

// RootNode returns the designated root id, zero when unset
func (g *FlowGraph) RootNode() valueobjects.NodeID {
	return g.rootNode
}

// DefaultNodes returns the default entry ids in order
func (g *FlowGraph) DefaultNodes() []valueobjects.NodeID {
	ids := make([]valueobjects.NodeID, len(g.defaultNodes))
	copy(ids, g.defaultNodes)
	return ids
}

// SetDefaultNodes replaces the default entry ids. The ids are not checked
// against the live nodes; repeated ids keep their first position.
func (g *FlowGraph) SetDefaultNodes(ids []valueobjects.NodeID) {
	g.defaultNodes = uniqueIDs(ids)
	g.MarkDirty()
}

// IsDefaultNode reports whether id is a default entry
func (g *FlowGraph) IsDefaultNode(id valueobjects.NodeID) bool {
	return containsID(g.defaultNodes, id)
}

// MarkDirty flags the graph as having unsaved changes
func (g *FlowGraph) MarkDirty() {
	g.dirty = true
}

// IsDirty reports whether unsaved changes are pending
func (g *FlowGraph) IsDirty() bool {
	return g.dirty
}

// LastModified returns the stamp of the last flush that cleared changes
func (g *FlowGraph) LastModified() string {
	return g.lastModified
}

// Flush clears pending changes and stamps the last-modified time. A clean
// graph is left untouched. It reports whether anything was flushed.
func (g *FlowGraph) Flush() bool {
	if !g.dirty {
		return false
	}

	now := g.now()
	g.lastModified = now.Format(g.config.LastModifiedLayout)
	g.dirty = false
	g.addEvent(events.NewGraphFlushed(g.name, g.lastModified, now))

	return true
}

// FlushCheckpoint is the flush-related state captured before a Flush
type FlushCheckpoint struct {
	lastModified string
	dirty        bool
	events       int
}

// Checkpoint captures the state a Flush changes
func (g *FlowGraph) Checkpoint() FlushCheckpoint {
	return FlushCheckpoint{
		lastModified: g.lastModified,
		dirty:        g.dirty,
		events:       len(g.events),
	}
}

// RevertFlush undoes a Flush taken after cp: the stamp and dirty flag
// return to cp and events recorded since cp are dropped.
func (g *FlowGraph) RevertFlush(cp FlushCheckpoint) {
	g.lastModified = cp.lastModified
	g.dirty = cp.dirty
	if cp.events <= len(g.events) {
		g.events = g.events[:cp.events]
	}
}

// Namespace returns the code namespace generated screens belong to
func (g *FlowGraph) Namespace() string {
	return g.namespace
}

// SetNamespace changes the namespace
func (g *FlowGraph) SetNamespace(namespace string) {
	g.namespace = strings.TrimSpace(namespace)
	g.MarkDirty()
}

// ForceRecompile reports whether generated code must be rebuilt
func (g *FlowGraph) ForceRecompile() bool {
	return g.forceRecompile
}

// SetForceRecompile toggles forced recompilation
func (g *FlowGraph) SetForceRecompile(force bool) {
	g.forceRecompile = force
	g.MarkDirty()
}

// ScrollPosition returns the editor canvas scroll offset
func (g *FlowGraph) ScrollPosition() valueobjects.Vector2 {
	return g.scrollPosition
}

// SetScrollPosition stores the canvas scroll offset. It is view state and
// does not mark the graph dirty.
func (g *FlowGraph) SetScrollPosition(pos valueobjects.Vector2) {
	g.scrollPosition = pos
}

// WindowsWithLayout reports whether windows are drawn with their layout
// preview and the preview scale factor
func (g *FlowGraph) WindowsWithLayout() (bool, float64) {
	return g.layoutWindows, g.layoutScale
}

// SetWindowsWithLayout changes the layout preview settings
func (g *FlowGraph) SetWindowsWithLayout(enabled bool, scale float64) {
	g.layoutWindows = enabled
	g.layoutScale = scale
	g.MarkDirty()
}

// GetUncommittedEvents returns the events recorded since the last commit
func (g *FlowGraph) GetUncommittedEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(g.events))
	copy(out, g.events)
	return out
}

// MarkEventsAsCommitted clears the recorded events
func (g *FlowGraph) MarkEventsAsCommitted() {
	g.events = []events.DomainEvent{}
}

func (g *FlowGraph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}

func (g *FlowGraph) indexOf(id valueobjects.NodeID) int {
	for i, n := range g.nodes {
		if n.ID() == id {
			return i
		}
	}
	return -1
}

// applyDefaultNamespace derives the namespace from the asset name. It runs
// only when a graph is created or restored.
func (g *FlowGraph) applyDefaultNamespace() {
	if g.namespace == "" {
		g.namespace = g.name + g.config.NamespaceSuffix
	}
}

func containsID(ids []valueobjects.NodeID, id valueobjects.NodeID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []valueobjects.NodeID, id valueobjects.NodeID) []valueobjects.NodeID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func uniqueIDs(ids []valueobjects.NodeID) []valueobjects.NodeID {
	out := make([]valueobjects.NodeID, 0, len(ids))
	for _, id := range ids {
		if !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}
