package events

import (
	"time"

	"github.com/google/uuid"

	"uiflow/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events.
// Events describe a mutation that already happened to a flow graph.
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(aggregateID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// Event type names
const (
	TypeNodeCreated     = "flow.node_created"
	TypeNodeDestroyed   = "flow.node_destroyed"
	TypeNodesAttached   = "flow.nodes_attached"
	TypeNodesDetached   = "flow.nodes_detached"
	TypeNodeTagged      = "flow.node_tagged"
	TypeNodeUntagged    = "flow.node_untagged"
	TypeRootNodeChanged = "flow.root_changed"
	TypeGraphFlushed    = "flow.flushed"
)

// NodeCreated is raised when the graph creates a node
type NodeCreated struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
	Kind   string              `json:"kind"`
}

// NewNodeCreated creates a NodeCreated event
func NewNodeCreated(graph string, nodeID valueobjects.NodeID, kind string, timestamp time.Time) NodeCreated {
	return NodeCreated{
		BaseEvent: newBase(graph, TypeNodeCreated, timestamp),
		NodeID:    nodeID,
		Kind:      kind,
	}
}

// NodeDestroyed is raised on every destroy request. Existed is false when
// the id did not resolve to a node.
type NodeDestroyed struct {
	BaseEvent
	NodeID  valueobjects.NodeID `json:"node_id"`
	Existed bool                `json:"existed"`
}

// NewNodeDestroyed creates a NodeDestroyed event
func NewNodeDestroyed(graph string, nodeID valueobjects.NodeID, existed bool, timestamp time.Time) NodeDestroyed {
	return NodeDestroyed{
		BaseEvent: newBase(graph, TypeNodeDestroyed, timestamp),
		NodeID:    nodeID,
		Existed:   existed,
	}
}

// LinkChanged carries the endpoints of an attach or detach
type LinkChanged struct {
	BaseEvent
	SourceID  valueobjects.NodeID       `json:"source_id"`
	TargetID  valueobjects.NodeID       `json:"target_id"`
	OneWay    bool                      `json:"one_way"`
	Component valueobjects.ComponentRef `json:"component,omitempty"`
}

// NewNodesAttached creates an attach event
func NewNodesAttached(graph string, source, target valueobjects.NodeID, oneWay bool, component valueobjects.ComponentRef, timestamp time.Time) LinkChanged {
	return LinkChanged{
		BaseEvent: newBase(graph, TypeNodesAttached, timestamp),
		SourceID:  source,
		TargetID:  target,
		OneWay:    oneWay,
		Component: component,
	}
}

// NewNodesDetached creates a detach event
func NewNodesDetached(graph string, source, target valueobjects.NodeID, oneWay bool, component valueobjects.ComponentRef, timestamp time.Time) LinkChanged {
	return LinkChanged{
		BaseEvent: newBase(graph, TypeNodesDetached, timestamp),
		SourceID:  source,
		TargetID:  target,
		OneWay:    oneWay,
		Component: component,
	}
}

// TagChanged is raised when a node gains or loses a tag reference
type TagChanged struct {
	BaseEvent
	NodeID     valueobjects.NodeID `json:"node_id"`
	TagID      valueobjects.TagID  `json:"tag_id"`
	Title      string              `json:"title"`
	Registered bool                `json:"registered"`
}

// NewNodeTagged creates a tag event. Registered is true when the tag was
// new to the registry.
func NewNodeTagged(graph string, nodeID valueobjects.NodeID, tagID valueobjects.TagID, title string, registered bool, timestamp time.Time) TagChanged {
	return TagChanged{
		BaseEvent:  newBase(graph, TypeNodeTagged, timestamp),
		NodeID:     nodeID,
		TagID:      tagID,
		Title:      title,
		Registered: registered,
	}
}

// NewNodeUntagged creates an untag event
func NewNodeUntagged(graph string, nodeID valueobjects.NodeID, tagID valueobjects.TagID, title string, timestamp time.Time) TagChanged {
	return TagChanged{
		BaseEvent: newBase(graph, TypeNodeUntagged, timestamp),
		NodeID:    nodeID,
		TagID:     tagID,
		Title:     title,
	}
}

// RootNodeChanged is raised when the root designation is overwritten
type RootNodeChanged struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
}

// NewRootNodeChanged creates a RootNodeChanged event
func NewRootNodeChanged(graph string, nodeID valueobjects.NodeID, timestamp time.Time) RootNodeChanged {
	return RootNodeChanged{
		BaseEvent: newBase(graph, TypeRootNodeChanged, timestamp),
		NodeID:    nodeID,
	}
}

// GraphFlushed is raised when a flush clears pending changes
type GraphFlushed struct {
	BaseEvent
	LastModified string `json:"last_modified"`
}

// NewGraphFlushed creates a GraphFlushed event
func NewGraphFlushed(graph, lastModified string, timestamp time.Time) GraphFlushed {
	return GraphFlushed{
		BaseEvent:    newBase(graph, TypeGraphFlushed, timestamp),
		LastModified: lastModified,
	}
}
