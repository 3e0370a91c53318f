package commands

import (
	"uiflow/pkg/errors"
	"uiflow/pkg/utils"
)

// validate runs the struct tags and reports failures as a validation error
func validate(cmd interface{}) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}

// CreateNodeCommand appends a node to the open graph
type CreateNodeCommand struct {
	Kind      string  `json:"kind" validate:"required,oneof=window container default_link"`
	Title     string  `json:"title" validate:"max=200"`
	ScreenRef string  `json:"screen" validate:"max=500"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width" validate:"gte=0"`
	Height    float64 `json:"height" validate:"gte=0"`
}

// Validate checks the command
func (c CreateNodeCommand) Validate() error { return validate(c) }

// DestroyNodeCommand removes a node and every link pointing at it
type DestroyNodeCommand struct {
	NodeID int `json:"node_id" validate:"required,gt=0"`
}

// Validate checks the command
func (c DestroyNodeCommand) Validate() error { return validate(c) }

// AttachNodesCommand links a source node to a target node
type AttachNodesCommand struct {
	SourceID  int    `json:"source_id" validate:"required,gt=0"`
	TargetID  int    `json:"target_id" validate:"required,gt=0"`
	OneWay    bool   `json:"one_way"`
	Component string `json:"component,omitempty" validate:"max=200"`
}

// Validate checks the command
func (c AttachNodesCommand) Validate() error { return validate(c) }

// DetachNodesCommand removes links from a source node to a target node.
// An empty component removes every link to the target.
type DetachNodesCommand struct {
	SourceID  int    `json:"source_id" validate:"required,gt=0"`
	TargetID  int    `json:"target_id" validate:"required,gt=0"`
	OneWay    bool   `json:"one_way"`
	Component string `json:"component,omitempty" validate:"max=200"`
}

// Validate checks the command
func (c DetachNodesCommand) Validate() error { return validate(c) }

// TagNodeCommand tags a node, reusing a registered tag with the same title
type TagNodeCommand struct {
	NodeID int    `json:"node_id" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required,max=256"`
	Color  *int   `json:"color,omitempty" validate:"omitempty,gte=0"`
}

// Validate checks the command
func (c TagNodeCommand) Validate() error { return validate(c) }

// UntagNodeCommand drops a tag reference from a node
type UntagNodeCommand struct {
	NodeID int `json:"node_id" validate:"required,gt=0"`
	TagID  int `json:"tag_id" validate:"required,gt=0"`
}

// Validate checks the command
func (c UntagNodeCommand) Validate() error { return validate(c) }

// SetRootNodeCommand designates the root node. Zero clears it.
type SetRootNodeCommand struct {
	NodeID int `json:"node_id" validate:"gte=0"`
}

// Validate checks the command
func (c SetRootNodeCommand) Validate() error { return validate(c) }

// SetDefaultNodesCommand replaces the default entry nodes
type SetDefaultNodesCommand struct {
	NodeIDs []int `json:"node_ids" validate:"dive,gt=0"`
}

// Validate checks the command
func (c SetDefaultNodesCommand) Validate() error { return validate(c) }

// SelectNodesCommand replaces the selection by id
type SelectNodesCommand struct {
	NodeIDs []int `json:"node_ids" validate:"dive,gt=0"`
}

// Validate checks the command
func (c SelectNodesCommand) Validate() error { return validate(c) }

// SelectInRectCommand replaces the selection with the nodes under a
// drag rectangle. Negative extents describe a drag up or left.
type SelectInRectCommand struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	EnabledOnly bool    `json:"enabled_only"`
}

// Validate checks the command
func (c SelectInRectCommand) Validate() error { return validate(c) }

// FlushGraphCommand clears the dirty flag and stamps the graph
type FlushGraphCommand struct{}

// Validate checks the command
func (c FlushGraphCommand) Validate() error { return nil }

// SaveGraphCommand flushes the graph and writes it to storage
type SaveGraphCommand struct{}

// Validate checks the command
func (c SaveGraphCommand) Validate() error { return nil }
