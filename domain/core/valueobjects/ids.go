package valueobjects

import "strconv"

// NodeID identifies a node within one graph. Ids are small positive
// integers allocated as max+1 over the live nodes; zero means unset.
type NodeID int

// String returns the decimal representation of the id
func (id NodeID) String() string {
	return strconv.Itoa(int(id))
}

// IsZero reports whether the id is unset
func (id NodeID) IsZero() bool {
	return id == 0
}

// TagID identifies a tag within one graph's registry
type TagID int

// String returns the decimal representation of the id
func (id TagID) String() string {
	return strconv.Itoa(int(id))
}

// IsZero reports whether the id is unset
func (id TagID) IsZero() bool {
	return id == 0
}

// ComponentRef names the layout component a link originates from.
// The empty ref means the link is not bound to a component.
type ComponentRef string

// IsZero reports whether no component is referenced
func (c ComponentRef) IsZero() bool {
	return c == ""
}

// NextID returns max+1 over ids, or 1 when ids is empty
func NextID[T ~int](ids []T) T {
	var maxID T
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
