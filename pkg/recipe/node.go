package recipe

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID is a content-addressed node identifier derived from a node path
// such as "sphere/ball".
type NodeID string

// ZeroID is the empty identifier.
const ZeroID NodeID = ""

// NewNodeID hashes path into a NodeID.
func NewNodeID(path string) NodeID {
	sum := sha256.Sum256([]byte(path))
	return NodeID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// Short returns the first 8 hex digits, for messages.
func (id NodeID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

func (id NodeID) String() string {
	return string(id)
}

// NodeKind enumerates the types of nodes in a recipe.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // leaf solid
	NodeTransform                 // moves or turns its child
	NodeOperator                  // boolean combination of children
	NodePaint                     // sets the color of its child
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeTransform:
		return "transform"
	case NodeOperator:
		return "operator"
	case NodePaint:
		return "paint"
	default:
		return "unknown"
	}
}

// Node is one element of a recipe graph.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Name     string
	Children []NodeID
	Data     NodeData
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
