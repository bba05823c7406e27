package proto

// Messages for ManagerService. The manager itself is an external
// collaborator (spec.md §1); only the client side is implemented here.

type WorkerProperties struct {
	ListeningAddress string
}

type WorkerIdMsg struct {
	WorkerId uint32
}

type WorkerMetadata struct {
	WorkerId uint32
}

type GraphNode struct {
	NodeId uint64
}

type GraphEdge struct {
	NodeFromId     uint64
	NodeToId       uint64
	Weight         uint64
	NodeToWorkerId *uint32 // nil => domestic edge
}

// isGraphElement is the oneof discriminator for GraphPiece, matching the
// protoc-gen-go idiom for a oneof field.
type isGraphElement interface{ isGraphElement() }

type GraphPiece_Node struct{ Node *GraphNode }
type GraphPiece_Edge struct{ Edge *GraphEdge }

func (*GraphPiece_Node) isGraphElement() {}
func (*GraphPiece_Edge) isGraphElement() {}

type GraphPiece struct {
	GraphElement isGraphElement
}

func (p *GraphPiece) GetNode() *GraphNode {
	if n, ok := p.GraphElement.(*GraphPiece_Node); ok {
		return n.Node
	}
	return nil
}

func (p *GraphPiece) GetEdge() *GraphEdge {
	if e, ok := p.GraphElement.(*GraphPiece_Edge); ok {
		return e.Edge
	}
	return nil
}

type WorkersListRequest struct{}

type WorkerEntry struct {
	WorkerId uint32
	Address  string
}

type WorkersList struct {
	Workers []WorkerEntry
}
