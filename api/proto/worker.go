package proto

// Messages for WorkerService (spec.md §6).

type NodeIdRequest struct {
	NodeId uint64
}

type IsPresent struct {
	Present bool
}

type StateUpdateEntry struct {
	NodeId    uint64
	Tentative uint64
}

type StateUpdateBatch struct {
	Updates []StateUpdateEntry
}

// isRequestType is the oneof discriminator for RequestDjikstra.
type isRequestType interface{ isRequestType() }

// RequestDjikstra_RequestId is the mandatory first message of a round.
// It carries NodeIdTo alongside the query id: the worker has no other
// channel to learn the query's destination (spec.md §4.2.1 describes
// only `request_id(u32)`, but §4.2.2's step algorithm requires node_id_to
// to decide Success — see DESIGN.md for this resolved ambiguity).
type RequestDjikstra_RequestId struct {
	RequestId uint32
	NodeIdTo  uint64
}
type RequestDjikstra_StateUpdate struct{ StateUpdate *StateUpdateBatch }

func (*RequestDjikstra_RequestId) isRequestType()   {}
func (*RequestDjikstra_StateUpdate) isRequestType() {}

type RequestDjikstra struct {
	RequestType isRequestType
}

func (r *RequestDjikstra) GetRequestId() (uint32, uint64, bool) {
	if v, ok := r.RequestType.(*RequestDjikstra_RequestId); ok {
		return v.RequestId, v.NodeIdTo, true
	}
	return 0, 0, false
}

func (r *RequestDjikstra) GetStateUpdate() *StateUpdateBatch {
	if v, ok := r.RequestType.(*RequestDjikstra_StateUpdate); ok {
		return v.StateUpdate
	}
	return nil
}

type NewForeignNode struct {
	NodeId          uint64
	WorkerId        uint32
	ShortestPathLen uint64
}

type SmallestDomesticNode struct {
	ShortestPathLen uint64
}

type Success struct {
	NodeId          uint64
	ShortestPathLen uint64
}

// isMessageType is the oneof discriminator for ResponseDjikstra.
type isMessageType interface{ isMessageType() }

type ResponseDjikstra_NewForeignNode struct{ NewForeignNode *NewForeignNode }
type ResponseDjikstra_SmallestDomesticNode struct {
	SmallestDomesticNode *SmallestDomesticNode
}
type ResponseDjikstra_Success struct{ Success *Success }

func (*ResponseDjikstra_NewForeignNode) isMessageType()       {}
func (*ResponseDjikstra_SmallestDomesticNode) isMessageType() {}
func (*ResponseDjikstra_Success) isMessageType()              {}

type ResponseDjikstra struct {
	MessageType isMessageType
}

func NewForeignNodeResponse(nodeID uint64, workerID uint32, spl uint64) *ResponseDjikstra {
	return &ResponseDjikstra{MessageType: &ResponseDjikstra_NewForeignNode{
		NewForeignNode: &NewForeignNode{NodeId: nodeID, WorkerId: workerID, ShortestPathLen: spl},
	}}
}

func SmallestDomesticNodeResponse(spl uint64) *ResponseDjikstra {
	return &ResponseDjikstra{MessageType: &ResponseDjikstra_SmallestDomesticNode{
		SmallestDomesticNode: &SmallestDomesticNode{ShortestPathLen: spl},
	}}
}

func SuccessResponse(nodeID uint64, spl uint64) *ResponseDjikstra {
	return &ResponseDjikstra{MessageType: &ResponseDjikstra_Success{
		Success: &Success{NodeId: nodeID, ShortestPathLen: spl},
	}}
}

func (r *ResponseDjikstra) GetNewForeignNode() *NewForeignNode {
	if v, ok := r.MessageType.(*ResponseDjikstra_NewForeignNode); ok {
		return v.NewForeignNode
	}
	return nil
}

func (r *ResponseDjikstra) GetSmallestDomesticNode() *SmallestDomesticNode {
	if v, ok := r.MessageType.(*ResponseDjikstra_SmallestDomesticNode); ok {
		return v.SmallestDomesticNode
	}
	return nil
}

func (r *ResponseDjikstra) GetSuccess() *Success {
	if v, ok := r.MessageType.(*ResponseDjikstra_Success); ok {
		return v.Success
	}
	return nil
}

type ForgetRequest struct {
	QueryId uint32
}

type ForgetResponse struct{}
