package proto

// Messages for ExecuterService (spec.md §6): the client-facing RPC.

type QueryData struct {
	NodeIdFrom uint64
	NodeIdTo   uint64
}

// QueryFinished is the Go rendition of the source's
// `optional<u64> shortest_path_len`: Found distinguishes "no path"
// (Found == false) from a genuine zero-length path (Found == true,
// ShortestPathLen == 0).
type QueryFinished struct {
	Found           bool
	ShortestPathLen uint64
}
