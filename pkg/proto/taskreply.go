package proto

import "github.com/outpost-net/lobbycore/pkg/wire"

// Result is one element of a TaskReply's result list. Service handlers
// implement this for whatever payload their task produces.
type Result interface {
	WriteTo(w *wire.Writer) error
}

// TaskReply is the common reply envelope used by most lobby service
// handlers: a bit-mode, type-checked body following a single raw
// message-type byte.
type TaskReply struct {
	TransactionID    uint64
	ErrorCode        ErrorCode
	OperationID      uint8
	NumResults       uint32
	TotalNumResults  uint32
	Results          []Result
}

// EncodeTaskReply serializes a TaskReply whose total result count
// equals its result count.
func EncodeTaskReply(txID uint64, errCode ErrorCode, opID uint8, results []Result) ([]byte, error) {
	return EncodeTaskReplyCounts(txID, errCode, opID, uint32(len(results)), uint32(len(results)), results)
}

// EncodeTaskReplyCounts serializes a TaskReply with explicit num/total
// result counts, for the rare case they diverge (e.g. a paginated
// result set).
func EncodeTaskReplyCounts(txID uint64, errCode ErrorCode, opID uint8, numResults, totalNumResults uint32, results []Result) ([]byte, error) {
	w := wire.NewWriter(wire.ByteMode, false)
	if err := w.WriteU8(uint8(LobbyServiceTaskReply)); err != nil {
		return nil, err
	}
	w.SetMode(wire.BitMode)
	if err := w.WriteTypeCheckBit(true); err != nil {
		return nil, err
	}
	if err := w.WriteU64(txID); err != nil {
		return nil, err
	}
	if err := w.WriteU32(uint32(errCode)); err != nil {
		return nil, err
	}
	if err := w.WriteU8(opID); err != nil {
		return nil, err
	}
	if err := w.WriteU32(numResults); err != nil {
		return nil, err
	}
	if err := w.WriteU32(totalNumResults); err != nil {
		return nil, err
	}
	for _, res := range results {
		if err := res.WriteTo(w); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// DecodeTaskReply parses a TaskReply envelope's fixed fields, leaving
// any result payload unread (callers that need results decode them
// from the reader they get back).
func DecodeTaskReply(buf []byte) (TaskReply, *wire.Reader, error) {
	r := wire.NewReader(buf, wire.ByteMode, false)
	msgType, err := r.ReadU8()
	if err != nil {
		return TaskReply{}, nil, err
	}
	_ = msgType
	r.SetMode(wire.BitMode)
	if _, err := r.ReadTypeCheckBit(); err != nil {
		return TaskReply{}, nil, err
	}
	txID, err := r.ReadU64()
	if err != nil {
		return TaskReply{}, nil, err
	}
	errCode, err := r.ReadU32()
	if err != nil {
		return TaskReply{}, nil, err
	}
	opID, err := r.ReadU8()
	if err != nil {
		return TaskReply{}, nil, err
	}
	numResults, err := r.ReadU32()
	if err != nil {
		return TaskReply{}, nil, err
	}
	totalNumResults, err := r.ReadU32()
	if err != nil {
		return TaskReply{}, nil, err
	}
	reply := TaskReply{
		TransactionID:   txID,
		ErrorCode:       ErrorCode(errCode),
		OperationID:     opID,
		NumResults:      numResults,
		TotalNumResults: totalNumResults,
	}
	return reply, r, nil
}
