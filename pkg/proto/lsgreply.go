package proto

import "github.com/outpost-net/lobbycore/pkg/wire"

// EncodeLsgServiceTaskReply serializes the bandwidth service's
// rejection envelope: a raw message-type byte, a raw little-endian
// transaction id, then a task-specific body the caller has already
// serialized.
func EncodeLsgServiceTaskReply(txID uint64, body []byte) ([]byte, error) {
	w := wire.NewWriter(wire.ByteMode, false)
	if err := w.WriteU8(uint8(LsgServiceTaskReply)); err != nil {
		return nil, err
	}
	if err := w.WriteU64(txID); err != nil {
		return nil, err
	}
	if err := w.WriteRawBytes(body); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeConnectionIDResponse serializes the Lobby auth reply: a raw
// message-type byte (LsgServiceConnectionId) followed by the new
// session id.
func EncodeConnectionIDResponse(sessionID uint64) ([]byte, error) {
	w := wire.NewWriter(wire.ByteMode, false)
	if err := w.WriteU8(uint8(LsgServiceConnectionId)); err != nil {
		return nil, err
	}
	if err := w.WriteU64(sessionID); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
