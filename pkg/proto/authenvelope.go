package proto

import "github.com/outpost-net/lobbycore/pkg/wire"

// EncodeAuthResponse serializes the auth reply envelope: a raw
// message-type byte, then bit-mode fields starting with the
// type-check bit, the error code, and finally whatever
// handler-specific body writeBody appends. writeBody may be nil for a
// code-only reply.
func EncodeAuthResponse(replyCode AuthMessageType, errCode ErrorCode, writeBody func(w *wire.Writer) error) ([]byte, error) {
	w := wire.NewWriter(wire.ByteMode, false)
	if err := w.WriteU8(uint8(replyCode)); err != nil {
		return nil, err
	}
	w.SetMode(wire.BitMode)
	if err := w.WriteTypeCheckBit(true); err != nil {
		return nil, err
	}
	if err := w.WriteU32(uint32(errCode)); err != nil {
		return nil, err
	}
	if writeBody != nil {
		if err := writeBody(w); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// AuthResponseWithOnlyCode serializes an auth reply carrying errCode
// and no handler-specific body, used when no handler is registered
// for the request's message type.
func AuthResponseWithOnlyCode(replyCode AuthMessageType, errCode ErrorCode) ([]byte, error) {
	return EncodeAuthResponse(replyCode, errCode, nil)
}
