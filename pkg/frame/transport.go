// Package frame implements the per-connection message transport: a
// length-prefixed frame header, ping/keepalive handling, and an
// optional encryption envelope authenticated with a keyed MAC.
package frame

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/pion/logging"

	oncrypto "github.com/outpost-net/lobbycore/pkg/crypto"
	"github.com/outpost-net/lobbycore/pkg/session"
)

// MaxMessageSize is the largest message length the transport accepts.
const MaxMessageSize = 64 * 1024 * 1024

const (
	headerPing       uint32 = 0
	headerBufferHint uint32 = 200
)

// Transport reads and writes framed messages over a single
// connection's reader/writer pair. It is owned by the one goroutine
// handling that connection and is not safe for concurrent use.
type Transport struct {
	rw  io.ReadWriter
	log logging.LeveledLogger
}

// New returns a Transport over rw. If log is nil, a logger from pion's
// default logger factory is used.
func New(rw io.ReadWriter, log logging.LeveledLogger) *Transport {
	if log == nil {
		log = logging.NewDefaultLoggerFactory().NewLogger("frame")
	}
	return &Transport{rw: rw, log: log}
}

// ReadMessage blocks until a real message payload arrives, answering
// pings and recording buffer-size hints transparently in the
// meantime. The returned payload has had its encryption envelope (if
// any) stripped and its MAC verified; sess must hold the session key
// an encrypted frame was sealed under.
func (t *Transport) ReadMessage(sess *session.Session) ([]byte, error) {
	for {
		header, err := readU32(t.rw)
		if err != nil {
			return nil, err
		}
		switch header {
		case headerPing:
			t.log.Trace("ping")
			if err := writeU32(t.rw, headerPing); err != nil {
				return nil, err
			}
			continue
		case headerBufferHint:
			hint, err := readU32(t.rw)
			if err != nil {
				return nil, err
			}
			t.log.Debugf("buffer hint: %d", hint)
			continue
		default:
			if header > MaxMessageSize {
				return nil, ErrMessageTooLarge
			}
			buf := make([]byte, header)
			if _, err := io.ReadFull(t.rw, buf); err != nil {
				return nil, err
			}
			return t.decodeEnvelope(sess, buf)
		}
	}
}

func (t *Transport) decodeEnvelope(sess *session.Session, buf []byte) ([]byte, error) {
	if len(buf) < 1 {
		return nil, ErrEmptyPayload
	}
	encryptedFlag := buf[0]
	if encryptedFlag == 0 {
		return buf[1:], nil
	}
	if len(buf) < 5 {
		return nil, ErrEmptyPayload
	}
	ivSeed := binary.LittleEndian.Uint32(buf[1:5])
	ciphertext := buf[5:]

	auth := sess.Authentication()
	if auth == nil {
		return nil, ErrNoSessionKey
	}
	iv := oncrypto.DeriveIV(ivSeed)
	decrypted, err := oncrypto.DecryptSessionCBC(auth.SessionKey[:], iv[:], ciphertext)
	if err != nil {
		return nil, err
	}
	if len(decrypted) < 5 {
		return nil, ErrEmptyPayload
	}
	gotMAC := binary.LittleEndian.Uint32(decrypted[0:4])
	payload := decrypted[4:]
	// The sender computes the MAC before zero-padding to the cipher
	// block size, so up to 7 trailing zero bytes (one 3DES block minus
	// one) may be padding; the length that verifies is the original
	// payload.
	for pad := 0; pad < 8 && pad < len(payload); pad++ {
		if pad > 0 && payload[len(payload)-pad] != 0 {
			break
		}
		candidate := payload[:len(payload)-pad]
		if oncrypto.MAC(auth.SessionKey[:], candidate[1:]) == gotMAC {
			return candidate, nil
		}
	}
	return nil, ErrMACMismatch
}

// WriteMessage writes payload as a frame. If encryptIfPossible is set
// and sess has a session key, the frame is sealed with a fresh IV
// seed and authenticated with a MAC over payload minus its leading
// message-type byte; otherwise it is written in clear.
func (t *Transport) WriteMessage(sess *session.Session, payload []byte, encryptIfPossible bool) error {
	auth := sess.Authentication()
	if encryptIfPossible && auth != nil {
		return t.writeEncrypted(auth.SessionKey, payload)
	}
	body := make([]byte, 1+len(payload))
	body[0] = 0
	copy(body[1:], payload)
	return t.writeFramed(body)
}

func (t *Transport) writeEncrypted(sessionKey [24]byte, payload []byte) error {
	if len(payload) < 1 {
		return ErrEmptyPayload
	}
	seed, err := randomSeed()
	if err != nil {
		return err
	}
	iv := oncrypto.DeriveIV(seed)
	mac := oncrypto.MAC(sessionKey[:], payload[1:])

	decrypted := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(decrypted[0:4], mac)
	copy(decrypted[4:], payload)

	ciphertext, err := oncrypto.EncryptSessionCBC(sessionKey[:], iv[:], decrypted)
	if err != nil {
		return err
	}

	body := make([]byte, 1+4+len(ciphertext))
	body[0] = 1
	binary.LittleEndian.PutUint32(body[1:5], seed)
	copy(body[5:], ciphertext)
	return t.writeFramed(body)
}

func (t *Transport) writeFramed(body []byte) error {
	if err := writeU32(t.rw, uint32(len(body))); err != nil {
		return err
	}
	_, err := t.rw.Write(body)
	return err
}

func randomSeed() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}
