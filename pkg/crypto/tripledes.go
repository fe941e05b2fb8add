package crypto

import (
	"crypto/cipher"
	"crypto/des"
)

// SessionKeySize is the length in bytes of the Triple-DES-EDE3 session
// key used to protect lobby traffic and auth tickets.
const SessionKeySize = 24

// des.BlockSize and Triple-DES share the same 8-byte block size.
const tripleDESBlockSize = des.BlockSize

// EncryptSessionCBC encrypts buf under key (24 bytes, Triple-DES-EDE3)
// and iv (8 bytes) in CBC mode. buf is zero-padded up to the next block
// boundary and the ciphertext is returned in a newly allocated slice;
// buf itself is left unchanged. The caller is responsible for recording
// the unpadded length if it must be recovered later.
func EncryptSessionCBC(key, iv, buf []byte) ([]byte, error) {
	block, err := newTripleDESCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != tripleDESBlockSize {
		return nil, ErrIVLength
	}
	padded := zeroPad(buf, tripleDESBlockSize)
	out := make([]byte, len(padded))
	cbc := cipher.NewCBCEncrypter(block, iv)
	cbc.CryptBlocks(out, padded)
	return out, nil
}

// DecryptSessionCBC decrypts buf (already block-aligned) under key and
// iv, returning the plaintext in a newly allocated slice. The caller trims any trailing zero padding itself, since
// the padding is not self-describing.
func DecryptSessionCBC(key, iv, buf []byte) ([]byte, error) {
	block, err := newTripleDESCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != tripleDESBlockSize {
		return nil, ErrIVLength
	}
	if len(buf)%tripleDESBlockSize != 0 {
		return nil, ErrBufferLength
	}
	out := make([]byte, len(buf))
	cbc := cipher.NewCBCDecrypter(block, iv)
	cbc.CryptBlocks(out, buf)
	return out, nil
}

func newTripleDESCipher(key []byte) (cipher.Block, error) {
	if len(key) != SessionKeySize {
		return nil, ErrKeyLength
	}
	return des.NewTripleDESCipher(key)
}

// zeroPad returns buf extended with zero bytes to the next multiple of
// blockSize. If buf is already aligned, it is returned unchanged.
func zeroPad(buf []byte, blockSize int) []byte {
	rem := len(buf) % blockSize
	if rem == 0 {
		return buf
	}
	padded := make([]byte, len(buf)+(blockSize-rem))
	copy(padded, buf)
	return padded
}
