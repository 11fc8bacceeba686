// Package envelope frames an archive payload for transport: a magic
// preamble, a total-length field, and a trailing CRC32, so a reader on
// a stream or a message bus can tell where one archive payload ends
// and the next begins without knowing the decoded type in advance.
//
// The core archive wire format has no magic bytes or self-framing by
// design (an archive's caller is assumed to already know how many
// bytes to read); this package is the explicit, optional envelope for
// callers that don't. The preamble+length+CRC32 frame shape is
// simplified to one frame kind, since an enveloped archive payload has
// no TLV sub-structure of its own.
package envelope

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	pkgerrors "github.com/pkg/errors"
)

// magic identifies an envelope frame at the start of a stream so a
// reader can resynchronize after corruption instead of silently
// misparsing an unrelated payload.
var magic = [2]byte{'A', 'V'}

const headerLen = len(magic) + 4 // magic + total length
const trailerLen = 4             // crc32

// Wrap frames payload as magic, 4-byte total length, payload, 4-byte
// CRC32 over everything from the length field onward.
func Wrap(payload []byte) []byte {
	total := headerLen + len(payload) + trailerLen
	out := make([]byte, 0, total)
	out = append(out, magic[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	out = append(out, payload...)
	crc := crc32.ChecksumIEEE(out[len(magic):])
	out = binary.LittleEndian.AppendUint32(out, crc)
	return out
}

// Unwrap validates frame's magic, length, and checksum, and returns the
// payload it carries.
func Unwrap(frame []byte) ([]byte, error) {
	if len(frame) < headerLen+trailerLen {
		return nil, pkgerrors.New("envelope: frame too short")
	}
	if !bytes.Equal(frame[:len(magic)], magic[:]) {
		return nil, pkgerrors.New("envelope: bad magic")
	}
	total := binary.LittleEndian.Uint32(frame[len(magic):headerLen])
	if int(total) != len(frame) {
		return nil, pkgerrors.New("envelope: length mismatch")
	}
	body := frame[len(magic) : len(frame)-trailerLen]
	want := binary.LittleEndian.Uint32(frame[len(frame)-trailerLen:])
	if crc32.ChecksumIEEE(body) != want {
		return nil, pkgerrors.New("envelope: crc mismatch")
	}
	return frame[headerLen : len(frame)-trailerLen], nil
}
