// Package recordpack is a tagged record format that rides on top of
// the core archive wire format: a Record is an archive.Serializable, so
// it can be nested inside any other archive value, registered as a
// polymorphic type, or framed with the envelope package, exactly like
// any other serializable type.
//
// The layout is a schema id, a field count, then the fields in
// ascending tag order, each as tag, compressed flag and length-prefixed
// payload. There is no offset table: finding one field means scanning
// the fields before it.
package recordpack

import (
	"fmt"
	"sort"

	"github.com/klauspost/compress/zstd"
	pkgerrors "github.com/pkg/errors"

	"github.com/rawbytedev/archive"
)

// Field is one tagged payload inside a Record. Tags are caller-defined
// small integers; fields are encoded in ascending tag order, so the
// "hot" tags 1-8 land at the front of the encoded record.
type Field struct {
	Tag        uint16
	Compressed bool
	Payload    []byte
}

// Record is a schema-tagged bag of opaque byte payloads. It does not
// know how to interpret a field's bytes; callers encode a field's
// value with archive.Save (or any other codec) before adding it, and
// decode it themselves after reading it back out.
type Record struct {
	SchemaID uint64
	Fields   []Field
}

// Get returns the payload for tag, decompressing it first if needed,
// and whether it was present.
func (r *Record) Get(tag uint16) ([]byte, bool, error) {
	for _, f := range r.Fields {
		if f.Tag != tag {
			continue
		}
		if !f.Compressed {
			return f.Payload, true, nil
		}
		raw, err := decompress(f.Payload)
		return raw, true, err
	}
	return nil, false, nil
}

// Set adds or replaces the field at tag. compress requests zstd
// compression of payload before storage; decompression on Get is
// transparent either way.
func (r *Record) Set(tag uint16, payload []byte, compress bool) error {
	stored := payload
	if compress {
		c, err := compressBytes(payload)
		if err != nil {
			return err
		}
		stored = c
	}
	for i, f := range r.Fields {
		if f.Tag == tag {
			r.Fields[i] = Field{Tag: tag, Compressed: compress, Payload: stored}
			return nil
		}
	}
	r.Fields = append(r.Fields, Field{Tag: tag, Compressed: compress, Payload: stored})
	return nil
}

// Serialize implements archive.Serializable: schema id, field count,
// then each field as (tag, compressed flag, length-prefixed payload),
// tag-sorted so tags 1-8 land first. An earlier design kept a separate
// vtable of (tag, compFlags, offset) ahead of the data section so a
// reader could seek directly to one field; this fold drops the
// standalone offset table in favor of sequential tag+payload pairs. A
// reader wanting random access rebuilds the same tag->offset mapping
// once while scanning, at the cost of a linear pass instead of a seek.
func (r *Record) Serialize(a archive.Archive) error {
	switch a.Direction() {
	case archive.Saving:
		return r.save(a)
	default:
		return r.load(a)
	}
}

func (r *Record) save(a archive.Archive) error {
	fields := append([]Field(nil), r.Fields...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Tag < fields[j].Tag })

	if err := a.Value(&r.SchemaID); err != nil {
		return err
	}
	n := uint32(len(fields))
	if err := a.Value(&n); err != nil {
		return err
	}
	for _, f := range fields {
		tag, comp := f.Tag, f.Compressed
		if err := a.Value(&tag); err != nil {
			return err
		}
		if err := a.Value(&comp); err != nil {
			return err
		}
		payload := f.Payload
		if err := a.Value(&payload); err != nil {
			return err
		}
	}
	return nil
}

func (r *Record) load(a archive.Archive) error {
	if err := a.Value(&r.SchemaID); err != nil {
		return err
	}
	var n uint32
	if err := a.Value(&n); err != nil {
		return err
	}
	r.Fields = make([]Field, n)
	for i := range r.Fields {
		var tag uint16
		var comp bool
		var payload []byte
		if err := a.Value(&tag); err != nil {
			return err
		}
		if err := a.Value(&comp); err != nil {
			return err
		}
		if err := a.Value(&payload); err != nil {
			return err
		}
		r.Fields[i] = Field{Tag: tag, Compressed: comp, Payload: payload}
	}
	return nil
}

func compressBytes(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "recordpack: zstd writer")
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decompress(blob []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "recordpack: zstd reader")
	}
	defer dec.Close()
	out, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, fmt.Sprintf("recordpack: decompressing %d bytes", len(blob)))
	}
	return out, nil
}
