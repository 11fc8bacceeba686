// Package typeid derives stable 64-bit type identifiers from ASCII
// names, for use as the polymorphic id written ahead of a registered
// type's body.
//
// Go has no constexpr-strength compile-time evaluation, so this
// package accepts the one-time runtime cost at first use instead.
// MakeID is pure and cheap enough (one SHA-1 over a short string) that
// callers needing a true build-time constant should instead run the
// archivegen command (cmd/archivegen) to emit a generated file of
// named uint64 constants.
package typeid

import (
	"crypto/sha1"
	"encoding/binary"
)

// MakeID hashes name with SHA-1 and folds the first 8 bytes of the
// digest into a uint64, high 4 bytes then low 4 bytes, big-endian
// within each half. Equal names always produce equal ids, on any
// platform and any build, because the folding is independent of host
// byte order.
//
// This fold does not reproduce zpp::serializer's make_id: that
// function applies one further full 64-bit byte-swap after the same
// hi/lo fold. Ids from this package are stable and collision-resistant
// on their own terms, but a payload carrying a zpp::serializer id for
// the same name will not match one produced here.
func MakeID(name string) uint64 {
	sum := sha1.Sum([]byte(name))
	hi := binary.BigEndian.Uint32(sum[0:4])
	lo := binary.BigEndian.Uint32(sum[4:8])
	return uint64(hi)<<32 | uint64(lo)
}
