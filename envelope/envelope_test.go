package envelope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte("an archive payload, arbitrary length")
	frame := Wrap(payload)

	got, err := Unwrap(frame)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestUnwrap_Empty(t *testing.T) {
	frame := Wrap(nil)
	got, err := Unwrap(frame)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestUnwrap_BadMagic(t *testing.T) {
	frame := Wrap([]byte("hello"))
	frame[0] ^= 0xFF
	_, err := Unwrap(frame)
	require.Error(t, err)
}

func TestUnwrap_CorruptedPayload(t *testing.T) {
	frame := Wrap([]byte("hello"))
	frame[len(frame)-5] ^= 0xFF
	_, err := Unwrap(frame)
	require.Error(t, err)
}

func TestUnwrap_Truncated(t *testing.T) {
	frame := Wrap([]byte("hello"))
	_, err := Unwrap(frame[:len(frame)-2])
	require.Error(t, err)
}
