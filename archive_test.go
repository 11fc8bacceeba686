package archive

import (
	"errors"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

func (p *point) Serialize(a Archive) error {
	if err := a.Value(&p.X); err != nil {
		return err
	}
	return a.Value(&p.Y)
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []any{
		int8(-12), uint8(200), int16(-3000), uint16(4000),
		int32(-1), uint32(1), int64(-9), uint64(9),
		float32(1.5), float64(-2.25), true, false,
	}
	for _, c := range cases {
		in := reflect.New(reflect.TypeOf(c))
		in.Elem().Set(reflect.ValueOf(c))
		out, err := Save(in.Interface())
		require.NoError(t, err)
		require.NotEmpty(t, out)

		got := reflect.New(reflect.TypeOf(c))
		require.NoError(t, Load(out, got.Interface()))
		require.Equal(t, c, got.Elem().Interface())
	}
}

func TestScalarQuickRoundTrip(t *testing.T) {
	f := func(n int32) bool {
		out, err := Save(&n)
		if err != nil {
			return false
		}
		var got int32
		if err := Load(out, &got); err != nil {
			return false
		}
		return got == n
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestStringRoundTrip(t *testing.T) {
	s := "hello, archive"
	out, err := Save(&s)
	require.NoError(t, err)

	var got string
	require.NoError(t, Load(out, &got))
	require.Equal(t, s, got)
}

func TestSliceRoundTrip_FastPath(t *testing.T) {
	s := []int32{1, 2, 3, -4, 5}
	out, err := Save(&s)
	require.NoError(t, err)

	var got []int32
	require.NoError(t, Load(out, &got))
	require.Equal(t, s, got)
}

func TestSliceRoundTrip_Struct(t *testing.T) {
	s := []*point{{1, 2}, {3, 4}}
	out, err := Save(&s)
	require.NoError(t, err)

	var got []*point
	require.NoError(t, Load(out, &got))
	require.Equal(t, s, got)
}

func TestArrayRoundTrip(t *testing.T) {
	var a [4]byte = [4]byte{1, 2, 3, 4}
	out, err := Save(&a)
	require.NoError(t, err)

	var got [4]byte
	require.NoError(t, Load(out, &got))
	require.Equal(t, a, got)
}

func TestMapRoundTrip(t *testing.T) {
	m := map[string]int32{"a": 1, "b": 2, "c": 3}
	out, err := Save(&m)
	require.NoError(t, err)

	var got map[string]int32
	require.NoError(t, Load(out, &got))
	require.Equal(t, m, got)
}

func TestOwningPointerRoundTrip(t *testing.T) {
	v := int32(42)
	p := &v
	out, err := Save(&p)
	require.NoError(t, err)

	var got *int32
	require.NoError(t, Load(out, &got))
	require.NotNil(t, got)
	require.Equal(t, v, *got)
}

func TestNilOwningPointerRejected(t *testing.T) {
	var p *int32
	_, err := Save(&p)
	require.ErrorIs(t, err, ErrAttemptToSerializeNull)
}

func TestSerializeHook(t *testing.T) {
	p := point{X: 10, Y: -20}
	out, err := Save(&p)
	require.NoError(t, err)

	var got point
	require.NoError(t, Load(out, &got))
	require.Equal(t, p, got)
}

func TestPairRoundTrip(t *testing.T) {
	p := Pair[int32, string]{First: 7, Second: "seven"}
	out, err := Save(&p)
	require.NoError(t, err)

	var got Pair[int32, string]
	require.NoError(t, Load(out, &got))
	require.Equal(t, p, got)
}

func TestTuple3RoundTrip(t *testing.T) {
	tpl := Tuple3[int32, bool, string]{First: 1, Second: true, Third: "x"}
	out, err := Save(&tpl)
	require.NoError(t, err)

	var got Tuple3[int32, bool, string]
	require.NoError(t, Load(out, &got))
	require.Equal(t, tpl, got)
}

func TestBinaryRoundTrip(t *testing.T) {
	data := []int32{10, 20, 30, 40}
	out, err := Save(AsBinary(data))
	require.NoError(t, err)

	got := make([]int32, len(data))
	require.NoError(t, Load(out, AsBinary(got)))
	require.Equal(t, data, got)
}

func TestBinaryLoad_TooShort(t *testing.T) {
	got := make([]int32, 4)
	err := Load([]byte{1, 2, 3}, AsBinary(got))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestAutoStructRoundTrip(t *testing.T) {
	type Plain struct {
		Name string
		Age  int32
	}
	p := Plain{Name: "ada", Age: 37}
	out, err := Save(AutoStruct(&p))
	require.NoError(t, err)

	var got Plain
	require.NoError(t, Load(out, AutoStruct(&got)))
	require.Equal(t, p, got)
}

func TestUnsupportedTypeRejected(t *testing.T) {
	type noHook struct{ V int }
	v := noHook{V: 1}
	_, err := Save(&v)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValueMustBePointer(t *testing.T) {
	v := int32(5)
	_, err := Save(v)
	require.Error(t, err)
	require.Equal(t, KindUnsupportedType, Kind(err))
}

func TestOutputArchiveFitsCapacity(t *testing.T) {
	a := NewOutputArchive()
	v := int32(1)
	require.NoError(t, a.Value(&v))
	require.Equal(t, len(a.Bytes()), cap(a.Bytes()))
}

var errExplode = errors.New("archive: test explosion")

// explodes writes its V field, 4 bytes, then raises, modeling the
// exception-safety scenario: a handler that writes part of its data
// before failing.
type explodes struct {
	V int32
}

func (e *explodes) Serialize(a Archive) error {
	if err := a.Value(&e.V); err != nil {
		return err
	}
	return errExplode
}

func TestOutputArchiveRetainsPartialWriteOnError(t *testing.T) {
	a := NewOutputArchive()
	var x int32 = 1
	require.NoError(t, a.Value(&x))
	before := a.Len()

	err := a.Value(&explodes{V: 7})
	require.ErrorIs(t, err, errExplode)
	require.Equal(t, before+4, a.Len())
	require.Equal(t, len(a.Bytes()), cap(a.Bytes()))
}

func TestInputArchiveConsumesPrefix(t *testing.T) {
	s := []int32{1, 2, 3}
	out, err := Save(&s)
	require.NoError(t, err)

	in := NewInputArchive(out)
	var got []int32
	require.NoError(t, in.Value(&got))
	require.Equal(t, s, got)
	require.Equal(t, 0, in.Remaining())
}

func TestViewInputArchiveDoesNotMutateSource(t *testing.T) {
	s := int32(9)
	out, err := Save(&s)
	require.NoError(t, err)
	cp := append([]byte(nil), out...)

	view := NewViewInputArchive(out)
	var got int32
	require.NoError(t, view.Value(&got))
	require.Equal(t, cp, out)
}
