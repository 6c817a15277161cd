package netbilling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCollectsRepeatedKeysInOrder(t *testing.T) {
	t.Parallel()

	vs := Decode("u=alice&u=bob&p=x&p=y")

	require.Equal(t, []string{"u", "p"}, vs.Keys())
	u, ok := vs.Get("u")
	require.True(t, ok)
	require.True(t, u.IsList())
	require.Equal(t, []string{"alice", "bob"}, u.Strings())
	p, _ := vs.Get("p")
	require.Equal(t, []string{"x", "y"}, p.Strings())
}

func TestDecodeSingleKeyStaysScalar(t *testing.T) {
	t.Parallel()

	vs := Decode("cmd=test&site_tag=shop")

	v, ok := vs.Get("cmd")
	require.True(t, ok)
	require.False(t, v.IsList())
	require.Equal(t, "test", v.String())
}

func TestDecodeURLDecodesValuesButNotKeys(t *testing.T) {
	t.Parallel()

	vs := Decode("u%5B%5D=bob%40example.com&note=hello+world&n[]=a%26b")

	v, ok := vs.Get("u%5B%5D")
	require.True(t, ok)
	require.Equal(t, "bob@example.com", v.String())
	require.Equal(t, "hello world", field(vs, "note"))
	require.Equal(t, "a&b", field(vs, "n[]"))
}

func TestDecodeKeepsMalformedEscapes(t *testing.T) {
	t.Parallel()

	vs := Decode("x=100%+off&p=a%20b%zz&q=50%&r=%4")
	require.Equal(t, "100% off", field(vs, "x"))
	require.Equal(t, "a b%zz", field(vs, "p"))
	require.Equal(t, "50%", field(vs, "q"))
	require.Equal(t, "%4", field(vs, "r"))
}

func TestDecodeHexEscapesAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	vs := Decode("a=%2f%2F&b=%C3%A9")
	require.Equal(t, "//", field(vs, "a"))
	require.Equal(t, "é", field(vs, "b"))
}

func TestDecodeSkipsEmptySegmentsAndHandlesMissingValue(t *testing.T) {
	t.Parallel()

	vs := Decode("&&flag&k=&=v&")

	require.Equal(t, []string{"flag", "k", ""}, vs.Keys())
	require.Equal(t, "", field(vs, "flag"))
	require.Equal(t, "", field(vs, "k"))
	require.Equal(t, "v", field(vs, ""))
}

func TestDecodeEmptyInput(t *testing.T) {
	t.Parallel()

	vs := Decode("")
	require.Equal(t, 0, vs.Len())
	require.Empty(t, vs.Keys())
}

func TestValuesSetKeepsPositionAndDeleteRemoves(t *testing.T) {
	t.Parallel()

	vs := NewValues()
	vs.SetString("a", "1")
	vs.SetString("b", "2")
	vs.SetString("a", "3")
	require.Equal(t, []string{"a", "b"}, vs.Keys())
	require.Equal(t, "3", field(vs, "a"))

	vs.Delete("a")
	vs.Delete("missing")
	require.Equal(t, []string{"b"}, vs.Keys())
	require.False(t, vs.Has("a"))
}

func TestNilValuesAreEmpty(t *testing.T) {
	t.Parallel()

	var vs *Values
	_, ok := vs.Get("x")
	require.False(t, ok)
	require.Nil(t, vs.Keys())
	require.Equal(t, 0, vs.Len())
}

func TestListCopiesInput(t *testing.T) {
	t.Parallel()

	in := []string{"a", "b"}
	v := List(in...)
	in[0] = "z"
	require.Equal(t, []string{"a", "b"}, v.Strings())
	require.Equal(t, 2, v.Len())

	out := v.Strings()
	out[1] = "y"
	require.Equal(t, "b", v.Strings()[1])
}
