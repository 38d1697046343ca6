package routeguidepb_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	pb "github.com/samirrijal/routeguide/internal/routeguidepb"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestPoint_WireFormat(t *testing.T) {
	p := &pb.Point{Latitude: 407838351, Longitude: -746143763}
	want := mustHex(t, "088fbdbcc20110edff9a9cfdffffffff01")

	assert.Equal(t, want, p.AppendWire(nil))

	var got pb.Point
	require.NoError(t, got.UnmarshalWire(want))
	assert.Equal(t, *p, got)
}

func TestFeature_WireFormat(t *testing.T) {
	f := &pb.Feature{Name: "abc", Location: &pb.Point{Latitude: 407838351, Longitude: -746143763}}
	want := mustHex(t, "0a036162631211088fbdbcc20110edff9a9cfdffffffff01")

	assert.Equal(t, want, f.AppendWire(nil))

	var got pb.Feature
	require.NoError(t, got.UnmarshalWire(want))
	assert.Equal(t, "abc", got.GetName())
	assert.Equal(t, f.Location, got.GetLocation())
}

func TestRouteSummary_WireFormat(t *testing.T) {
	s := &pb.RouteSummary{PointCount: 3, FeatureCount: 2, Distance: 18327, ElapsedTime: 1}
	want := mustHex(t, "0803100218978f012001")

	assert.Equal(t, want, s.AppendWire(nil))

	var got pb.RouteSummary
	require.NoError(t, got.UnmarshalWire(want))
	assert.Equal(t, *s, got)
}

func TestZeroValuesAreOmitted(t *testing.T) {
	assert.Empty(t, (&pb.Point{}).AppendWire(nil))
	assert.Empty(t, (&pb.RouteSummary{}).AppendWire(nil))

	// A set but empty location is still written, as proto3 does for messages.
	f := &pb.Feature{Location: &pb.Point{}}
	assert.Equal(t, []byte{0x12, 0x00}, f.AppendWire(nil))

	var got pb.Feature
	require.NoError(t, got.UnmarshalWire(f.AppendWire(nil)))
	require.NotNil(t, got.Location)
	assert.Equal(t, pb.Point{}, *got.Location)
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	b := (&pb.RouteNote{Location: &pb.Point{Latitude: 1, Longitude: 2}, Message: "hi"}).AppendWire(nil)
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")
	b = protowire.AppendTag(b, 10, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 42)

	var got pb.RouteNote
	require.NoError(t, got.UnmarshalWire(b))
	assert.Equal(t, "hi", got.GetMessage())
	assert.Equal(t, int32(2), got.GetLocation().GetLongitude())
}

func TestUnmarshal_ResetsMessage(t *testing.T) {
	got := pb.Rectangle{Lo: &pb.Point{Latitude: 5}, Hi: &pb.Point{Latitude: 6}}
	in := (&pb.Rectangle{Hi: &pb.Point{Longitude: 7}}).AppendWire(nil)

	require.NoError(t, got.UnmarshalWire(in))
	assert.Nil(t, got.Lo)
	assert.Equal(t, int32(7), got.GetHi().GetLongitude())
}

func TestUnmarshal_Truncated(t *testing.T) {
	full := (&pb.Feature{Name: "abc", Location: &pb.Point{Latitude: 1}}).AppendWire(nil)

	var got pb.Feature
	assert.Error(t, got.UnmarshalWire(full[:len(full)-1]))
	assert.Error(t, got.UnmarshalWire([]byte{0x0a, 0x05, 'a'}))
}

func TestNilGetters(t *testing.T) {
	var f *pb.Feature
	assert.Empty(t, f.GetName())
	assert.Nil(t, f.GetLocation())
	assert.Zero(t, f.GetLocation().GetLatitude())

	var r *pb.Rectangle
	assert.Nil(t, r.GetLo())
	assert.Nil(t, r.GetHi())
}

func TestCodec(t *testing.T) {
	c := pb.Codec{}
	assert.Equal(t, "proto", c.Name())

	data, err := c.Marshal(&pb.RouteNote{Message: "m"})
	require.NoError(t, err)

	var n pb.RouteNote
	require.NoError(t, c.Unmarshal(data, &n))
	assert.Equal(t, "m", n.Message)

	_, err = c.Marshal("not a message")
	assert.Error(t, err)
	assert.Error(t, c.Unmarshal(data, new(int)))
}

func TestCodec_FallsBackToProto(t *testing.T) {
	c := pb.Codec{}

	data, err := c.Marshal(wrapperspb.String("healthy"))
	require.NoError(t, err)

	got := new(wrapperspb.StringValue)
	require.NoError(t, c.Unmarshal(data, got))
	assert.Equal(t, "healthy", got.GetValue())
}

func TestInvalidUTF8_Rejected(t *testing.T) {
	note := &pb.RouteNote{Location: &pb.Point{Latitude: 1}, Message: "\xff\xfe"}
	data := note.AppendWire(nil)

	var got pb.RouteNote
	assert.ErrorIs(t, got.UnmarshalWire(data), pb.ErrInvalidUTF8)

	// The proto runtime rejects the same bytes in a proto3 string field.
	sv := protowire.AppendTag(nil, 1, protowire.BytesType)
	sv = protowire.AppendString(sv, "\xff\xfe")
	assert.Error(t, proto.Unmarshal(sv, new(wrapperspb.StringValue)))

	var f pb.Feature
	bad := protowire.AppendTag(nil, 1, protowire.BytesType)
	bad = protowire.AppendString(bad, "caf\xe9")
	assert.ErrorIs(t, f.UnmarshalWire(bad), pb.ErrInvalidUTF8)
}

func TestCodec_RejectsInvalidUTF8(t *testing.T) {
	c := pb.Codec{}

	_, err := c.Marshal(&pb.RouteNote{Message: "\xff"})
	assert.ErrorIs(t, err, pb.ErrInvalidUTF8)

	_, err = c.Marshal(&pb.Feature{Name: "\xc3\x28"})
	assert.ErrorIs(t, err, pb.ErrInvalidUTF8)

	data, err := c.Marshal(&pb.Feature{Name: "Café ☕"})
	require.NoError(t, err)
	var f pb.Feature
	require.NoError(t, c.Unmarshal(data, &f))
	assert.Equal(t, "Café ☕", f.Name)
}
