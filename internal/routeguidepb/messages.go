// Package routeguidepb holds the routeguide.RouteGuide wire messages and
// gRPC bindings. Field numbers and types follow route.proto, so peers
// using protoc-generated stubs interoperate with this package.
package routeguidepb

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrInvalidUTF8 is returned when a string field holds invalid UTF-8,
// which proto3 forbids on both encode and decode.
var ErrInvalidUTF8 = errors.New("string field contains invalid UTF-8")

// Message is implemented by every routeguide wire message.
type Message interface {
	// AppendWire appends the protobuf encoding of the message to b.
	AppendWire(b []byte) []byte
	// UnmarshalWire resets the message and decodes b into it.
	UnmarshalWire(b []byte) error
}

// Point is latitude/longitude in degrees multiplied by 1e7.
type Point struct {
	Latitude  int32
	Longitude int32
}

func (m *Point) GetLatitude() int32 {
	if m == nil {
		return 0
	}
	return m.Latitude
}

func (m *Point) GetLongitude() int32 {
	if m == nil {
		return 0
	}
	return m.Longitude
}

func (m *Point) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, m.Latitude)
	b = appendInt32(b, 2, m.Longitude)
	return b
}

func (m *Point) UnmarshalWire(b []byte) error {
	*m = Point{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt32(typ, b, &m.Latitude), nil
		case 2:
			return consumeInt32(typ, b, &m.Longitude), nil
		}
		return 0, nil
	})
}

// Rectangle is given by two opposite corners.
type Rectangle struct {
	Lo *Point
	Hi *Point
}

func (m *Rectangle) GetLo() *Point {
	if m == nil {
		return nil
	}
	return m.Lo
}

func (m *Rectangle) GetHi() *Point {
	if m == nil {
		return nil
	}
	return m.Hi
}

func (m *Rectangle) AppendWire(b []byte) []byte {
	if m.Lo != nil {
		b = appendMessage(b, 1, m.Lo)
	}
	if m.Hi != nil {
		b = appendMessage(b, 2, m.Hi)
	}
	return b
}

func (m *Rectangle) UnmarshalWire(b []byte) error {
	*m = Rectangle{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumePoint(typ, b, &m.Lo)
		case 2:
			return consumePoint(typ, b, &m.Hi)
		}
		return 0, nil
	})
}

// Feature names something at a point. An empty name means nothing is there.
type Feature struct {
	Name     string
	Location *Point
}

func (m *Feature) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}

func (m *Feature) GetLocation() *Point {
	if m == nil {
		return nil
	}
	return m.Location
}

func (m *Feature) checkUTF8() error {
	if !utf8.ValidString(m.Name) {
		return fmt.Errorf("field 1: %w", ErrInvalidUTF8)
	}
	return nil
}

func (m *Feature) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Name)
	if m.Location != nil {
		b = appendMessage(b, 2, m.Location)
	}
	return b
}

func (m *Feature) UnmarshalWire(b []byte) error {
	*m = Feature{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumePoint(typ, b, &m.Location)
		}
		return 0, nil
	})
}

// RouteNote is a message sent while at a point.
type RouteNote struct {
	Location *Point
	Message  string
}

func (m *RouteNote) GetLocation() *Point {
	if m == nil {
		return nil
	}
	return m.Location
}

func (m *RouteNote) GetMessage() string {
	if m == nil {
		return ""
	}
	return m.Message
}

func (m *RouteNote) checkUTF8() error {
	if !utf8.ValidString(m.Message) {
		return fmt.Errorf("field 2: %w", ErrInvalidUTF8)
	}
	return nil
}

func (m *RouteNote) AppendWire(b []byte) []byte {
	if m.Location != nil {
		b = appendMessage(b, 1, m.Location)
	}
	b = appendString(b, 2, m.Message)
	return b
}

func (m *RouteNote) UnmarshalWire(b []byte) error {
	*m = RouteNote{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumePoint(typ, b, &m.Location)
		case 2:
			return consumeString(typ, b, &m.Message)
		}
		return 0, nil
	})
}

// RouteSummary is returned in response to RecordRoute.
type RouteSummary struct {
	PointCount   int32
	FeatureCount int32
	Distance     int32
	ElapsedTime  int32
}

func (m *RouteSummary) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, m.PointCount)
	b = appendInt32(b, 2, m.FeatureCount)
	b = appendInt32(b, 3, m.Distance)
	b = appendInt32(b, 4, m.ElapsedTime)
	return b
}

func (m *RouteSummary) UnmarshalWire(b []byte) error {
	*m = RouteSummary{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt32(typ, b, &m.PointCount), nil
		case 2:
			return consumeInt32(typ, b, &m.FeatureCount), nil
		case 3:
			return consumeInt32(typ, b, &m.Distance), nil
		case 4:
			return consumeInt32(typ, b, &m.ElapsedTime), nil
		}
		return 0, nil
	})
}

// consumeFields walks the fields of b. fn returns the bytes consumed for a
// known field, 0 to skip an unknown one, or a negative protowire code.
// Every valid field value is at least one byte long, so 0 is unambiguous.
func consumeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func consumeInt32(typ protowire.Type, b []byte, dst *int32) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return n
	}
	*dst = int32(v)
	return n
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	if !utf8.Valid(v) {
		return 0, ErrInvalidUTF8
	}
	*dst = string(v)
	return n, nil
}

func consumePoint(typ protowire.Type, b []byte, dst **Point) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	p := new(Point)
	if err := p.UnmarshalWire(v); err != nil {
		return 0, err
	}
	*dst = p
	return n, nil
}

// appendInt32 follows proto3: zero values are not written and negative
// values are sign-extended to 64 bits.
func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}
