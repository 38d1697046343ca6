package routeguidepb

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
)

// Codec encodes routeguide messages in protobuf wire format and hands
// generated protobuf messages (health checks, for instance) to the proto
// runtime. It is installed per server and per connection rather than
// registered globally.
type Codec struct{}

// Name returns "proto" so the content-subtype matches standard peers.
func (Codec) Name() string { return "proto" }

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		if c, ok := m.(interface{ checkUTF8() error }); ok {
			if err := c.checkUTF8(); err != nil {
				return nil, fmt.Errorf("routeguidepb: marshal %T: %w", v, err)
			}
		}
		return m.AppendWire(nil), nil
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("routeguidepb: cannot marshal %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		return m.UnmarshalWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("routeguidepb: cannot unmarshal into %T", v)
}

// ServerCodec installs Codec on a gRPC server.
func ServerCodec() grpc.ServerOption {
	return grpc.ForceServerCodec(Codec{})
}

// ClientCodec installs Codec on every call made through a connection.
func ClientCodec() grpc.DialOption {
	return grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{}))
}
