// Package stockv1 is the gRPC surface of the stock service. Messages are
// plain Go structs carried by the "json" codec; clients select it with
// grpc.CallContentSubtype(CodecName), which the generated clients below do
// by default.
package stockv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals proto well-known types with protojson and everything else
// with encoding/json.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}
