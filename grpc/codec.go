// Package dirgrpc provides the binary transport of the employee
// directory: gRPC using cramberry for deterministic serialization.
//
// No protobuf code generation is required. Directory records from
// empdir/types are serialized through their own MarshalBinary methods;
// the small request wrappers in wire.go are serialized directly via
// cramberry struct tags.
package dirgrpc

import (
	"encoding"
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
	grpcencoding "google.golang.org/grpc/encoding"
)

const codecName = "cramberry"

// CramberryCodec implements grpc/encoding.Codec using cramberry
// for deterministic binary serialization.
type CramberryCodec struct{}

func (CramberryCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(encoding.BinaryMarshaler); ok {
		return m.MarshalBinary()
	}
	data, err := cramberry.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cramberry marshal: %w", err)
	}
	return data, nil
}

func (CramberryCodec) Unmarshal(data []byte, v any) error {
	if u, ok := v.(encoding.BinaryUnmarshaler); ok {
		return u.UnmarshalBinary(data)
	}
	if err := cramberry.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cramberry unmarshal: %w", err)
	}
	return nil
}

func (CramberryCodec) Name() string { return codecName }

func init() {
	grpcencoding.RegisterCodec(CramberryCodec{})
}
