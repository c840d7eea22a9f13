package snapshot

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoCodec encodes a Snapshot as a protobuf Struct.
// Values must be JSON-like: nil, bool, numbers, strings, slices and
// string-keyed maps of the same.
type ProtoCodec struct{}

func (ProtoCodec) Encode(s Snapshot) ([]byte, error) {
	st, err := structpb.NewStruct(s)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to build struct from snapshot")
	}
	if data, err := proto.Marshal(st); err != nil {
		return nil, errors.WithMessage(err, "failed to encode snapshot")
	} else {
		return data, nil
	}
}

func (ProtoCodec) Decode(data []byte) (Snapshot, error) {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(data, st); err != nil {
		return nil, errors.WithMessage(err, "failed to decode snapshot")
	}
	return st.AsMap(), nil
}
