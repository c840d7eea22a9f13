package snapshot

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Codec encodes a Snapshot into transport bytes and back.
type Codec interface {
	Encode(s Snapshot) ([]byte, error)
	Decode(data []byte) (Snapshot, error)
}

// JSONCodec is the default transport encoding.
type JSONCodec struct{}

func (JSONCodec) Encode(s Snapshot) ([]byte, error) {
	if data, err := json.Marshal(s); err != nil {
		return nil, errors.WithMessage(err, "failed to encode snapshot")
	} else {
		return data, nil
	}
}

func (JSONCodec) Decode(data []byte) (Snapshot, error) {
	s := Snapshot{}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.WithMessage(err, "failed to decode snapshot")
	}
	return s, nil
}
