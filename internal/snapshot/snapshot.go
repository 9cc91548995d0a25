package snapshot

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/robert-malhotra/go-composite/composite"
)

// Option configures Encode.
type Option func(*options)

type options struct {
	flags uint8
}

// WithCompression enables snappy compression of the payload.
func WithCompression() Option {
	return func(o *options) {
		o.flags |= flagSnappy
	}
}

// Encode serializes t into a frame.
func Encode(t *composite.Tree, opts ...Option) ([]byte, error) {
	if t == nil {
		return nil, errors.New("snapshot: nil tree")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n, err := fromTree(t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	err = enc.Encode(n)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot: encoding payload")
	}
	return frame(buf.Bytes(), o.flags)
}

// Decode rebuilds the tree stored in a frame produced by Encode.
func Decode(buf []byte) (*composite.Tree, error) {
	payload, err := unframe(buf)
	if err != nil {
		return nil, err
	}

	var n node
	dec := msgpack.GetDecoder()
	dec.Reset(bytes.NewReader(payload))
	err = dec.Decode(&n)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot: decoding payload")
	}
	return n.toTree()
}

// Compressed reports whether a frame carries a compressed payload. It does
// not validate the frame.
func Compressed(buf []byte) bool {
	return len(buf) >= headerSize && buf[5]&flagSnappy != 0
}
