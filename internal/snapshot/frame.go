package snapshot

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Version is the frame format version written by Encode.
const Version = 1

const (
	headerSize = 20

	flagSnappy uint8 = 1 << 0
	knownFlags       = flagSnappy
)

var magic = [4]byte{'C', 'T', 'S', '1'}

var (
	ErrFormat      = errors.New("snapshot: not a snapshot frame")
	ErrVersion     = errors.New("snapshot: unsupported format version")
	ErrChecksum    = errors.New("snapshot: checksum mismatch")
	ErrUnsupported = errors.New("snapshot: unsupported value")
)

type header struct {
	Magic    [4]byte
	Version  uint8
	Flags    uint8
	Reserved uint16
	Length   uint32
	Checksum uint64
}

// codec is one reversible stage of the payload pipeline.
type codec interface {
	flag() uint8
	encode(src []byte) ([]byte, error)
	decode(src []byte) ([]byte, error)
}

type snappyCodec struct{}

func (snappyCodec) flag() uint8 { return flagSnappy }

func (snappyCodec) encode(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (snappyCodec) decode(src []byte) ([]byte, error) {
	return snappy.Decode(nil, src)
}

// pipeline lists every codec in encoding order.
var pipeline = []codec{snappyCodec{}}

func frame(payload []byte, flags uint8) ([]byte, error) {
	data := payload
	for _, c := range pipeline {
		if flags&c.flag() == 0 {
			continue
		}
		var err error
		if data, err = c.encode(data); err != nil {
			return nil, errors.Wrapf(err, "codec %#x encode", c.flag())
		}
	}

	h := header{
		Magic:    magic,
		Version:  Version,
		Flags:    flags,
		Length:   uint32(len(data)),
		Checksum: xxhash.Sum64(data),
	}
	out := make([]byte, headerSize, headerSize+len(data))
	if _, err := binary.Encode(out, binary.LittleEndian, h); err != nil {
		return nil, errors.Wrap(err, "encoding header")
	}
	return append(out, data...), nil
}

func unframe(buf []byte) ([]byte, error) {
	if len(buf) < headerSize || !bytes.Equal(buf[:4], magic[:]) {
		return nil, ErrFormat
	}
	var h header
	if _, err := binary.Decode(buf[:headerSize], binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "decoding header")
	}
	if h.Version != Version {
		return nil, errors.Wrapf(ErrVersion, "version %d", h.Version)
	}
	if h.Flags&^knownFlags != 0 {
		return nil, errors.Wrapf(ErrVersion, "unknown codec flags %#x", h.Flags)
	}
	data := buf[headerSize:]
	if uint64(len(data)) != uint64(h.Length) {
		return nil, errors.Wrapf(ErrFormat, "payload is %d bytes, header says %d", len(data), h.Length)
	}
	if xxhash.Sum64(data) != h.Checksum {
		return nil, ErrChecksum
	}

	for i := len(pipeline) - 1; i >= 0; i-- {
		c := pipeline[i]
		if h.Flags&c.flag() == 0 {
			continue
		}
		var err error
		if data, err = c.decode(data); err != nil {
			return nil, errors.Wrapf(err, "codec %#x decode", c.flag())
		}
	}
	return data, nil
}
