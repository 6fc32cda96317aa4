package encoding

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec serializes values for the wire.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Binary reports whether encoded payloads are binary rather than text.
	Binary() bool
}

var ErrUnknownCodec = errors.New("unknown codec")

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (msgpackCodec) Binary() bool                       { return true }

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Binary() bool                       { return false }

var (
	MsgPack Codec = msgpackCodec{}
	JSON    Codec = jsonCodec{}
)

// Lookup returns the codec registered under name. An empty name selects
// MsgPack.
func Lookup(name string) (Codec, error) {
	switch name {
	case "", MsgPack.Name():
		return MsgPack, nil
	case JSON.Name():
		return JSON, nil
	default:
		return nil, errors.Wrapf(ErrUnknownCodec, "%q", name)
	}
}
