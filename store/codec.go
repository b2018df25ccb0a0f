package store

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
)

// Codec serializes stored values to and from the string-keyed store.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the default codec, for human-readable stores.
var JSON Codec = jsonCodec{}

// CBOR is a compact binary codec for stores where readability does not
// matter.
var CBOR Codec = cborCodec{}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (jsonCodec) Unmarshal(d []byte, v any) error { return json.Unmarshal(d, v) }

type cborCodec struct{}

func (cborCodec) Marshal(v any) ([]byte, error)   { return cbor.Marshal(v) }
func (cborCodec) Unmarshal(d []byte, v any) error { return cbor.Unmarshal(d, v) }
