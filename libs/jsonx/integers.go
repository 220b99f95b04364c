package jsonx

import (
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

// integerExtension rewires struct fields of the target kinds to string
// encoding. Fields already tagged `,string` or excluded with `json:"-"` are
// left to jsoniter's default handling.
type integerExtension struct {
	jsoniter.DummyExtension
	targets []reflect.Kind
}

func newIntegerExtension(targets ...reflect.Kind) *integerExtension {
	return &integerExtension{targets: targets}
}

func (e *integerExtension) UpdateStructDescriptor(desc *jsoniter.StructDescriptor) {
	for i := range desc.Fields {
		binding := desc.Fields[i]
		kind := binding.Field.Type().Kind()
		if !e.wants(kind) {
			continue
		}
		tag := binding.Field.Tag().Get("json")
		if tag == "-" || hasStringOpt(tag) {
			continue
		}
		codec := &integerCodec{signed: kind == reflect.Int64}
		binding.Encoder = codec
		binding.Decoder = codec
	}
}

func (e *integerExtension) wants(kind reflect.Kind) bool {
	for _, t := range e.targets {
		if t == kind {
			return true
		}
	}
	return false
}

func hasStringOpt(tag string) bool {
	parts := strings.Split(tag, ",")
	for _, p := range parts[1:] {
		if p == "string" {
			return true
		}
	}
	return false
}

// integerCodec reads and writes a single 64-bit integer field as a JSON
// string, accepting bare numbers on decode for compatibility.
type integerCodec struct {
	signed bool
}

var (
	_ jsoniter.ValEncoder = (*integerCodec)(nil)
	_ jsoniter.ValDecoder = (*integerCodec)(nil)
)

func (c *integerCodec) IsEmpty(ptr unsafe.Pointer) bool {
	if c.signed {
		return *(*int64)(ptr) == 0
	}
	return *(*uint64)(ptr) == 0
}

func (c *integerCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	if c.signed {
		stream.WriteString(strconv.FormatInt(*(*int64)(ptr), 10))
		return
	}
	stream.WriteString(strconv.FormatUint(*(*uint64)(ptr), 10))
}

func (c *integerCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	raw := iter.WhatIsNext()
	if c.signed {
		var v int64
		var err error
		if raw == jsoniter.StringValue {
			v, err = strconv.ParseInt(iter.ReadString(), 10, 64)
		} else {
			v = iter.ReadInt64()
		}
		if err != nil {
			iter.ReportError("integerCodec", err.Error())
			return
		}
		*(*int64)(ptr) = v
		return
	}
	var v uint64
	var err error
	if raw == jsoniter.StringValue {
		v, err = strconv.ParseUint(iter.ReadString(), 10, 64)
	} else {
		v = iter.ReadUint64()
	}
	if err != nil {
		iter.ReportError("integerCodec", err.Error())
		return
	}
	*(*uint64)(ptr) = v
}
