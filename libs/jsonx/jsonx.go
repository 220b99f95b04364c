// Package jsonx is the project-wide JSON facade: a frozen jsoniter
// configuration with 64-bit integer struct fields rendered as strings, so
// consumers parsing the output with IEEE-754 doubles never lose precision.
package jsonx

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var _jsonx = jsoniter.Config{
	IndentionStep:          2,
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

var (
	Marshal    = _jsonx.Marshal
	Unmarshal  = _jsonx.Unmarshal
	NewEncoder = _jsonx.NewEncoder
	NewDecoder = _jsonx.NewDecoder
)

func init() {
	jsoniter.RegisterExtension(newIntegerExtension(reflect.Int64, reflect.Uint64))
}
