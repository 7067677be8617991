package ir

import (
	"slices"
	"unicode/utf16"
)

// IRValue is a sealed interface over the canonical value types.
type IRValue interface {
	irValue()
}

// IRString is a JSON string.
type IRString string

func (IRString) irValue() {}

// IRInt is a JSON integer. Always int64.
type IRInt int64

func (IRInt) irValue() {}

// IRBool is a JSON boolean.
type IRBool bool

func (IRBool) irValue() {}

// IRArray is an ordered list of values.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject maps keys to values. Iterate with SortedKeys.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// IRPair is one key-value pair for NewIRObject.
type IRPair struct {
	Key   string
	Value IRValue
}

// O is shorthand for an IRPair.
func O(key string, value IRValue) IRPair {
	return IRPair{Key: key, Value: value}
}

// NewIRObject builds an object from pairs. Later pairs overwrite earlier
// ones with the same key.
func NewIRObject(pairs ...IRPair) IRObject {
	obj := make(IRObject, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// SortedKeys returns keys in RFC 8785 order: by UTF-16 code units, which
// differs from Go's byte order for characters outside the BMP.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
