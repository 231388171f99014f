package prng

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// stateDoc is a parsed state document. Key presence matters to some
// generators, so documents are read with gjson rather than decoded into a
// struct, where a missing key and a zero value look the same.
type stateDoc struct {
	root gjson.Result
}

func parseState(data []byte) (stateDoc, error) {
	if !gjson.ValidBytes(data) {
		return stateDoc{}, fmt.Errorf("%w: state is not valid JSON", ErrMalformedState)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return stateDoc{}, fmt.Errorf("%w: state must be a JSON object", ErrMalformedState)
	}

	return stateDoc{root: root}, nil
}

// require fails with ErrMalformedState on the first missing key.
func (d stateDoc) require(keys ...string) error {
	for _, k := range keys {
		if !d.root.Get(k).Exists() {
			return fmt.Errorf("%w: missing key '%s'", ErrMalformedState, k)
		}
	}
	return nil
}

// int64 reads an integer key; ok is false when the key is absent.
func (d stateDoc) int64(key string) (v int64, ok bool, err error) {
	r := d.root.Get(key)
	if !r.Exists() {
		return 0, false, nil
	}
	v, err = intValue(key, r)
	return v, true, err
}

func (d stateDoc) uint64(key string) (v uint64, ok bool, err error) {
	r := d.root.Get(key)
	if !r.Exists() {
		return 0, false, nil
	}
	if r.Type != gjson.Number {
		return 0, true, fmt.Errorf("%w: '%s' must be an integer, got %s", ErrTypeMismatch, key, r.Type)
	}
	v, err = strconv.ParseUint(r.Raw, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: '%s' must be a non-negative integer, got %s", ErrTypeMismatch, key, r.Raw)
	}
	return v, true, nil
}

func (d stateDoc) int(key string) (int, bool, error) {
	v, ok, err := d.int64(key)
	return int(v), ok, err
}

func (d stateDoc) ints(key string) (vs []int64, ok bool, err error) {
	r := d.root.Get(key)
	if !r.Exists() {
		return nil, false, nil
	}
	if !r.IsArray() {
		return nil, true, fmt.Errorf("%w: '%s' must be a list of integers", ErrTypeMismatch, key)
	}

	elems := r.Array()
	vs = make([]int64, len(elems))
	for i, e := range elems {
		if vs[i], err = intValue(key, e); err != nil {
			return nil, true, err
		}
	}
	return vs, true, nil
}

func intValue(key string, r gjson.Result) (int64, error) {
	if r.Type != gjson.Number {
		return 0, fmt.Errorf("%w: '%s' must be an integer, got %s", ErrTypeMismatch, key, r.Type)
	}
	v, err := strconv.ParseInt(r.Raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' must be an integer, got %s", ErrTypeMismatch, key, r.Raw)
	}
	return v, nil
}
