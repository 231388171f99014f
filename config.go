package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"prngstat/prng"
)

// defaultGenerators are analysed when the configuration names none.
var defaultGenerators = []map[string]interface{}{
	{"name": "middle-square", "type": "middle_square", "seed": 45725946},
	{"name": "linear-congruential", "type": "linear_congruential", "seed": 36, "a": 455, "c": 9126, "m": 879},
	{"name": "lagged-fibonacci", "type": "lagged_fibonacci", "seed": []interface{}{1, 2, 3, 4, 6, 1, 4}, "j": 1, "k": 6, "m": 365},
	{"name": "acorn", "type": "acorn", "seed": []interface{}{1, 5, 6, 4, 4, 5, 8, 9, 4}, "m": 12356},
}

// GeneratorSpec is one entry of the generators list.
type GeneratorSpec struct {
	Name string
	Kind prng.Kind

	Seed     int64   // linear_congruential
	SeedUint uint64  // middle_square
	SeedList []int64 // lagged_fibonacci, acorn

	A, C, M int64
	J, K    int
}

// Build constructs and validates the generator described by the spec.
func (s *GeneratorSpec) Build() (prng.Generator, error) {
	switch s.Kind {
	case prng.KindMiddleSquare:
		return prng.NewMiddleSquare(s.SeedUint)
	case prng.KindLinearCongruential:
		return prng.NewLinearCongruential(s.Seed, s.A, s.C, s.M)
	case prng.KindLaggedFibonacci:
		return prng.NewLaggedFibonacci(s.SeedList, s.J, s.K, s.M)
	case prng.KindAcorn:
		return prng.NewAcorn(s.SeedList, s.M)
	}

	return nil, fmt.Errorf("%w: unsupported generator %s", prng.ErrInvalidParameter, s.Kind)
}

// loadGeneratorSpecs decodes the raw generators setting. Values of the wrong
// shape fail with prng.ErrTypeMismatch; range checks are left to Build.
func loadGeneratorSpecs(raw interface{}) ([]*GeneratorSpec, error) {
	if raw == nil {
		raw = defaultGenerators
	}

	entries, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: generators must be a list", prng.ErrTypeMismatch)
	}

	specs := make([]*GeneratorSpec, 0, len(entries))
	for i, entry := range entries {
		m, err := cast.ToStringMapE(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: generators[%d] must be a map", prng.ErrTypeMismatch, i)
		}

		spec, err := parseGeneratorSpec(m)
		if err != nil {
			return nil, fmt.Errorf("generators[%d]: %w", i, err)
		}
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("%s-%d", spec.Kind, i)
		}

		specs = append(specs, spec)
	}

	return specs, nil
}

func parseGeneratorSpec(m map[string]interface{}) (spec *GeneratorSpec, err error) {
	spec = &GeneratorSpec{}

	if v, ok := m["name"]; ok {
		if spec.Name, err = cast.ToStringE(v); err != nil {
			return nil, fmt.Errorf("%w: name: %s", prng.ErrTypeMismatch, err)
		}
	}

	typeName, err := cast.ToStringE(m["type"])
	if err != nil || typeName == "" {
		return nil, fmt.Errorf("%w: type must name a generator", prng.ErrInvalidParameter)
	}
	if spec.Kind, err = prng.ParseKind(typeName); err != nil {
		return nil, err
	}

	switch spec.Kind {
	case prng.KindMiddleSquare:
		spec.SeedUint, err = toUint64("seed", m["seed"])

	case prng.KindLinearCongruential:
		for _, f := range []struct {
			key string
			dst *int64
		}{
			{"seed", &spec.Seed},
			{"a", &spec.A},
			{"c", &spec.C},
			{"m", &spec.M},
		} {
			if *f.dst, err = toInt64(f.key, lookup(m, f.key)); err != nil {
				break
			}
		}

	case prng.KindLaggedFibonacci:
		if spec.SeedList, err = toInt64Slice("seed", m["seed"]); err != nil {
			break
		}
		if spec.J, err = toInt("j", m["j"]); err != nil {
			break
		}
		if spec.K, err = toInt("k", m["k"]); err != nil {
			break
		}
		spec.M, err = toInt64("m", lookup(m, "m"))

	case prng.KindAcorn:
		if spec.SeedList, err = toInt64Slice("seed", m["seed"]); err != nil {
			break
		}
		spec.M, err = toInt64("m", lookup(m, "m"))
	}

	if err != nil {
		return nil, err
	}
	return spec, nil
}

// lookup finds key in any letter case; Acorn's modulus is conventionally
// written upper-case.
func lookup(m map[string]interface{}, key string) interface{} {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// toInt64 accepts integers, and floats with no fractional part (JSON
// numbers decode as float64). Strings, booleans and missing values are
// type mismatches.
func toInt64(key string, v interface{}) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: '%s' is required", prng.ErrTypeMismatch, key)
	case bool, string:
		return 0, fmt.Errorf("%w: '%s' must be an integer, got %T", prng.ErrTypeMismatch, key, v)
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: '%s' must be an integer, got %v", prng.ErrTypeMismatch, key, n)
		}
	case float32:
		if float64(n) != math.Trunc(float64(n)) {
			return 0, fmt.Errorf("%w: '%s' must be an integer, got %v", prng.ErrTypeMismatch, key, n)
		}
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s': %s", prng.ErrTypeMismatch, key, err)
	}
	return i, nil
}

func toInt(key string, v interface{}) (int, error) {
	i, err := toInt64(key, v)
	return int(i), err
}

func toUint64(key string, v interface{}) (uint64, error) {
	if _, err := toInt64(key, v); err != nil {
		return 0, err
	}

	u, err := cast.ToUint64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s': %s", prng.ErrTypeMismatch, key, err)
	}
	return u, nil
}

func toInt64Slice(key string, v interface{}) ([]int64, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: '%s' is required", prng.ErrTypeMismatch, key)
	}

	elems, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s' must be a list of integers", prng.ErrTypeMismatch, key)
	}

	out := make([]int64, len(elems))
	for i, e := range elems {
		if out[i], err = toInt64(fmt.Sprintf("%s[%d]", key, i), e); err != nil {
			return nil, err
		}
	}
	return out, nil
}
