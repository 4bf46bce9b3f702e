package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/dynval"
)

// Constant-default helpers for schema tables.

func defStr(s string) *cty.Value {
	v := cty.StringVal(s)
	return &v
}

func defInt(n int64) *cty.Value {
	v := cty.NumberIntVal(n)
	return &v
}

func defNum(n float64) *cty.Value {
	v := cty.NumberFloatVal(n)
	return &v
}

func defBool(b bool) *cty.Value {
	v := cty.BoolVal(b)
	return &v
}

// Bind helpers. Each returns a BindFunc writing through the slot accessor,
// so schema tables stay declarative.

func bindString[T any](slot func(*T) *string) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, _ *decode.Context) error {
		s, err := dynval.String(v)
		if err != nil {
			return err
		}
		*slot(dst) = s
		return nil
	}
}

func bindStrings[T any](slot func(*T) *[]string) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, _ *decode.Context) error {
		ss, err := dynval.Strings(v)
		if err != nil {
			return err
		}
		*slot(dst) = ss
		return nil
	}
}

func bindBool[T any](slot func(*T) *bool) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, _ *decode.Context) error {
		b, err := dynval.Bool(v)
		if err != nil {
			return err
		}
		*slot(dst) = b
		return nil
	}
}

func bindFloat[T any](slot func(*T) *float64) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, _ *decode.Context) error {
		f, err := dynval.Float(v)
		if err != nil {
			return err
		}
		*slot(dst) = f
		return nil
	}
}

func bindFloatBetween[T any](slot func(*T) *float64, lo, hi float64) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, _ *decode.Context) error {
		f, err := dynval.FloatBetween(v, lo, hi)
		if err != nil {
			return err
		}
		*slot(dst) = f
		return nil
	}
}

func bindInt[T any](slot func(*T) *int64, lo, hi int64) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, _ *decode.Context) error {
		n, err := dynval.IntBetween(v, lo, hi)
		if err != nil {
			return err
		}
		*slot(dst) = n
		return nil
	}
}

func bindIntPtr[T any](slot func(*T) **int64, lo, hi int64) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, _ *decode.Context) error {
		n, err := dynval.IntBetween(v, lo, hi)
		if err != nil {
			return err
		}
		*slot(dst) = &n
		return nil
	}
}
