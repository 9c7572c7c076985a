package hcl

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// ctyToGo converts a cty.Value to plain Go values understood by the option
// translator. Unknown values are rejected; they are never passed through.
//
// Whole numbers become int64 so that 100 serializes as "100", not "100.0".
func ctyToGo(val cty.Value, context string) (interface{}, error) {
	if !val.IsKnown() {
		return nil, &UnknownValueError{Context: context, Reason: "value is not known"}
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil

	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return val.True(), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var out []interface{}
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			item, err := ctyToGo(v, fmt.Sprintf("%s[%d]", context, len(out)))
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil

	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]interface{})
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			item, err := ctyToGo(v, context+"."+k.AsString())
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = item
		}
		return out, nil
	}

	return nil, &UnknownValueError{
		Context: context,
		Reason:  "unhandled type " + ty.FriendlyName(),
	}
}

// goToCty converts variable values for the evaluation context
func goToCty(v interface{}) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case []interface{}:
		items := make([]cty.Value, 0, len(x))
		for _, item := range x {
			cv, err := goToCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			items = append(items, cv)
		}
		return cty.TupleVal(items), nil
	case map[string]interface{}:
		attrs := make(map[string]cty.Value, len(x))
		for k, item := range x {
			cv, err := goToCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("unsupported variable type %T", v)
}

// UnknownValueError indicates a value that could not be resolved
type UnknownValueError struct {
	Context string
	Reason  string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown value in %s: %s", e.Context, e.Reason)
}
