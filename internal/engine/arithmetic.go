package engine

import (
	"math"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

// numeric unwraps a Number-kind value (§3.1: integer, float or character)
// into a float64 for arithmetic, remembering whether the source was a
// Float so the result can be re-narrowed.
func numeric(d data.Data) (float64, bool, error) {
	switch v := d.(type) {
	case data.Integer:
		return float64(v), false, nil
	case data.Character:
		return float64(v), false, nil
	case data.Float:
		return float64(v), true, nil
	default:
		return 0, false, cerrors.Message("expected a number, found " + d.Kind().String())
	}
}

func renarrow(value float64, wasFloat bool) data.Data {
	if wasFloat {
		return data.Float(value)
	}
	return data.Integer(int64(value))
}

func binaryArithmetic(a, b data.Data, op func(x, y float64) float64) (data.Data, error) {
	x, xFloat, err := numeric(a)
	if err != nil {
		return nil, err
	}
	y, yFloat, err := numeric(b)
	if err != nil {
		return nil, err
	}
	return renarrow(op(x, y), xFloat || yFloat), nil
}

// reduceArithmetic implements the `reduce_list!` fold: combine every
// parameter left to right with op.
func reduceArithmetic(parameters []data.Data, op func(x, y float64) float64) (data.Data, error) {
	if len(parameters) == 0 {
		return nil, cerrors.Message("expected at least one parameter")
	}
	result := parameters[0]
	for _, next := range parameters[1:] {
		combined, err := binaryArithmetic(result, next, op)
		if err != nil {
			return nil, err
		}
		result = combined
	}
	return result, nil
}

func Add(parameters []data.Data) (data.Data, error) {
	return reduceArithmetic(parameters, func(x, y float64) float64 { return x + y })
}

func Subtract(parameters []data.Data) (data.Data, error) {
	return reduceArithmetic(parameters, func(x, y float64) float64 { return x - y })
}

func Multiply(parameters []data.Data) (data.Data, error) {
	return reduceArithmetic(parameters, func(x, y float64) float64 { return x * y })
}

func Divide(parameters []data.Data) (data.Data, error) {
	var divErr error
	result, err := reduceArithmetic(parameters, func(x, y float64) float64 {
		if y == 0 {
			divErr = cerrors.Message("division by zero")
			return 0
		}
		return x / y
	})
	if divErr != nil {
		return nil, divErr
	}
	return result, err
}

func Modulo(a, b data.Data) (data.Data, error) {
	return binaryArithmetic(a, b, math.Mod)
}

func Power(a, b data.Data) (data.Data, error) {
	return binaryArithmetic(a, b, math.Pow)
}

func Logarithm(a, base data.Data) (data.Data, error) {
	return binaryArithmetic(a, base, func(x, y float64) float64 { return math.Log(x) / math.Log(y) })
}

func unaryArithmetic(a data.Data, op func(x float64) float64) (data.Data, error) {
	x, wasFloat, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return renarrow(op(x), wasFloat), nil
}

func Negate(a data.Data) (data.Data, error) { return unaryArithmetic(a, func(x float64) float64 { return -x }) }
func Absolute(a data.Data) (data.Data, error) {
	return unaryArithmetic(a, math.Abs)
}
func Ceiling(a data.Data) (data.Data, error) { return unaryArithmetic(a, math.Ceil) }
func Floor(a data.Data) (data.Data, error)   { return unaryArithmetic(a, math.Floor) }
func Round(a data.Data) (data.Data, error)   { return unaryArithmetic(a, math.Round) }

func SquareRoot(a data.Data) (data.Data, error) {
	x, _, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return data.Float(math.Sqrt(x)), nil
}

func Sine(a data.Data) (data.Data, error) {
	x, _, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return data.Float(math.Sin(x)), nil
}

func Cosine(a data.Data) (data.Data, error) {
	x, _, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return data.Float(math.Cos(x)), nil
}

func Tangent(a data.Data) (data.Data, error) {
	x, _, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return data.Float(math.Tan(x)), nil
}

// integral unwraps Integer/Character/Boolean into an int64 for the
// bitwise family (`not`/`and`/`or`/`xor`/`shift_left`/`shift_right`),
// remembering the source Kind so the result can be rebuilt the same way.
func integral(d data.Data) (int64, data.Kind, error) {
	switch v := d.(type) {
	case data.Integer:
		return int64(v), data.KindInteger, nil
	case data.Character:
		return int64(v), data.KindCharacter, nil
	case data.Boolean:
		if v {
			return 1, data.KindBoolean, nil
		}
		return 0, data.KindBoolean, nil
	default:
		return 0, 0, cerrors.Message("expected an integer, character or boolean, found " + d.Kind().String())
	}
}

func rebuildIntegral(value int64, kind data.Kind) data.Data {
	switch kind {
	case data.KindCharacter:
		return data.Character(value)
	case data.KindBoolean:
		return data.Boolean(value != 0)
	default:
		return data.Integer(value)
	}
}

func Not(a data.Data) (data.Data, error) {
	x, kind, err := integral(a)
	if err != nil {
		return nil, err
	}
	if kind == data.KindBoolean {
		return data.Boolean(x == 0), nil
	}
	return rebuildIntegral(^x, kind), nil
}

func bitwiseReduce(parameters []data.Data, op func(x, y int64) int64) (data.Data, error) {
	if len(parameters) == 0 {
		return nil, cerrors.Message("expected at least one parameter")
	}
	result, kind, err := integral(parameters[0])
	if err != nil {
		return nil, err
	}
	for _, next := range parameters[1:] {
		y, _, err := integral(next)
		if err != nil {
			return nil, err
		}
		result = op(result, y)
	}
	return rebuildIntegral(result, kind), nil
}

func And(parameters []data.Data) (data.Data, error) {
	return bitwiseReduce(parameters, func(x, y int64) int64 { return x & y })
}

func Or(parameters []data.Data) (data.Data, error) {
	return bitwiseReduce(parameters, func(x, y int64) int64 { return x | y })
}

func Xor(parameters []data.Data) (data.Data, error) {
	return bitwiseReduce(parameters, func(x, y int64) int64 { return x ^ y })
}

func ShiftLeft(a, b data.Data) (data.Data, error) {
	x, kind, err := integral(a)
	if err != nil {
		return nil, err
	}
	y, _, err := integral(b)
	if err != nil {
		return nil, err
	}
	return rebuildIntegral(x<<uint(y), kind), nil
}

func ShiftRight(a, b data.Data) (data.Data, error) {
	x, kind, err := integral(a)
	if err != nil {
		return nil, err
	}
	y, _, err := integral(b)
	if err != nil {
		return nil, err
	}
	return rebuildIntegral(x>>uint(y), kind), nil
}

// ToInteger, ToFloat and ToCharacter implement the `integer`/`float`/
// `character` coercion instructions (§4.7): any Number narrows/widens to
// the requested representation.
func ToInteger(a data.Data) (data.Data, error) {
	x, _, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return data.Integer(int64(x)), nil
}

func ToFloat(a data.Data) (data.Data, error) {
	x, _, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return data.Float(x), nil
}

func ToCharacter(a data.Data) (data.Data, error) {
	x, _, err := numeric(a)
	if err != nil {
		return nil, err
	}
	return data.Character(byte(int64(x))), nil
}
