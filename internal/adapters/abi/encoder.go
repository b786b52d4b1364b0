package abi

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

var (
	ErrArgumentCount   = errors.New("wrong number of constructor arguments")
	ErrUnsupportedType = errors.New("unsupported argument type")
)

// ArgumentEncoder converts command-line strings into values go-ethereum can pack
type ArgumentEncoder struct{}

// NewArgumentEncoder creates a new argument encoder
func NewArgumentEncoder() *ArgumentEncoder {
	return &ArgumentEncoder{}
}

// EncodeConstructorArgs converts args against the constructor inputs of contractABI
func (e *ArgumentEncoder) EncodeConstructorArgs(contractABI *abi.ABI, args []string) ([]any, error) {
	if contractABI == nil {
		return nil, errors.New("no ABI to encode against")
	}

	inputs := contractABI.Constructor.Inputs
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("%w: constructor(%s) takes %d, got %d",
			ErrArgumentCount, ConstructorSignature(contractABI), len(inputs), len(args))
	}

	values := make([]any, len(inputs))
	for i, input := range inputs {
		value, err := ConvertArgument(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s %s): %w", i, input.Type.String(), input.Name, err)
		}
		values[i] = value
	}

	if _, err := inputs.Pack(values...); err != nil {
		return nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
	}

	return values, nil
}

// ConstructorSignature renders the constructor input types, e.g. "address,uint256"
func ConstructorSignature(contractABI *abi.ABI) string {
	return strings.Join(lo.Map(contractABI.Constructor.Inputs, func(arg abi.Argument, _ int) string {
		return arg.Type.String()
	}), ",")
}

// ConvertArgument parses raw into the Go type go-ethereum packs for typ
func ConvertArgument(typ abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch typ.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", raw)
		}
		return b, nil

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", raw, err)
		}
		return b, nil

	case abi.FixedBytesTy:
		return convertFixedBytes(typ, raw)

	case abi.IntTy, abi.UintTy:
		return convertInteger(typ, raw)

	case abi.SliceTy, abi.ArrayTy:
		return convertList(typ, raw)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ.String())
	}
}

func convertFixedBytes(typ abi.Type, raw string) (any, error) {
	b, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", typ.String(), raw, err)
	}
	if len(b) != typ.Size {
		return nil, fmt.Errorf("%s needs %d bytes, got %d", typ.String(), typ.Size, len(b))
	}

	arr := reflect.New(typ.GetType()).Elem()
	reflect.Copy(arr, reflect.ValueOf(b))
	return arr.Interface(), nil
}

func convertInteger(typ abi.Type, raw string) (any, error) {
	n, ok := new(big.Int).SetString(strings.ReplaceAll(raw, "_", ""), 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}

	if typ.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("%s cannot be negative", typ.String())
		}
		if n.BitLen() > typ.Size {
			return nil, fmt.Errorf("%s overflows %s", raw, typ.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("%s overflows %s", raw, typ.String())
		}
	}

	goType := typ.GetType()
	if goType == reflect.TypeOf((*big.Int)(nil)) {
		return n, nil
	}
	if typ.T == abi.UintTy {
		return reflect.ValueOf(n.Uint64()).Convert(goType).Interface(), nil
	}
	return reflect.ValueOf(n.Int64()).Convert(goType).Interface(), nil
}

// convertList accepts "a,b,c" or "[a, b, c]". Nested lists are not supported.
func convertList(typ abi.Type, raw string) (any, error) {
	elem := *typ.Elem
	if elem.T == abi.SliceTy || elem.T == abi.ArrayTy || elem.T == abi.TupleTy {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ.String())
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	var items []string
	if strings.TrimSpace(inner) != "" {
		items = lo.Map(strings.Split(inner, ","), func(s string, _ int) string {
			return strings.Trim(strings.TrimSpace(s), `"`)
		})
	}

	if typ.T == abi.ArrayTy && len(items) != typ.Size {
		return nil, fmt.Errorf("%s needs %d elements, got %d", typ.String(), typ.Size, len(items))
	}

	var list reflect.Value
	if typ.T == abi.ArrayTy {
		list = reflect.New(typ.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(typ.GetType(), len(items), len(items))
	}

	for i, item := range items {
		value, err := ConvertArgument(elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(value))
	}
	return list.Interface(), nil
}

var _ usecase.ConstructorEncoder = (*ArgumentEncoder)(nil)
