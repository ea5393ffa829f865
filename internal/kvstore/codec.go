package kvstore

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// wireValue is one attribute in DynamoDB JSON, e.g. {"S":"abc"} or {"L":[{"S":"x"}]}.
type wireValue struct {
	S    *string               `json:"S,omitempty"`
	N    *string               `json:"N,omitempty"`
	BOOL *bool                 `json:"BOOL,omitempty"`
	NULL *bool                 `json:"NULL,omitempty"`
	SS   []string              `json:"SS,omitempty"`
	NS   []string              `json:"NS,omitempty"`
	L    *[]wireValue          `json:"L,omitempty"`
	M    *map[string]wireValue `json:"M,omitempty"`
}

// EncodeItem serializes item as DynamoDB JSON so non-DynamoDB backends keep
// the attribute types (a number stays a number string, a list stays a list).
func EncodeItem(item Item) ([]byte, error) {
	wire, err := encodeMap(item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

// DecodeItem is the inverse of EncodeItem.
func DecodeItem(data []byte) (Item, error) {
	var wire map[string]wireValue
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return decodeMap(wire)
}

func encodeMap(item Item) (map[string]wireValue, error) {
	out := make(map[string]wireValue, len(item))
	for name, av := range item {
		w, err := encodeValue(av)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = w
	}
	return out, nil
}

func encodeValue(av types.AttributeValue) (wireValue, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return wireValue{S: &v.Value}, nil
	case *types.AttributeValueMemberN:
		return wireValue{N: &v.Value}, nil
	case *types.AttributeValueMemberBOOL:
		return wireValue{BOOL: &v.Value}, nil
	case *types.AttributeValueMemberNULL:
		return wireValue{NULL: &v.Value}, nil
	case *types.AttributeValueMemberSS:
		return wireValue{SS: v.Value}, nil
	case *types.AttributeValueMemberNS:
		return wireValue{NS: v.Value}, nil
	case *types.AttributeValueMemberL:
		list := make([]wireValue, 0, len(v.Value))
		for i, el := range v.Value {
			w, err := encodeValue(el)
			if err != nil {
				return wireValue{}, fmt.Errorf("index %d: %w", i, err)
			}
			list = append(list, w)
		}
		return wireValue{L: &list}, nil
	case *types.AttributeValueMemberM:
		m, err := encodeMap(v.Value)
		if err != nil {
			return wireValue{}, err
		}
		return wireValue{M: &m}, nil
	default:
		return wireValue{}, fmt.Errorf("unsupported attribute type %T", av)
	}
}

func decodeMap(wire map[string]wireValue) (Item, error) {
	out := make(Item, len(wire))
	for name, w := range wire {
		av, err := decodeValue(w)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = av
	}
	return out, nil
}

func decodeValue(w wireValue) (types.AttributeValue, error) {
	switch {
	case w.S != nil:
		return &types.AttributeValueMemberS{Value: *w.S}, nil
	case w.N != nil:
		return &types.AttributeValueMemberN{Value: *w.N}, nil
	case w.BOOL != nil:
		return &types.AttributeValueMemberBOOL{Value: *w.BOOL}, nil
	case w.NULL != nil:
		return &types.AttributeValueMemberNULL{Value: *w.NULL}, nil
	case w.SS != nil:
		return &types.AttributeValueMemberSS{Value: w.SS}, nil
	case w.NS != nil:
		return &types.AttributeValueMemberNS{Value: w.NS}, nil
	case w.L != nil:
		list := make([]types.AttributeValue, 0, len(*w.L))
		for i, el := range *w.L {
			av, err := decodeValue(el)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			list = append(list, av)
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	case w.M != nil:
		m, err := decodeMap(*w.M)
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	default:
		return nil, fmt.Errorf("attribute value has no type")
	}
}
