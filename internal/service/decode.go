package service

import (
	"reflect"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/pkg/price"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

// decodeHook turns price strings and numbers into decimals and date strings into times.
func decodeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to {
	case decimalType:
		switch v := data.(type) {
		case decimal.Decimal:
			return v, nil
		case string:
			return price.ParseStrict(v)
		default:
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, err
			}
			return decimal.NewFromFloat(f), nil
		}
	case timeType:
		if s, ok := data.(string); ok {
			return dateparse.ParseAny(s)
		}
	}
	return data, nil
}

// decode copies a dict-shaped payload into out. Unknown keys are rejected.
func decode(input map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return reject("invalid payload: %v", err)
	}
	return nil
}

// DecodeProductInput reads a create payload
func DecodeProductInput(input map[string]interface{}) (ProductInput, error) {
	var in ProductInput
	if err := decode(input, &in); err != nil {
		return ProductInput{}, err
	}
	return in, nil
}

// DecodeProductPatch reads an update payload. Keys that are absent stay nil.
func DecodeProductPatch(input map[string]interface{}) (domain.ProductPatch, error) {
	var patch domain.ProductPatch
	if err := decode(input, &patch); err != nil {
		return domain.ProductPatch{}, err
	}
	if v, ok := input["supplier_id"]; ok && v == nil {
		patch.ClearSupplier = true
	}
	return patch, nil
}

func DecodeClientInput(input map[string]interface{}) (ClientInput, error) {
	var in ClientInput
	if err := decode(input, &in); err != nil {
		return ClientInput{}, err
	}
	return in, nil
}

func DecodeClientPatch(input map[string]interface{}) (domain.ClientPatch, error) {
	var patch domain.ClientPatch
	if err := decode(input, &patch); err != nil {
		return domain.ClientPatch{}, err
	}
	return patch, nil
}

func DecodeSupplierInput(input map[string]interface{}) (SupplierInput, error) {
	var in SupplierInput
	if err := decode(input, &in); err != nil {
		return SupplierInput{}, err
	}
	return in, nil
}

func DecodeSupplierPatch(input map[string]interface{}) (domain.SupplierPatch, error) {
	var patch domain.SupplierPatch
	if err := decode(input, &patch); err != nil {
		return domain.SupplierPatch{}, err
	}
	return patch, nil
}

func DecodeAdminInput(input map[string]interface{}) (AdminInput, error) {
	var in AdminInput
	if err := decode(input, &in); err != nil {
		return AdminInput{}, err
	}
	return in, nil
}
