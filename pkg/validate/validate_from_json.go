package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

// ParametersFromJSON — строгий разбор параметров (неизвестные поля запрещены) и их валидация.
func ParametersFromJSON(ctx context.Context, v ports.ParametersValidator, raw []byte) (*domain.Parameters, error) {
	var params domain.Parameters
	if err := DecodeStrict(raw, &params); err != nil {
		return nil, err
	}
	if err := v.Validate(ctx, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// DecodeStrict — ровно одно JSON-значение без неизвестных полей.
func DecodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrInvalidParameters, err)
	}
	// гарантируем отсутствие данных после первого значения
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid json: trailing data", ErrInvalidParameters)
	}
	return nil
}
