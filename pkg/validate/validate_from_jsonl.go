package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

// ParametersFromJSONL — читает по одному набору параметров на строку.
// Пустые строки пропускаются; первая невалидная строка прерывает чтение с её номером в ошибке.
func ParametersFromJSONL(ctx context.Context, v ports.ParametersValidator, r io.Reader) ([]domain.Parameters, error) {
	var out []domain.Parameters

	scanner := bufio.NewScanner(r)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		params, err := ParametersFromJSON(ctx, v, raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, *params)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return out, nil
}
