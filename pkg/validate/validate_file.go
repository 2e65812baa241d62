package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ParametersFromFile — читает параметры выполнений из файла JSON (один набор) или JSONL (несколько).
func ParametersFromFile(ctx context.Context, v ports.ParametersValidator, filePath string, format InputFormat) ([]domain.Parameters, error) {
	// auto по расширению
	if format == FormatAuto || format == "" {
		if strings.EqualFold(filepath.Ext(filePath), ".jsonl") {
			format = FormatJSONL
		} else {
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		params, err := ParametersFromJSON(ctx, v, raw)
		if err != nil {
			return nil, err
		}
		return []domain.Parameters{*params}, nil

	case FormatJSONL:
		return ParametersFromJSONL(ctx, v, file)

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
