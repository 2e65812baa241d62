package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

// Проверка, что ParametersValidator удовлетворяет порту.
var _ ports.ParametersValidator = (*ParametersValidator)(nil)

// ErrInvalidParameters — базовая (sentinel error) ошибка валидации.
var ErrInvalidParameters = errors.New("invalid parameters")

// ParametersValidator — валидация параметров узла по тегам `validate`.
type ParametersValidator struct {
	v *validator.Validate
}

// NewParametersValidator — конструктор. В сообщениях об ошибках используются имена полей из json-тегов.
func NewParametersValidator() *ParametersValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &ParametersValidator{v: v}
}

// Validate — возвращает ErrInvalidParameters с перечнем нарушенных полей.
func (p *ParametersValidator) Validate(ctx context.Context, params *domain.Parameters) error {
	if params == nil {
		return fmt.Errorf("%w: parameters are nil", ErrInvalidParameters)
	}

	err := p.v.StructCtx(ctx, params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidParameters, strings.Join(msgs, "; "))
}

// fieldMessage — "options.readTimeout must be >= 1" вместо "Parameters.options.readTimeout".
func fieldMessage(fe validator.FieldError) string {
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}
