package validate

import (
	"errors"
	"fmt"
	"sync"

	"SchoolDesk/entity"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct validates tagged fields and folds the first violation into the
// domain validation kind, so callers never see validator internals.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return entity.Validationf("field %q fails %q", first.Field(), first.Tag())
	}
	return fmt.Errorf("%w: %v", entity.ErrValidation, err)
}
