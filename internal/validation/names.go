package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// NamePattern определяет допустимый формат имени клиента или сущности
// Латинские буквы, цифры, нижнее подчеркивание и дефис.
// Точка и кавычки запрещены: имя встраивается в имя подписки и в фильтр.
var NamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const (
	// MaxNameLen максимальная длина имени.
	// Имя подписки "<client>.<entity>" должно уложиться в 50 символов брокера.
	MaxNameLen = 24

	// MaxSubscriptionNameLen максимальная длина имени подписки
	MaxSubscriptionNameLen = 50
)

// ErrInvalidName is returned for names that cannot be used for routing
var ErrInvalidName = errors.New("invalid name")

// ValidateName проверяет имя клиента или сущности
func ValidateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidName, kind)
	}

	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidName, kind, MaxNameLen)
	}

	if !NamePattern.MatchString(name) {
		return fmt.Errorf("%w: %s %q can only contain letters (a-z, A-Z), numbers (0-9), underscores (_) and hyphens (-)",
			ErrInvalidName, kind, name)
	}

	return nil
}

// ValidateSubscriptionName проверяет имя подписки: одно или два имени через точку
func ValidateSubscriptionName(name string) error {
	if len(name) > MaxSubscriptionNameLen {
		return fmt.Errorf("%w: subscription name must not exceed %d characters", ErrInvalidName, MaxSubscriptionNameLen)
	}
	for i, part := range strings.Split(name, ".") {
		if i > 1 {
			return fmt.Errorf("%w: subscription name %q has more than two parts", ErrInvalidName, name)
		}
		if err := ValidateName("subscription name part", part); err != nil {
			return err
		}
	}
	return nil
}
