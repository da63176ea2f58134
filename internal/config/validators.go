package config

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/cliptray/internal/colors"
)

// Validator normalizes one configuration value. A rejected value falls back
// to defaultValue; returning an error does the same but is reported as a
// validation failure rather than a bad value.
type Validator func(key, value, defaultValue string) (string, error)

var (
	validatorsMu sync.RWMutex
	validators   = map[string]Validator{}
)

// RegisterValidator attaches v to key. Registering a key twice panics.
func RegisterValidator(key string, v Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, ok := validators[key]; ok {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = v
}

func getValidator(key string) Validator {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	return validators[key]
}

// rejectValue warns about a bad value and keeps the default.
func rejectValue(key, value, defaultValue, want string) (string, error) {
	colors.Warning(fmt.Sprintf("invalid %s value '%s': %s, using default: %s", key, value, want, defaultValue))
	return defaultValue, nil
}

// IntRangeValidator accepts integers in [lo, hi].
func IntRangeValidator(lo, hi int) Validator {
	want := fmt.Sprintf("must be an integer between %d and %d", lo, hi)
	if hi == math.MaxInt {
		want = fmt.Sprintf("must be an integer of at least %d", lo)
	}
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < lo || n > hi {
			return rejectValue(key, value, defaultValue, want)
		}
		return strconv.Itoa(n), nil
	}
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return IntRangeValidator(1, math.MaxInt)
}

// EnumValidator accepts one of values, case-insensitively, and lowercases it.
func EnumValidator(values ...string) Validator {
	sorted := slices.Sorted(slices.Values(values))
	want := "must be one of: " + strings.Join(sorted, ", ")
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(strings.TrimSpace(value))
		if !slices.Contains(sorted, lower) {
			return rejectValue(key, value, defaultValue, want)
		}
		return lower, nil
	}
}

// BoolValidator accepts the spellings normalizeBool understands.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		b := normalizeBool(value)
		if b != "true" && b != "false" {
			return rejectValue(key, value, defaultValue, "must be one of 1, true, yes, on, 0, false, no, off")
		}
		return b, nil
	}
}

func initValidators() {
	for key, v := range map[string]Validator{
		"max_history":       PositiveIntValidator(),
		"poll_interval_ms":  IntRangeValidator(10, 60_000),
		"debounce_ms":       IntRangeValidator(1, 10_000),
		"preview_length":    IntRangeValidator(8, 1_000),
		"dropdown_items":    IntRangeValidator(1, 50),
		"toast_seconds":     IntRangeValidator(1, 60),
		"logging_max_files": PositiveIntValidator(),
		"storage_backend":   EnumValidator("memory", "sqlite"),
		"logging_level":     EnumValidator("debug", "info", "warn", "error"),
		"mouse_enabled":     BoolValidator(),
		"logging_enabled":   BoolValidator(),
		"debug":             BoolValidator(),
		"quiet":             BoolValidator(),
	} {
		RegisterValidator(key, v)
	}
}

func normalizeBool(val string) string {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}
