package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldStep     = "ai_step"
)

// Fields turns key/value pairs into zap string fields. Pairs with a blank key
// or value are dropped, and a trailing key without a value is ignored.
func Fields(pairs ...string) []zap.Field {
	result := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key := strings.TrimSpace(pairs[i])
		value := strings.TrimSpace(pairs[i+1])
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// With attaches fields to the logger. A nil logger becomes a no-op one.
func With(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithProvider tags every entry with the AI provider and model.
func WithProvider(logger *zap.Logger, provider, model string) *zap.Logger {
	return With(logger, Fields(FieldProvider, provider, FieldModel, model)...)
}

func Step(step string) zap.Field {
	return zap.String(FieldStep, step)
}
