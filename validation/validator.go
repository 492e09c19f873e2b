package validation

import (
	"context"
	"sync"

	"github.com/Swochhanda14/frontbooth/cache"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CustomValidator is a global validator instance used by the package-level tag rules.
// Im aware that this is not the best practice, but for what we need, it is sufficient.
var (
	CustomValidator *validator.Validate
	once            sync.Once

	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// InitValidator sets the global validator instance to the one provided ONCE.
func InitValidator(v *validator.Validate) {
	once.Do(func() {
		zap.L().Debug("Initializing default validator")
		CustomValidator = v
	})
}

// initDefaultValidator initializes the global validator with a default instance.
func initDefaultValidator() {
	InitValidator(validator.New())
}

// Engine bundles the go-playground validator used by tag rules with the
// pattern cache used by pattern rules. One Engine is shared by every form.
type Engine struct {
	validator *validator.Validate
	patterns  *cache.PatternCache
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithPatternCache replaces the engine's pattern cache.
func WithPatternCache(patterns *cache.PatternCache) EngineOption {
	return func(e *Engine) {
		if patterns != nil {
			e.patterns = patterns
		}
	}
}

// NewEngine creates an Engine around v. A nil v gets a fresh validator.
func NewEngine(v *validator.Validate, opts ...EngineOption) *Engine {
	if v == nil {
		v = validator.New()
	}
	engine := &Engine{
		validator: v,
		patterns:  cache.NewPatternCache(nil),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Default returns the process wide Engine built on CustomValidator.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		if CustomValidator == nil {
			zap.L().Debug("CustomValidator is nil, initializing default validator")
			initDefaultValidator()
		}
		defaultEngine = NewEngine(CustomValidator)
	})
	return defaultEngine
}

// Validator exposes the underlying go-playground validator, e.g. to register custom tags.
func (e *Engine) Validator() *validator.Validate {
	return e.validator
}

// Patterns exposes the engine's pattern cache.
func (e *Engine) Patterns() *cache.PatternCache {
	return e.patterns
}

// Tag builds a rule evaluating a go-playground validator tag expression against the value.
func (e *Engine) Tag(tag, message string) Rule {
	v := e.validator
	return Rule{
		Name:      "tag:" + tag,
		Message:   defaultMessage(message, "Failed on validation tag '%s'", tag),
		SkipEmpty: true,
		Test: func(value any, _ Lookup) bool {
			if err := v.Var(value, tag); err != nil {
				zap.L().Debug("Tag rule failed", zap.String("tag", tag), zap.Error(err))
				return false
			}
			return true
		},
	}
}

// Pattern builds a rule requiring the whole string to match expr.
func (e *Engine) Pattern(ctx context.Context, expr, message string) (Rule, error) {
	compiled, err := e.patterns.Compile(ctx, anchor(expr))
	if err != nil {
		return Rule{}, err
	}
	return patternRule(compiled, message), nil
}
