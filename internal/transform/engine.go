// Package transform enriches captured items with derived, additive results.
package transform

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/clipmesh/internal/clip"
)

// Transformer is one content enricher. Eligibility is decided from the item's
// content type alone; Transform must not depend on other transformers' output.
type Transformer interface {
	Eligible(ct clip.ContentType) bool
	Transform(content string) (string, error)
	Kind() clip.TransformType
}

// Engine runs transformers in registration order.
type Engine struct {
	transformers []Transformer
	logger       *zap.Logger
	now          func() time.Time
}

// NewEngine creates an engine with the given transformers, in order.
func NewEngine(logger *zap.Logger, transformers ...Transformer) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		transformers: transformers,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Default returns the engine with the built-in transformers:
// NumberFormatter, then TextTransformer.
func Default(logger *zap.Logger) *Engine {
	return NewEngine(logger, NumberFormatter{}, TextTransformer{})
}

// Transformers returns the registered transformers in evaluation order.
func (e *Engine) Transformers() []Transformer {
	return append([]Transformer(nil), e.transformers...)
}

// Apply runs every eligible transformer against item and appends one
// Transformation per success. Failures (including panics) are logged and
// skipped; they never stop the remaining transformers. A transformer whose
// kind cannot be persisted is skipped the same way. Returns the number of
// transformations appended.
func (e *Engine) Apply(item *clip.Item) int {
	applied := 0
	for _, t := range e.transformers {
		if !t.Eligible(item.ContentType) {
			continue
		}
		if _, err := json.Marshal(t.Kind()); err != nil {
			e.logger.Warn("transform skipped: kind not serializable",
				zap.String("transform", t.Kind().String()),
				zap.String("id", item.ID),
				zap.Error(err),
			)
			continue
		}

		result, err := run(t, item.Content)
		if err != nil {
			e.logger.Warn("transform failed",
				zap.String("transform", t.Kind().String()),
				zap.String("id", item.ID),
				zap.Error(err),
			)
			continue
		}

		item.Transformations = append(item.Transformations, clip.Transformation{
			TransformType: t.Kind(),
			Result:        result,
			Timestamp:     e.now(),
		})
		applied++
	}
	return applied
}

// run invokes t.Transform, converting a panic into an error.
func run(t Transformer, content string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transformer panicked: %v", r)
		}
	}()
	return t.Transform(content)
}
