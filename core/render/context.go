package render

import "context"

type contextKey string

const triggerKey contextKey = "renderTrigger"

// WithTrigger records which widget event caused the render.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey, trigger)
}

// TriggerFrom returns the trigger recorded in ctx.
func TriggerFrom(ctx context.Context) string {
	val := ctx.Value(triggerKey)
	if val == nil {
		return "unknown"
	}
	trigger, ok := val.(string)
	if !ok {
		return "unknown"
	}
	return trigger
}
