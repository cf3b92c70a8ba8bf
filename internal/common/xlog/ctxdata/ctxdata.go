// Package ctxdata stores request scoped values that every log line carries.
package ctxdata

import "context"

type ctxKey struct{}

type Data struct {
	CorrelationId string
	JobName       string
}

type Setter func(*Data)

func SetCorrelationId(id string) Setter {
	return func(d *Data) { d.CorrelationId = id }
}

func SetJobName(name string) Setter {
	return func(d *Data) { d.JobName = name }
}

// Sets returns a copy of ctx carrying the current data with the setters applied.
func Sets(ctx context.Context, setters ...Setter) context.Context {
	d := get(ctx)
	for _, s := range setters {
		s(&d)
	}
	return context.WithValue(ctx, ctxKey{}, d)
}

func GetCorrelationId(ctx context.Context) string {
	return get(ctx).CorrelationId
}

func GetJobName(ctx context.Context) string {
	return get(ctx).JobName
}

func get(ctx context.Context) Data {
	if ctx == nil {
		return Data{}
	}
	d, _ := ctx.Value(ctxKey{}).(Data)
	return d
}
