package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain/image"
)

type Builder struct {
	t    *testing.T
	Impl struct {
		BuildAndPush func(ctx context.Context, spec image.BuildSpec) error
	}
	Calls struct {
		BuildAndPush []image.BuildSpec
	}
}

var _ image.Builder = &Builder{}

func NewBuilder(t *testing.T) *Builder {
	return &Builder{t: t}
}

func (m *Builder) BuildAndPush(ctx context.Context, spec image.BuildSpec) error {
	m.Calls.BuildAndPush = append(m.Calls.BuildAndPush, spec)
	if m.Impl.BuildAndPush != nil {
		return m.Impl.BuildAndPush(ctx, spec)
	}
	m.t.Fatal("should not be called: BuildAndPush")
	return nil
}
