package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/registry"
)

type Client struct {
	t    *testing.T
	Impl struct {
		Ping              func(ctx context.Context) error
		ListModels        func(ctx context.Context) ([]domain.Model, error)
		ListModelVersions func(ctx context.Context, modelName string) ([]domain.ModelVersion, error)
		ModelSourceURI    func(ctx context.Context, modelName string, version string) (string, error)
		Close             func()
	}
	Calls struct {
		Close int
	}
}

var _ registry.Client = &Client{}

func NewClient(t *testing.T) *Client {
	return &Client{t: t}
}

func (m *Client) Ping(ctx context.Context) error {
	if m.Impl.Ping != nil {
		return m.Impl.Ping(ctx)
	}
	m.t.Fatal("should not be called: Ping")
	return nil
}

func (m *Client) ListModels(ctx context.Context) ([]domain.Model, error) {
	if m.Impl.ListModels != nil {
		return m.Impl.ListModels(ctx)
	}
	m.t.Fatal("should not be called: ListModels")
	return nil, nil
}

func (m *Client) ListModelVersions(ctx context.Context, modelName string) ([]domain.ModelVersion, error) {
	if m.Impl.ListModelVersions != nil {
		return m.Impl.ListModelVersions(ctx, modelName)
	}
	m.t.Fatal("should not be called: ListModelVersions")
	return nil, nil
}

func (m *Client) ModelSourceURI(ctx context.Context, modelName string, version string) (string, error) {
	if m.Impl.ModelSourceURI != nil {
		return m.Impl.ModelSourceURI(ctx, modelName, version)
	}
	m.t.Fatal("should not be called: ModelSourceURI")
	return "", nil
}

func (m *Client) Close() {
	m.Calls.Close += 1
	if m.Impl.Close != nil {
		m.Impl.Close()
	}
}

type Dialer struct {
	t    *testing.T
	Impl struct {
		Dial func(ctx context.Context, projectName string) (registry.Client, error)
	}
	Calls struct {
		Dial []string
	}
}

var _ registry.Dialer = &Dialer{}

func NewDialer(t *testing.T) *Dialer {
	return &Dialer{t: t}
}

func (m *Dialer) Dial(ctx context.Context, projectName string) (registry.Client, error) {
	m.Calls.Dial = append(m.Calls.Dial, projectName)
	if m.Impl.Dial != nil {
		return m.Impl.Dial(ctx, projectName)
	}
	m.t.Fatal("should not be called: Dial")
	return nil, nil
}
