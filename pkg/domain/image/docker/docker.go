// Package docker builds prediction-service images with a Docker engine.
package docker

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/google/go-containerregistry/pkg/name"
	mobyregistry "github.com/moby/moby/api/types/registry"
	"github.com/moby/moby/client"

	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	"github.com/modelplane/modelplane/pkg/domain/image"
)

// base image bundling the serving runtime.
const baseImage = "ghcr.io/mlflow/mlflow:v2.9.2"

type builder struct {
	cli *client.Client
}

var _ image.Builder = &builder{}

// New builds a Builder backed by the engine the environment points at.
func New() (image.Builder, error) {
	cli, err := client.New(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("could not create docker client: %w", err)
	}
	return &builder{cli: cli}, nil
}

func (b *builder) BuildAndPush(ctx context.Context, spec image.BuildSpec) error {
	tag, err := name.NewTag(spec.Tag)
	if err != nil {
		return kerr.NewBuildFailedCausedBy(fmt.Sprintf("invalid image tag %s", spec.Tag), err)
	}

	buildContext, err := BuildContext(spec)
	if err != nil {
		return err
	}

	resp, err := b.cli.ImageBuild(ctx, buildContext, client.ImageBuildOptions{
		Tags:       []string{tag.String()},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return kerr.NewBuildFailedCausedBy(fmt.Sprintf("build %s", tag.String()), err)
	}
	defer resp.Body.Close()
	if err := drainBuildStream(resp.Body); err != nil {
		return kerr.NewBuildFailedCausedBy(fmt.Sprintf("build %s", tag.String()), err)
	}

	auth, err := registryAuth(tag.RegistryStr())
	if err != nil {
		return err
	}
	pushResp, err := b.cli.ImagePush(ctx, tag.String(), client.ImagePushOptions{RegistryAuth: auth})
	if err != nil {
		return kerr.NewBuildFailedCausedBy(fmt.Sprintf("push %s", tag.String()), err)
	}
	defer pushResp.Close()
	if err := drainBuildStream(pushResp); err != nil {
		return kerr.NewBuildFailedCausedBy(fmt.Sprintf("push %s", tag.String()), err)
	}
	return nil
}

// the in-cluster registries are unauthenticated; the engine still
// requires a header.
func registryAuth(registry string) (string, error) {
	payload, err := json.Marshal(mobyregistry.AuthConfig{ServerAddress: registry})
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(payload), nil
}

// The engine reports stream items one JSON object per line; a failing
// step shows up as an "error" field, not as a non-2xx response.
func drainBuildStream(r io.Reader) error {
	type item struct {
		Stream      string `json:"stream"`
		Error       string `json:"error"`
		ErrorDetail struct {
			Message string `json:"message"`
		} `json:"errorDetail"`
	}

	dec := json.NewDecoder(r)
	for {
		var it item
		if err := dec.Decode(&it); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if it.Error != "" {
			if it.ErrorDetail.Message != "" {
				return fmt.Errorf("%s", it.ErrorDetail.Message)
			}
			return fmt.Errorf("%s", it.Error)
		}
	}
}

var dockerfileTemplate = template.Must(template.New("Dockerfile").Parse(
	`FROM {{.BaseImage}}

ENV MLFLOW_S3_ENDPOINT_URL={{.StorageEndpoint}}
ENV AWS_ACCESS_KEY_ID={{.StorageAccessKey}}
ENV AWS_SECRET_ACCESS_KEY={{.StorageSecretKey}}
ENV MODEL_URI={{.ModelURI}}

EXPOSE {{.Port}}

CMD ["sh", "-c", "mlflow models serve --model-uri ${MODEL_URI} --host 0.0.0.0 --port {{.Port}} --no-conda --enable-mlserver"]
`))

// BuildContext renders the Dockerfile and wraps it as a tar stream for
// the engine.
func BuildContext(spec image.BuildSpec) (io.Reader, error) {
	dockerfile := bytes.NewBuffer(nil)
	err := dockerfileTemplate.Execute(dockerfile, map[string]any{
		"BaseImage":        baseImage,
		"StorageEndpoint":  spec.StorageEndpoint,
		"StorageAccessKey": spec.StorageAccessKey,
		"StorageSecretKey": spec.StorageSecretKey,
		"ModelURI":         spec.ModelURI,
		"Port":             spec.Port,
	})
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(nil)
	tw := tar.NewWriter(buf)
	err = tw.WriteHeader(&tar.Header{
		Name: "Dockerfile",
		Mode: 0644,
		Size: int64(dockerfile.Len()),
	})
	if err != nil {
		return nil, err
	}
	if _, err := tw.Write(dockerfile.Bytes()); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}
