// Package gcp resolves secrets from Google Cloud Secret Manager.
package gcp

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/bornholm/hostscan/pkg/secret"
	"github.com/googleapis/gax-go/v2"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

type Provider struct {
	projectID string
	client    accessor
}

// Get implements secret.Provider.
func (p *Provider) Get(ctx context.Context, name string) (string, error) {
	fullName, err := p.fullSecretName(name)
	if err != nil {
		return "", errors.WithStack(err)
	}

	result, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fullName,
	})
	if err != nil {
		return "", errors.Wrapf(translateError(err), "could not access secret '%s'", fullName)
	}

	return string(result.GetPayload().GetData()), nil
}

func (p *Provider) Close() error {
	if err := p.client.Close(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// fullSecretName expands a short secret name into its latest version
// resource name. Names already starting with "projects/" are kept as is.
func (p *Provider) fullSecretName(name string) (string, error) {
	if strings.HasPrefix(name, "projects/") {
		if !strings.Contains(name, "/versions/") {
			return name + "/versions/latest", nil
		}
		return name, nil
	}

	if p.projectID == "" {
		return "", errors.Errorf("cannot resolve secret '%s': project id is unspecified", name)
	}

	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.projectID, name), nil
}

func translateError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return errors.Wrap(secret.ErrNotFound, err.Error())
	case codes.PermissionDenied, codes.Unauthenticated:
		return errors.Wrap(secret.ErrAccessDenied, err.Error())
	default:
		return errors.WithStack(err)
	}
}

func NewProvider(ctx context.Context, projectID string, opts ...option.ClientOption) (*Provider, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create secret manager client")
	}

	return &Provider{
		projectID: projectID,
		client:    client,
	}, nil
}

var _ secret.Provider = &Provider{}
