package secret

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// Resolver reads secret payloads from GCP Secret Manager.
type Resolver struct {
	client *secretmanager.Client
}

func NewResolver(ctx context.Context, opts ...option.ClientOption) (*Resolver, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &Resolver{client: client}, nil
}

// Access returns the payload of the named secret. name may be a full version
// path or a secret path, in which case the latest version is read.
func (r *Resolver) Access(ctx context.Context, name string) (string, error) {
	result, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: VersionName(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func (r *Resolver) Close() error {
	return r.client.Close()
}

// VersionName normalises a secret reference to a version resource name.
func VersionName(name string) string {
	name = strings.TrimSuffix(name, "/")
	if strings.Contains(name, "/versions/") {
		return name
	}
	return name + "/versions/latest"
}

// DatabaseURL returns the DSN to use: the secret payload when secretName is
// set, otherwise fallback.
func DatabaseURL(ctx context.Context, secretName, fallback string, opts ...option.ClientOption) (string, error) {
	if secretName == "" {
		return fallback, nil
	}
	r, err := NewResolver(ctx, opts...)
	if err != nil {
		return "", err
	}
	defer r.Close()

	dsn, err := r.Access(ctx, secretName)
	if err != nil {
		return "", err
	}
	if dsn == "" {
		return "", fmt.Errorf("secret %s is empty", secretName)
	}
	return dsn, nil
}
