package config

import (
	"context"
	"fmt"
	"log/slog"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

type SecretSource interface {
	Secret(ctx context.Context, name string) (string, error)
}

type SecretManager struct {
	client  *secretmanager.Client
	project string
}

func NewSecretManager(ctx context.Context, project string) (*SecretManager, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}
	return &SecretManager{client: client, project: project}, nil
}

// Secret returns the latest version of the named secret.
func (s *SecretManager) Secret(ctx context.Context, name string) (string, error) {
	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(s.project, name),
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}
	return string(resp.GetPayload().GetData()), nil
}

func (s *SecretManager) Close() error {
	return s.client.Close()
}

func secretVersionName(project, name string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name)
}

// resolveSecrets fills API keys missing from the environment. Lookup failures
// are logged and leave the key empty.
func resolveSecrets(ctx context.Context, cfg *Config, src SecretSource) {
	targets := []struct {
		name  string
		value *string
	}{
		{cfg.Secrets.GenAIAPIKey, &cfg.GenAIAPIKey},
		{cfg.Secrets.GroqAPIKey, &cfg.GroqAPIKey},
		{cfg.Secrets.YouTubeAPIKey, &cfg.YouTubeAPIKey},
	}

	for _, t := range targets {
		if t.name == "" || *t.value != "" {
			continue
		}
		v, err := src.Secret(ctx, t.name)
		if err != nil {
			slog.Warn("Failed to read secret", "secret", t.name, "error", err)
			continue
		}
		*t.value = v
	}
}
