package comfyui

import (
	"context"
	"fmt"

	"github.com/viant/scy"
)

// ResolveAuthentication loads the backend Authorization header value from an
// encrypted secret resource, e.g. a blowfish-protected file. It keeps
// credentials out of plain configuration.
func ResolveAuthentication(ctx context.Context, sourceURL, key string) (string, error) {
	resource := scy.NewResource(nil, sourceURL, key)
	secret, err := scy.New().Load(ctx, resource)
	if err != nil {
		return "", fmt.Errorf("failed to load backend authentication from %s: %w", sourceURL, err)
	}
	return secret.String(), nil
}
