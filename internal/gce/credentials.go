package gce

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// PubSubScope is the OAuth scope needed to pull and acknowledge messages.
const PubSubScope = "https://www.googleapis.com/auth/pubsub"

// Scopes are requested for credentials shared by the Compute and Pub/Sub
// clients.
var Scopes = []string{compute.ComputeScope, PubSubScope}

// ClientOptions resolves credentials for the Google API clients. With an
// empty credentialsFile, Application Default Credentials are used.
func ClientOptions(ctx context.Context, credentialsFile string) ([]option.ClientOption, error) {
	if credentialsFile == "" {
		creds, err := google.FindDefaultCredentials(ctx, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", credentialsFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", credentialsFile, err)
	}
	return []option.ClientOption{option.WithCredentials(creds)}, nil
}
