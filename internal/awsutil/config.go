// Package awsutil provides utilities for loading AWS configuration.
package awsutil

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"claimsapi/internal/config"
)

// Load loads the AWS configuration, using a custom endpoint if one is configured.
// The SDK retryer is disabled: every DynamoDB, S3 and Lambda call is a single attempt
// and callers own any outer retry policy.
// The returned endpoint is non-empty when an override is active.
func Load(ctx context.Context, c config.AWSConfig) (aws.Config, string, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(c.Region),
		awsCfg.WithHTTPClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}),
		awsCfg.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}

	endpoint := c.EndpointURL
	if endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, r string, _ ...any) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               endpoint,
				HostnameImmutable: true,
				PartitionID:       "aws",
			}, nil
		})
		opts = append(opts, awsCfg.WithEndpointResolverWithOptions(resolver))
	}

	cfg, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	return cfg, endpoint, err
}
