// Package app wires configuration into the claim service shared by the
// HTTP server and the Lambda entrypoint.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"claimsapi/internal/awsutil"
	"claimsapi/internal/config"
	"claimsapi/internal/database"
	"claimsapi/internal/database/migration"
	"claimsapi/internal/function"
	"claimsapi/internal/kvstore"
	"claimsapi/internal/repository"
	"claimsapi/internal/repository/kv"
	"claimsapi/internal/service"
	"claimsapi/internal/storage"
)

// App holds the constructed dependencies of a running claims API.
type App struct {
	Config   *config.AppConfig
	Log      *slog.Logger
	Location *time.Location
	Registry *prometheus.Registry
	Store    kvstore.Store
	Blobs    storage.Storage
	Claims   service.ClaimService

	closers []func() error
}

// New builds the claim store, blob store, function invoker, repository and
// service selected by cfg. Call Close to release the store.
func New(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	summaryPolicy, err := repository.ParseFailurePolicy(cfg.Functions.SummaryParsePolicy)
	if err != nil {
		return nil, fmt.Errorf("SUMMARY_PARSE_POLICY: %w", err)
	}
	filesPolicy, err := repository.ParseFailurePolicy(cfg.Functions.FileGenerationPolicy)
	if err != nil {
		return nil, fmt.Errorf("FILE_GENERATION_POLICY: %w", err)
	}

	awsCfg, endpoint, err := awsutil.Load(ctx, cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if endpoint != "" {
		log.Info("aws_endpoint_override", "endpoint", endpoint)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &App{Config: cfg, Log: log, Location: loc, Registry: reg}

	a.Store, err = a.openStore(ctx, awsCfg)
	if err != nil {
		return nil, err
	}
	a.Blobs, err = newBlobs(cfg, awsCfg, endpoint != "")
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	invoker, err := function.NewInstrumented(function.NewLambda(lambda.NewFromConfig(awsCfg)), reg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("register function metrics: %w", err)
	}

	repo := kv.NewClaimKV(a.Store, a.Blobs, invoker, kv.Options{
		Table:                cfg.Store.Table,
		SummarizerName:       cfg.Functions.SummarizerName,
		FileGeneratorName:    cfg.Functions.FileGeneratorName,
		ModelID:              cfg.Functions.ModelID,
		SummaryParsePolicy:   summaryPolicy,
		FileGenerationPolicy: filesPolicy,
		Location:             loc,
		Logger:               log,
	})
	a.Claims = service.NewClaimService(repo, a.Blobs, cfg.PresignTTL())

	log.Info("app_configured",
		"store_backend", cfg.Store.Backend,
		"blob_backend", cfg.BlobBackend,
		"summarizer", cfg.Functions.SummarizerName,
		"file_generator", cfg.Functions.FileGeneratorName,
		"summary_parse_policy", string(summaryPolicy),
		"file_generation_policy", string(filesPolicy),
	)
	return a, nil
}

// Close releases the claim store. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStore(ctx context.Context, awsCfg aws.Config) (kvstore.Store, error) {
	cfg := a.Config
	schema := kvstore.KeySchema{cfg.Store.Table: "claimId"}

	switch cfg.Store.Backend {
	case config.StoreDynamoDB:
		return kvstore.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg.Store.Table), nil

	case config.StoreBolt:
		b, err := kvstore.OpenBolt(cfg.Store.BoltPath, schema)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		a.closers = append(a.closers, b.Close)
		return b, nil

	case config.StorePostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := migration.EnsureMigrated(ctx, db, a.Log, cfg.Database.Host); err != nil {
			_ = a.Close()
			return nil, err
		}
		return kvstore.NewPostgres(db, schema), nil
	}
	return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.Store.Backend)
}

func newBlobs(cfg *config.AppConfig, awsCfg aws.Config, pathStyle bool) (storage.Storage, error) {
	switch cfg.BlobBackend {
	case config.BlobS3:
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			// LocalStack serves buckets on the path, not as subdomains.
			o.UsePathStyle = pathStyle
		})
		return storage.NewS3(client, s3.NewPresignClient(client), cfg.AWS.S3Bucket)

	case config.BlobMinIO:
		s, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("initialize object storage: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported BLOB_BACKEND %q", cfg.BlobBackend)
}
