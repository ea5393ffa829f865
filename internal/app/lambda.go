package app

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"
)

// LambdaHandler handles API Gateway HTTP API (payload v2) events.
type LambdaHandler func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// Lambda serves the same Fiber application as HTTP behind API Gateway.
// Requests arriving on a named stage are routed without the stage prefix.
func (a *App) Lambda() (LambdaHandler, error) {
	server, err := a.HTTP()
	if err != nil {
		return nil, err
	}
	adapter := fiberadapter.New(server)
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return adapter.ProxyWithContextV2(ctx, stripStage(req))
	}, nil
}

func stripStage(req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPRequest {
	stage := req.RequestContext.Stage
	if stage == "" || stage == "$default" {
		return req
	}
	prefix := "/" + stage
	req.RawPath = trimStage(req.RawPath, prefix)
	req.RequestContext.HTTP.Path = trimStage(req.RequestContext.HTTP.Path, prefix)
	return req
}

func trimStage(path, prefix string) string {
	if path == prefix {
		return "/"
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix):]
	}
	return path
}
