package function

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LambdaAPI is the subset of *lambda.Client used by Lambda.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Lambda invokes AWS Lambda functions with the RequestResponse invocation type.
type Lambda struct {
	api    LambdaAPI
	tracer trace.Tracer
}

func NewLambda(api LambdaAPI) *Lambda {
	return &Lambda{api: api, tracer: otel.Tracer("claimsapi/internal/function")}
}

func (l *Lambda) Invoke(ctx context.Context, name string, payload []byte) (*Result, error) {
	ctx, span := l.tracer.Start(ctx, "lambda.invoke", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("faas.invoked_name", name),
			attribute.String("faas.invoked_provider", "aws"),
		))
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &InvocationError{Function: name, Err: err}
	}

	out, err := l.api.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(name),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, &InvocationError{Function: name, Err: err}
	}

	res := &Result{
		StatusCode:    out.StatusCode,
		Payload:       out.Payload,
		FunctionError: aws.ToString(out.FunctionError),
	}
	span.SetAttributes(attribute.Int("faas.status_code", int(res.StatusCode)))
	if res.FunctionError != "" {
		span.SetStatus(codes.Error, res.FunctionError)
	}
	return res, nil
}
