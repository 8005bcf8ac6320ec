package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

const (
	WarmupSource = "warmup"

	// WarmupDelay is how long a warmup invocation holds its instance, so that
	// concurrent child invocations land on other instances.
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled event payload for warmup.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is the body returned by warmup invocations.
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
	ClientsReady    bool   `json:"clientsReady"`
}

// invoker is the subset of the Lambda client used for self-invocation.
type invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// IsWarmupEvent checks if the event is a warmup event.
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var warmup WarmupEvent
	if err := json.Unmarshal(event, &warmup); err != nil {
		return nil, false
	}
	if warmup.Source != WarmupSource {
		return nil, false
	}
	if warmup.Concurrency < 0 {
		warmup.Concurrency = 0
	}
	return &warmup, true
}

// HandleWarmup builds the outbound clients so the next real request skips
// their construction, then optionally self-invokes to warm more instances.
func HandleWarmup(ctx context.Context, warmup *WarmupEvent) (interface{}, error) {
	_, buildErr := handlers.Get(ctx)
	if buildErr != nil {
		slog.Warn("[Warmup] Handler not ready", slog.String("error", buildErr.Error()))
	}

	instancesWarmed := 1

	if warmup.Concurrency > 0 {
		client, err := newInvoker(ctx)
		if err == nil {
			var accepted int
			accepted, err = selfInvoke(ctx, client, os.Getenv("AWS_LAMBDA_FUNCTION_NAME"), warmup.Concurrency)
			instancesWarmed += accepted
		}
		if err != nil {
			slog.Warn("[Warmup] Self-invoke failed", slog.String("error", err.Error()))
		}
	}

	time.Sleep(WarmupDelay)

	body, _ := json.Marshal(WarmupResponse{
		Status:          "warm",
		InstancesWarmed: instancesWarmed,
		ClientsReady:    buildErr == nil,
	})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func newInvoker(ctx context.Context) (invoker, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return lambdasdk.NewFromConfig(cfg), nil
}

// selfInvoke fans out count asynchronous warmup invocations of functionName
// and returns how many Lambda accepted. Children carry concurrency 0.
func selfInvoke(ctx context.Context, client invoker, functionName string, count int) (int, error) {
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return 0, err
	}

	results := make(chan error, count)
	for i := 0; i < count; i++ {
		go func() {
			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			results <- err
		}()
	}

	accepted := 0
	var firstErr error
	for i := 0; i < count; i++ {
		if err := <-results; err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("invoke %s: %w", functionName, err)
			}
			continue
		}
		accepted++
	}
	return accepted, firstErr
}
