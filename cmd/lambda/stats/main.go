package main

import (
	"context"

	"park-stats-api/internal/handlers"
	"park-stats-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Convert API Gateway event to generic request
	req := lambda.NewRequestFromAPIGateway(event)

	var resp *lambda.Response

	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		resp, err = handlers.FallbackResponse(err)
	} else {
		// Every path and method is answered with stats
		resp, err = handlers.NewStatsHandler(container.StatsService).HandleGet(ctx, req)
	}

	if err != nil {
		logrus.WithError(err).Error("Failed to encode stats response")
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}

	return resp.ToAPIGateway(), nil
}

func main() {
	awslambda.Start(handler)
}
