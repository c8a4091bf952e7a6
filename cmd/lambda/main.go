package main

import (
	"context"
	"log"
	"time"

	"todos-backend/infrastructure/config"
	"todos-backend/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	// chiLambda wraps the chi router for API Gateway proxy events
	chiLambda *chiadapter.ChiLambda

	container *di.Container
)

// init runs during cold start
func init() {
	coldStartTime := time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	chiRouter, ok := container.Router.Setup().(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.New(chiRouter)

	container.Logger.Info("Lambda cold start completed",
		zap.String("table", cfg.TableName()),
		zap.Duration("duration", time.Since(coldStartTime)),
	)
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container.Logger.Debug("Lambda received request",
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
		zap.String("requestID", req.RequestContext.RequestID),
		zap.Any("event", req),
	)

	resp, err := chiLambda.ProxyWithContext(ctx, req)
	if err != nil {
		container.Logger.Error("Lambda proxy failed", zap.Error(err))
	}
	return resp, err
}

func main() {
	lambda.Start(Handler)
}
