package di

import (
	"context"
	"fmt"

	"todos-backend/application/commands/bus"
	commandhandlers "todos-backend/application/commands/handlers"
	"todos-backend/application/ports"
	querybus "todos-backend/application/queries/bus"
	queryhandlers "todos-backend/application/queries/handlers"
	"todos-backend/infrastructure/config"
	"todos-backend/infrastructure/messaging/eventbridge"
	"todos-backend/infrastructure/persistence/dynamodb"
	"todos-backend/infrastructure/persistence/memory"
	"todos-backend/interfaces/http/rest"
	"todos-backend/interfaces/http/rest/middleware"
	"todos-backend/pkg/auth"
	pkgerrors "todos-backend/pkg/errors"
	"todos-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const serviceName = "todos-backend"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = level

	return zapCfg.Build(zap.Fields(zap.String("service", serviceName)))
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.TableRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideCircuitBreaker creates the breaker guarding table access
func ProvideCircuitBreaker(logger *zap.Logger) *gobreaker.CircuitBreaker {
	return dynamodb.NewCircuitBreaker(dynamodb.DefaultBreakerConfig("dynamodb-todos"), logger)
}

// ProvideTodoRepository selects the repository named by STORE_DRIVER
func ProvideTodoRepository(
	cfg *config.Config,
	client *awsdynamodb.Client,
	breaker *gobreaker.CircuitBreaker,
	logger *zap.Logger,
) ports.TodoRepository {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Info("Using in-memory todo store")
		return memory.NewTodoRepository()
	}

	logger.Info("Using DynamoDB todo store",
		zap.String("table", cfg.TableName()),
		zap.String("region", cfg.TableRegion),
	)
	return dynamodb.NewTodoRepository(client, cfg.TableName(), breaker, logger)
}

// ProvideEventPublisher creates an EventBridge publisher, or a no-op one without a bus
func ProvideEventPublisher(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NewNopPublisher(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics recorder
func ProvideMetrics(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(cfg.MetricsNamespace, nil, logger)
	}
	return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	cfg *config.Config,
	todoRepo ports.TodoRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
		bus.TracingMiddleware(tracer),
	)

	err := commandhandlers.Register(
		commandBus,
		commandhandlers.NewCreateTodoHandler(todoRepo, publisher, logger),
		commandhandlers.NewDeleteTodoHandler(todoRepo, publisher, logger),
		commandhandlers.NewToggleTodoHandler(todoRepo, publisher, cfg.ToggleMaxRetries, logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	todoRepo ports.TodoRepository,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.LoggingMiddleware(logger),
		querybus.MetricsMiddleware(metrics),
		querybus.TracingMiddleware(tracer),
	)

	err := queryhandlers.Register(
		queryBus,
		queryhandlers.NewListTodosHandler(todoRepo, logger),
		queryhandlers.NewGetTodoHandler(todoRepo, logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}

	return queryBus, nil
}

// ProvideErrorHandler creates the HTTP error renderer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, pkgerrors.StatusMode(cfg.ErrorStatusMode), cfg.Debug)
}

// ProvideIdentityResolver selects how callers are identified
func ProvideIdentityResolver(cfg *config.Config) (middleware.IdentityResolver, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		validator, err := auth.NewJWTValidator(auth.JWTConfig{
			SigningMethod: "HS256",
			SecretKey:     cfg.JWTSecret,
			Issuer:        cfg.JWTIssuer,
		})
		if err != nil {
			return nil, err
		}
		return middleware.JWTIdentity(validator), nil
	case config.AuthModeHeader:
		return middleware.HeaderIdentity(), nil
	default:
		return middleware.GatewayIdentity(), nil
	}
}

// ProvideRateLimiter creates the per-user limiter, or nil when limiting is off
func ProvideRateLimiter(cfg *config.Config) *auth.UserRateLimiter {
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}
	return auth.NewUserRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	identity middleware.IdentityResolver,
	limiter *auth.UserRateLimiter,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(commandBus, queryBus, errorHandler, rest.RouterOptions{
		Identity:     identity,
		AuthRequired: cfg.AuthRequired,
		RateLimiter:  limiter,
	}, logger)
}
