package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	log "github.com/sirupsen/logrus"

	"github.com/Reece-Nunez/EHR/internal/config"
	"github.com/Reece-Nunez/EHR/internal/email"
	"github.com/Reece-Nunez/EHR/internal/eventstore"
	"github.com/Reece-Nunez/EHR/internal/handlers"
	"github.com/Reece-Nunez/EHR/internal/notify"
	"github.com/Reece-Nunez/EHR/internal/router"
	"github.com/Reece-Nunez/EHR/internal/stripeclient"
)

func main() {
	ctx := context.Background()

	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("config_load_failed")
	}

	stripeClient := stripeclient.New(cfg.StripeSecretKey)

	sender, err := email.New(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("email_sender_init_failed")
	}

	var store eventstore.Store
	if cfg.EventsTableName != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AwsRegion))
		if err != nil {
			logger.WithError(err).Fatal("aws_config_load_failed")
		}
		store = eventstore.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg.EventsTableName)
		logger.WithField("table", cfg.EventsTableName).Info("webhook_dedup_enabled")
	}

	notifier := notify.New(stripeClient, sender, cfg, logger)
	h := handlers.NewHandler(stripeClient, notifier, store, cfg, logger)
	muxRouter := router.New(h)

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		logger.WithField("port", cfg.Port).Info("listening_http")
		if err := http.ListenAndServe(":"+cfg.Port, muxRouter); err != nil {
			logger.WithError(err).Fatal("http_server_failed")
		}
		return
	}

	adapter := httpadapter.NewV2(muxRouter)
	lambda.Start(func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var apiEvent awsevents.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(raw, &apiEvent); err == nil {
			if apiEvent.RequestContext.HTTP.Method != "" {
				return adapter.ProxyWithContext(ctx, apiEvent)
			}
		}
		logger.Error("unrecognized_lambda_event")
		return map[string]string{"status": "ignored"}, nil
	})
}
