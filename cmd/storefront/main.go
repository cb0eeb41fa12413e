package main

import (
	"log"
	"net/http"
	"os"

	"github.com/arkade-01/arkID/internal/api"
	"github.com/arkade-01/arkID/internal/checkout"
	"github.com/arkade-01/arkID/internal/config"
	"github.com/arkade-01/arkID/internal/handlers"
	"github.com/arkade-01/arkID/internal/router"
	"github.com/arkade-01/arkID/internal/utils"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Env)
	client := api.New(cfg.BackendAPIURL, logger)
	discount := checkout.NewDiscount(client, logger)
	orders := checkout.NewOrders(client, logger)

	h := handlers.NewHandler(discount, orders, cfg, logger)
	muxRouter := router.New(h)

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := httpadapter.NewV2(muxRouter)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	logger.Info("storefront_listening", map[string]interface{}{"port": cfg.Port})
	if err := http.ListenAndServe(":"+cfg.Port, muxRouter); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
