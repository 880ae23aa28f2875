package main

import (
	"context"
	"log"

	"empsync/internal/aws"
	"empsync/internal/config"
	"empsync/internal/handler"
	"empsync/internal/logging"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap/zapcore"
)

func main() {
	settings := config.FromEnv()

	logger, err := logging.NewJSONLogger(logging.ParseLevel(settings.LogLevel, zapcore.InfoLevel))
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Lambda実行環境ではリージョン・認証情報は環境変数と実行ロールから解決される
	clients, err := aws.NewAwsClients(context.Background(), aws.Context{})
	if err != nil {
		log.Fatalf("AWS設定の読み込みに失敗: %v", err)
	}

	h := &handler.Handler{
		CloudFront: clients.CloudFront(),
		Assets:     clients.MediaPackageVod(),
		Logger:     logger,
	}
	lambda.Start(h.Handle)
}
