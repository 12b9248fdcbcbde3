package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/saulo-duarte/chronos-quiz/internal/container"
	"github.com/saulo-duarte/chronos-quiz/internal/router"
)

// Sessions live in the memory of one warm Lambda instance.
func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		SessionHandler: c.SessionContainer.Handler,
		AIQuizHandler:  c.AIQuizContainer.Handler,
		QuizHandler:    c.QuizContainer.Handler,
		CORSOrigins:    c.Settings.CORSOrigins,
	})

	adapter := httpadapter.NewV2(handler)
	lambda.Start(adapter.ProxyWithContext)
}
