package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nandervang/consultant-time-track-sub001/api"
	"github.com/nandervang/consultant-time-track-sub001/internal/cache"
	"github.com/nandervang/consultant-time-track-sub001/internal/config"
	"github.com/nandervang/consultant-time-track-sub001/internal/logging"
	"github.com/nandervang/consultant-time-track-sub001/internal/operator"
	"github.com/nandervang/consultant-time-track-sub001/internal/service"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("consultant-time-track starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)
	projectionCache := cache.New(envConfig.ProjectionCacheTTL)
	svc := service.NewService(dbStorage, projectionCache, envConfig)

	op := operator.NewOperatorDelegator(dbStorage, projectionCache, 2)
	op.Start()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     "9446",
			Service:  svc,
			Operator: op,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
