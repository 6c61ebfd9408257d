package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/api"
	"github.com/gastos-app/gastos-server/internal/config"
	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator"
	"github.com/gastos-app/gastos-server/internal/service"
	"github.com/gastos-app/gastos-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("gastos-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.Open(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.Open")
		return
	}

	svc := service.NewService(dbStorage)
	health := &ledger.SyncHealth{}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.Workers, logger)
	delegator.Start()
	defer delegator.Stop()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Env:      envConfig,
			Service:  svc,
			Operator: delegator,
			Health:   health,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
