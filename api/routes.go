package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/nandervang/consultant-time-track-sub001/internal/handlers/v1/cashflow"
	"github.com/nandervang/consultant-time-track-sub001/internal/handlers/v1/entry"
	"github.com/nandervang/consultant-time-track-sub001/internal/handlers/v1/status"
	"github.com/nandervang/consultant-time-track-sub001/internal/logging"
	"github.com/nandervang/consultant-time-track-sub001/internal/operator"
	"github.com/nandervang/consultant-time-track-sub001/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()
	humaAPI := humago.New(mux, huma.DefaultConfig("consultant-time-track", "1.0.0"))

	cashflow.NewGetProjectionHandler(r.Service.Projection).Register(humaAPI)
	entry.NewCreateEntryHandler(r.Operator).Register(humaAPI)

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
