package api

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/config"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/authn"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/category"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/services"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/status"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/transaction"
	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator"
	"github.com/gastos-app/gastos-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Env      *config.Config
	Service  *service.Service
	Operator *operator.OperatorDelegator
	Health   *ledger.SyncHealth
}

func (r *Rest) Serve() {
	mux := r.routes()

	server := http.Server{
		Addr:              ":" + r.Env.HTTPPort,
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

func (r *Rest) routes() *http.ServeMux {
	statusHandler := status.NewHandler(r.Health)
	authnHandler := authn.NewHandler(r.Service.User, r.Operator, r.Env, r.Logger)
	categoryHandler := category.NewHandler(r.Service.Category, r.Operator, r.Logger)
	transactionHandler := transaction.NewHandler(r.Service.Transaction, r.Operator, r.Logger)
	servicesHandler := services.NewHandler(r.Service.Recurring, r.Operator, r.Health, r.Logger)

	open := func(name string, h func(http.ResponseWriter, *http.Request, *logging.LogData) error) http.HandlerFunc {
		return logging.LoggingWrapper(name, r.Logger, h)
	}
	authed := func(name string, h auth.Handler) http.HandlerFunc {
		return logging.LoggingWrapper(name, r.Logger, auth.Wrap(r.Env.JWTSecret, h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /status", open("Status", statusHandler.Handler))

	mux.HandleFunc("POST /api/auth/register", open("Register", authnHandler.Register))
	mux.HandleFunc("POST /api/auth/login", open("Login", authnHandler.Login))
	mux.HandleFunc("PUT /api/auth/theme", authed("UpdateTheme", authnHandler.UpdateTheme))

	mux.HandleFunc("GET /api/categories", authed("ListCategories", categoryHandler.List))
	mux.HandleFunc("GET /api/categories/{id}", authed("GetCategory", categoryHandler.Get))
	mux.HandleFunc("POST /api/categories", authed("CreateCategory", categoryHandler.Create))
	mux.HandleFunc("PUT /api/categories/{id}", authed("UpdateCategory", categoryHandler.Update))
	mux.HandleFunc("DELETE /api/categories/{id}", authed("DeleteCategory", categoryHandler.Delete))

	mux.HandleFunc("GET /api/transactions", authed("ListTransactions", transactionHandler.List))
	mux.HandleFunc("POST /api/transactions/import", authed("ImportTransactions", transactionHandler.Import))
	mux.HandleFunc("GET /api/transactions/{id}", authed("GetTransaction", transactionHandler.Get))
	mux.HandleFunc("POST /api/transactions", authed("CreateTransaction", transactionHandler.Create))
	mux.HandleFunc("PUT /api/transactions/{id}", authed("UpdateTransaction", transactionHandler.Update))
	mux.HandleFunc("DELETE /api/transactions/{id}", authed("DeleteTransaction", transactionHandler.Delete))

	mux.HandleFunc("GET /api/services", authed("ListServices", servicesHandler.List))
	mux.HandleFunc("GET /api/services/records", authed("ListServiceRecords", servicesHandler.ListRecords))
	mux.HandleFunc("POST /api/services/records", authed("CreateServiceRecord", servicesHandler.CreateRecord))
	mux.HandleFunc("PUT /api/services/records/{id}", authed("UpdateServiceRecord", servicesHandler.UpdateRecord))
	mux.HandleFunc("DELETE /api/services/records/{id}", authed("DeleteServiceRecord", servicesHandler.DeleteRecord))
	mux.HandleFunc("GET /api/services/{id}", authed("GetService", servicesHandler.Get))
	mux.HandleFunc("POST /api/services", authed("CreateService", servicesHandler.Create))
	mux.HandleFunc("PUT /api/services/{id}", authed("UpdateService", servicesHandler.Update))
	mux.HandleFunc("DELETE /api/services/{id}", authed("DeleteService", servicesHandler.Delete))

	return mux
}
