package cmd

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pga-platform/ms-go-paypal/app/controller"
	"github.com/pga-platform/ms-go-paypal/app/gateway"
	"github.com/pga-platform/ms-go-paypal/app/repository"
	"github.com/pga-platform/ms-go-paypal/app/service"
	"github.com/pga-platform/ms-go-paypal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP (Echo) server exposing the PayPal checkout routes.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, paypalService, cleanup := mustCreatePayPalService()
	defer cleanup()

	paypalController := controller.NewPayPalController(paypalService)
	e := setupHTTPServer(paypalController)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithFields(logrus.Fields{
			"service": cfg.App.ServiceName,
			"addr":    httpAddr,
		}).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

func setupHTTPServer(paypalController *controller.PayPalController) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(ensureRequestID())

	e.GET("/health", paypalController.Health)
	e.GET("/packages", paypalController.ListPackages)

	paypal := e.Group("/paypal")
	paypal.GET("/pay/:packageId", paypalController.Pay)
	paypal.GET("/success", paypalController.Success)
	paypal.GET("/cancel", paypalController.Cancel)
	paypal.GET("/payments", paypalController.ListPayments)
	paypal.GET("/payments/:id", paypalController.GetPayment)

	// Provider webhook handlers are not wired up yet; the group is reserved.
	e.Group("/paypal/webhooks")

	return e
}

// ensureRequestID assigns a request id when the caller sent none. The checkout
// flow is browser-driven, so inbound ids cannot be required.
func ensureRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requestID := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderXRequestID))
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx.Response().Header().Set(echo.HeaderXRequestID, requestID)
			return next(ctx)
		}
	}
}

func mustCreatePayPalService() (*config.Config, *service.PayPalService, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	paypalClient := gateway.NewClient(gateway.Config{
		ClientID:       cfg.PayPal.ClientID,
		Secret:         cfg.PayPal.ClientSecret,
		Sandbox:        cfg.PayPal.IsSandbox(),
		BackendBaseURL: cfg.PayPal.BackendBaseURL,
		HTTPTimeout:    cfg.PayPal.HTTPTimeout,
	})

	paypalService := service.NewPayPalService(
		paypalClient,
		repository.NewPackageRepository(db),
		repository.NewPayerRepository(db),
		repository.NewAmountRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewPaymentLogRepository(db),
		cfg.PayPal.IsSandbox(),
	)

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, paypalService, cleanup
}
