package main

import (
	"context"
	"log/slog"
	"os"

	restate "github.com/restatedev/sdk-go"
	"github.com/restatedev/sdk-go/server"

	"github.com/leowmjw/rust-temporal-demos/internal/config"
	"github.com/leowmjw/rust-temporal-demos/internal/database"
	"github.com/leowmjw/rust-temporal-demos/internal/order"
	"github.com/leowmjw/rust-temporal-demos/internal/payments"
)

func main() {
	cfg := config.New()

	ledger := payments.Ledger{}
	if cfg.DatabaseURI != "" {
		db, err := database.NewDB(cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(context.Background(), db)

		if err := database.InitSchema(db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
		ledger.Store = payments.NewStore(db)
		slog.Info("ledger backed by Postgres")
	} else {
		slog.Info("ledger using in-memory sample data")
	}

	srv := server.NewRestate().
		Bind(restate.Reflect(order.Order{})).
		Bind(restate.Reflect(order.PaymentGateway{})).
		Bind(restate.Reflect(order.Notifier{})).
		Bind(restate.Reflect(payments.PaymentBatch{})).
		Bind(restate.Reflect(payments.PaymentRun{})).
		Bind(restate.Reflect(payments.BatchScheduler{})).
		Bind(restate.Reflect(ledger))

	slog.Info("starting worker", "address", cfg.WorkerAddress)
	if err := srv.Start(context.Background(), cfg.WorkerAddress); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
