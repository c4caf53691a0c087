package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	restate "github.com/restatedev/sdk-go"
	restateingress "github.com/restatedev/sdk-go/ingress"

	"github.com/leowmjw/rust-temporal-demos/internal/config"
	"github.com/leowmjw/rust-temporal-demos/internal/order"
	"github.com/leowmjw/rust-temporal-demos/internal/payments"
)

// gateway translates plain REST calls into Restate ingress calls. All
// durable behaviour lives behind the ingress; this process holds no state.
type gateway struct {
	client *restateingress.Client
}

func main() {
	cfg := config.New()

	gw := &gateway{client: restateingress.NewClient(cfg.RestateIngressURL)}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/menu", gw.handleMenu)

	r.Route("/orders/{orderID}", func(r chi.Router) {
		r.Get("/", gw.handleGetOrder)
		r.Post("/items", gw.handleAddItem)
		r.Delete("/items", gw.handleRemoveItem)
		r.Put("/delivery", gw.handleSetDelivery)
		r.Post("/checkout", gw.handleCheckout)
		r.Post("/status", gw.handleUpdateStatus)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/batches/{day}", gw.handleRunBatch)
		r.Get("/batches/{day}/report", gw.handleBatchReport)
		r.Post("/scheduler/{name}/start", gw.handleSchedulerStart)
		r.Post("/scheduler/{name}/stop", gw.handleSchedulerStop)
	})

	slog.Info("starting gateway", "address", cfg.GatewayAddress,
		"ingress", cfg.RestateIngressURL)
	if err := http.ListenAndServe(cfg.GatewayAddress, r); err != nil {
		slog.Error("gateway error", "error", err)
		os.Exit(1)
	}
}

func (g *gateway) handleMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, order.Menu())
}

func (g *gateway) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	snapshot, err := restateingress.Object[restate.Void, order.State](
		g.client, order.ServiceName, orderID, "GetStatus").
		Request(r.Context(), restate.Void{})
	if err != nil {
		writeInvocationError(w, "get order status", err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (g *gateway) handleAddItem(w http.ResponseWriter, r *http.Request) {
	g.cartCommand(w, r, "AddItem")
}

func (g *gateway) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	g.cartCommand(w, r, "RemoveItem")
}

func (g *gateway) cartCommand(w http.ResponseWriter, r *http.Request, handler string) {
	orderID := chi.URLParam(r, "orderID")

	var req order.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snapshot, err := restateingress.Object[order.ItemRequest, order.State](
		g.client, order.ServiceName, orderID, handler).
		Request(r.Context(), req)
	if err != nil {
		writeInvocationError(w, handler, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (g *gateway) handleSetDelivery(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req order.DeliveryDetails
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := restateingress.Object[order.DeliveryDetails, restate.Void](
		g.client, order.ServiceName, orderID, "SetDeliveryDetails").
		Request(r.Context(), req); err != nil {
		writeInvocationError(w, "set delivery details", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCheckout fires the checkout signal and returns immediately; the
// payment and fulfilment run durably in the background and outcomes are
// visible via GET /orders/{orderID}.
func (g *gateway) handleCheckout(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	if _, err := restateingress.ObjectSend[restate.Void](
		g.client, order.ServiceName, orderID, "Checkout").
		Send(r.Context(), restate.Void{}); err != nil {
		writeInvocationError(w, "checkout", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (g *gateway) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req order.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snapshot, err := restateingress.Object[order.StatusRequest, order.State](
		g.client, order.ServiceName, orderID, "UpdateStatus").
		Request(r.Context(), req)
	if err != nil {
		writeInvocationError(w, "update status", err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (g *gateway) handleRunBatch(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")

	if _, err := restateingress.WorkflowSend[payments.BatchRequest](
		g.client, payments.BatchService, day, "Run").
		Send(r.Context(), payments.BatchRequest{Day: day}); err != nil {
		writeInvocationError(w, "run batch", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (g *gateway) handleBatchReport(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")

	report, err := restateingress.Workflow[restate.Void, payments.BatchReport](
		g.client, payments.BatchService, day, "GetReport").
		Request(r.Context(), restate.Void{})
	if err != nil {
		writeInvocationError(w, "batch report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (g *gateway) handleSchedulerStart(w http.ResponseWriter, r *http.Request) {
	g.schedulerCommand(w, r, "Start")
}

func (g *gateway) handleSchedulerStop(w http.ResponseWriter, r *http.Request) {
	g.schedulerCommand(w, r, "Stop")
}

func (g *gateway) schedulerCommand(w http.ResponseWriter, r *http.Request, handler string) {
	name := chi.URLParam(r, "name")

	if _, err := restateingress.Object[restate.Void, restate.Void](
		g.client, payments.SchedulerService, name, handler).
		Request(r.Context(), restate.Void{}); err != nil {
		writeInvocationError(w, "scheduler "+handler, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeInvocationError(w http.ResponseWriter, op string, err error) {
	slog.Error("invocation failed", "op", op, "error", err)
	http.Error(w, err.Error(), http.StatusBadGateway)
}
