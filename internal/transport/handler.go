package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/goodnatureofminers/tta-backend/internal/near/report"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

type loggerKey struct{}

// Handler serves the CSV report endpoints.
type Handler struct {
	reports  ReportBuilder
	balances BalancesBuilder
	sink     SinkConfig
	logger   *zap.Logger
}

// NewHandler returns a Handler instance.
func NewHandler(reports ReportBuilder, balances BalancesBuilder, sink SinkConfig, logger *zap.Logger) (*Handler, error) {
	if reports == nil || balances == nil {
		return nil, errors.New("report builders are required")
	}
	if logger == nil {
		return nil, errors.New("handler logger is required")
	}
	return &Handler{
		reports:  reports,
		balances: balances,
		sink:     sink.withDefaults(),
		logger:   logger.Named("http"),
	}, nil
}

// Router registers the report, balances and health routes.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.withRequestID)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/tta", h.HandleReport).Methods(http.MethodGet)
	r.HandleFunc("/balances", h.HandleBalances).Methods(http.MethodGet)
	return r
}

func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		logger := h.logger.With(zap.String("request_id", id))
		ctx := context.WithValue(r.Context(), loggerKey{}, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) loggerFor(r *http.Request) *zap.Logger {
	if logger, ok := r.Context().Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return h.logger
}

// HandleHealth reports server health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleReport streams the transaction report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFor(r)
	req, err := parseReportRequest(r.URL.Query())
	if err != nil {
		badRequest(w, logger, err)
		return
	}
	logger.Info("transaction report requested",
		zap.Strings("accounts", model.Strings(req.Accounts)),
		zap.Time("start", req.TimeRange.Start),
		zap.Time("end", req.TimeRange.End),
		zap.Bool("include_balances", req.IncludeBalances),
	)
	h.stream(w, r, logger, reportFilename("tta-report", req.TimeRange), func(ctx context.Context, sink report.Sink) error {
		return h.reports.Build(ctx, req, sink)
	})
}

// HandleBalances streams the balances report.
func (h *Handler) HandleBalances(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerFor(r)
	req, err := parseBalancesRequest(r.URL.Query())
	if err != nil {
		badRequest(w, logger, err)
		return
	}
	logger.Info("balances report requested",
		zap.Strings("accounts", model.Strings(req.Accounts)),
		zap.Time("start", req.TimeRange.Start),
		zap.Time("end", req.TimeRange.End),
	)
	h.stream(w, r, logger, reportFilename("balances-report", req.TimeRange), func(ctx context.Context, sink report.Sink) error {
		return h.balances.Build(ctx, req, sink)
	})
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request, logger *zap.Logger, filename string, build func(context.Context, report.Sink) error) {
	ctx := r.Context()
	sink := newCSVSink(w, filename, h.sink, logger)
	sink.start(ctx)

	err := build(ctx, sink)
	if closeErr := sink.close(); err == nil {
		err = closeErr
	}

	switch {
	case err == nil:
		sink.finish(nil)
		logger.Info("report streamed")
	case !sink.committed:
		if ctx.Err() != nil {
			logger.Info("client went away before the report started", zap.Error(err))
			return
		}
		logger.Error("report failed", zap.Error(err))
		http.Error(w, "report failed: "+failureReason(err), http.StatusInternalServerError)
	default:
		logger.Error("report stream cut short", zap.Error(err))
		sink.finish(err)
	}
}

func badRequest(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Info("rejected request", zap.Error(err))
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// failureReason flattens an error into a single line suitable for a header value.
func failureReason(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
