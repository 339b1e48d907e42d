// Package transport exposes the report endpoints over HTTP.
package transport

import (
	"context"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/goodnatureofminers/tta-backend/internal/near/report"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ReportBuilder streams the transaction report into a sink.
	ReportBuilder interface {
		Build(ctx context.Context, req model.ReportRequest, sink report.Sink) error
	}
	// BalancesBuilder streams the balances report into a sink.
	BalancesBuilder interface {
		Build(ctx context.Context, req model.BalancesRequest, sink report.Sink) error
	}
)
