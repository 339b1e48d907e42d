package transport

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/tta-backend/internal/near/model"
)

const (
	paramStartDate       = "start_date"
	paramEndDate         = "end_date"
	paramAccounts        = "accounts"
	paramIncludeBalances = "include_balances"

	filenameDateLayout = "2006-01-02"
)

func parseReportRequest(q url.Values) (model.ReportRequest, error) {
	tr, accounts, err := parseWindow(q)
	if err != nil {
		return model.ReportRequest{}, err
	}

	includeBalances := false
	if raw := strings.TrimSpace(q.Get(paramIncludeBalances)); raw != "" {
		includeBalances, err = strconv.ParseBool(raw)
		if err != nil {
			return model.ReportRequest{}, fmt.Errorf("%w: %s must be a boolean, got %q", model.ErrInvalidInput, paramIncludeBalances, raw)
		}
	}

	return model.ReportRequest{
		Accounts:        accounts,
		TimeRange:       tr,
		IncludeBalances: includeBalances,
	}, nil
}

func parseBalancesRequest(q url.Values) (model.BalancesRequest, error) {
	tr, accounts, err := parseWindow(q)
	if err != nil {
		return model.BalancesRequest{}, err
	}
	return model.BalancesRequest{Accounts: accounts, TimeRange: tr}, nil
}

func parseWindow(q url.Values) (model.TimeRange, []model.AccountID, error) {
	start, err := parseDate(q, paramStartDate)
	if err != nil {
		return model.TimeRange{}, nil, err
	}
	end, err := parseDate(q, paramEndDate)
	if err != nil {
		return model.TimeRange{}, nil, err
	}
	tr, err := model.NewTimeRange(start, end)
	if err != nil {
		return model.TimeRange{}, nil, err
	}
	accounts, err := model.ParseAccounts(q.Get(paramAccounts))
	if err != nil {
		return model.TimeRange{}, nil, err
	}
	return tr, accounts, nil
}

func parseDate(q url.Values, name string) (time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", model.ErrInvalidInput, name)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an RFC3339 timestamp, got %q", model.ErrInvalidInput, name, raw)
	}
	return t, nil
}

func reportFilename(prefix string, tr model.TimeRange) string {
	return fmt.Sprintf("%s-%s-%s.csv", prefix, tr.Start.Format(filenameDateLayout), tr.End.Format(filenameDateLayout))
}
