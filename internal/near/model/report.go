package model

// ReportRequest asks for every transaction of the accounts within the range.
type ReportRequest struct {
	Accounts        []AccountID
	TimeRange       TimeRange
	IncludeBalances bool
}

// BalancesRequest asks for the balances at both ends of the range.
type BalancesRequest struct {
	Accounts  []AccountID
	TimeRange TimeRange
}

// FTMetadata is the subset of NEP-148 metadata used to scale token amounts.
type FTMetadata struct {
	Symbol   string
	Decimals int32
}
