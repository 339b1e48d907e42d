package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/tta-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

func (s *RepositorySuite) TestTransactionsPage() {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newTx := func(account model.AccountID, height uint64, index uint32, ts time.Time) model.Transaction {
		return model.Transaction{
			AccountID:            account,
			BlockHeight:          height,
			BlockTimestamp:       ts,
			IndexInBlock:         index,
			TransactionHash:      "hash",
			ReceiptID:            "receipt",
			Direction:            model.DirectionIncoming,
			PredecessorAccountID: "bob.near",
			ReceiverAccountID:    account,
			ActionKind:           model.ActionTransfer,
			Args:                 `{"deposit":"1000000000000000000000000"}`,
			Deposit:              decimal.RequireFromString("1000000000000000000000000"),
		}
	}

	s.seedTransactions([]model.Transaction{
		newTx("alice.near", 100, 1, day.Add(time.Hour)),
		newTx("alice.near", 100, 0, day.Add(time.Hour)),
		newTx("lockup.lockup.near", 100, 0, day.Add(time.Hour)),
		newTx("alice.near", 101, 0, day.Add(2*time.Hour)),
		newTx("alice.near", 150, 0, day.Add(25*time.Hour)),
		newTx("carol.near", 100, 0, day.Add(time.Hour)),
	})

	s.metrics.EXPECT().Observe("transactions_page", gomock.Nil(), gomock.Any()).Times(3)

	query := model.TransactionQuery{
		Accounts: []model.AccountID{"alice.near", "lockup.lockup.near"},
		Heights:  model.HeightRange{From: 90, To: 200},
		Times:    model.TimeRange{Start: day, End: day.Add(24 * time.Hour)},
		After:    model.TransactionCursor{BlockHeight: 90},
		Limit:    2,
	}

	var got []model.Transaction
	for {
		page, err := s.repo.TransactionsPage(s.testCtx, query)
		s.Require().NoError(err)
		got = append(got, page...)
		if len(page) < query.Limit {
			break
		}
		query.After = page[len(page)-1].Cursor()
	}

	s.Require().Len(got, 4)
	s.Equal(model.TransactionCursor{BlockHeight: 100, IndexInBlock: 0, AccountID: "alice.near"}, got[0].Cursor())
	s.Equal(model.TransactionCursor{BlockHeight: 100, IndexInBlock: 0, AccountID: "lockup.lockup.near"}, got[1].Cursor())
	s.Equal(model.TransactionCursor{BlockHeight: 100, IndexInBlock: 1, AccountID: "alice.near"}, got[2].Cursor())
	s.Equal(model.TransactionCursor{BlockHeight: 101, IndexInBlock: 0, AccountID: "alice.near"}, got[3].Cursor())
	s.True(got[0].Deposit.Equal(decimal.RequireFromString("1000000000000000000000000")))
}
