package finance

import (
	"time"

	"github.com/google/uuid"
)

// AggregateLedgers groups open monetary items by counterparty and computes
// the aging view for each. Grouping preserves first-seen order, so the
// result is deterministic for a given input sequence.
//
// Items with a zero balance are skipped: they are expected to be filtered
// upstream, and a paid item carries no outstanding exposure either way.
// Conservation holds for the rest: the sum of ledger totals equals the sum
// of input balances, and per ledger current + overdue equals the total.
func AggregateLedgers(items []MonetaryItem, now time.Time) []CounterpartyLedger {
	ledgers := make([]CounterpartyLedger, 0)
	index := make(map[uuid.UUID]int)

	for _, item := range items {
		if item.BalanceAmount.IsZero() {
			continue
		}

		i, seen := index[item.CounterpartyID]
		if !seen {
			ledgers = append(ledgers, CounterpartyLedger{
				CounterpartyID:   item.CounterpartyID,
				CounterpartyName: item.CounterpartyName,
				Items:            make([]AgedItem, 0, 1),
			})
			i = len(ledgers) - 1
			index[item.CounterpartyID] = i
		}
		ledger := &ledgers[i]

		days := DaysOverdue(now, item.DueDate)
		bucket := ClassifyAging(days)

		ledger.Items = append(ledger.Items, AgedItem{
			MonetaryItem: item,
			DaysOverdue:  days,
			Bucket:       bucket,
		})
		ledger.TotalOutstanding = ledger.TotalOutstanding.Add(item.BalanceAmount)
		ledger.BucketTotals.Add(bucket, item.BalanceAmount)
		if days > 0 {
			ledger.OverdueAmount = ledger.OverdueAmount.Add(item.BalanceAmount)
		} else {
			ledger.CurrentAmount = ledger.CurrentAmount.Add(item.BalanceAmount)
		}
	}

	return ledgers
}

// LedgerFor returns the ledger for a single counterparty, or nil if the
// counterparty has no open items.
func LedgerFor(items []MonetaryItem, counterpartyID uuid.UUID, now time.Time) *CounterpartyLedger {
	for _, ledger := range AggregateLedgers(items, now) {
		if ledger.CounterpartyID == counterpartyID {
			l := ledger
			return &l
		}
	}
	return nil
}
