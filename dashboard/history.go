package dashboard

import (
	"fmt"
	"time"

	"github.com/jeovahfialho/banking-frontend/types"
	"github.com/jeovahfialho/banking-frontend/utils"
)

const EmptyHistoryMessage = "no transactions yet"

// HistoryRow is one rendered line of the transaction table.
type HistoryRow struct {
	Date     string
	Type     string
	Details  string
	Amount   string
	Incoming bool
}

// HistoryRows renders records from the point of view of the viewed account:
// money leaving it is negative, money arriving is positive.
func HistoryRows(records []types.TransactionRecord, viewedAccount string, loc *time.Location) []HistoryRow {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]HistoryRow, 0, len(records))
	for _, record := range records {
		row := HistoryRow{
			Type: string(record.Type),
			Date: formatDate(record.Timestamp, loc),
		}
		money := utils.FormatMoney(record.Amount)
		switch record.Type {
		case types.TxDeposit:
			row.Details = fmt.Sprintf("Deposit to account %s", record.Destination)
			row.Incoming = true
		case types.TxWithdraw:
			row.Details = fmt.Sprintf("Withdrawal from account %s", record.Origin)
		case types.TxTransfer:
			if record.Origin == viewedAccount {
				row.Details = fmt.Sprintf("Transfer from account %s to account %s", record.Origin, record.Destination)
			} else {
				row.Details = fmt.Sprintf("Transfer received from account %s to account %s", record.Origin, record.Destination)
				row.Incoming = true
			}
		default:
			row.Details = "Transaction"
			row.Amount = money
			rows = append(rows, row)
			continue
		}
		if row.Incoming {
			row.Amount = "+" + money
		} else {
			row.Amount = "-" + money
		}
		rows = append(rows, row)
	}
	return rows
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(time.DateTime)
}
