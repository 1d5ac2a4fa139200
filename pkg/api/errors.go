package api

import (
	"errors"

	"connectrpc.com/connect"
)

// Error metadata keys attached to an aborted SettleUp or DeleteExpenses.
const (
	SettlementIDKey    = "Settlement-Id"
	FailedExpenseIDKey = "Failed-Expense-Id"
)

// PartialFailure reports whether err is a partial archive failure and, if
// so, which settlement was written and which expenses are still live.
// settlementID is empty for a failed DeleteExpenses retry.
func PartialFailure(err error) (settlementID string, failed []string, ok bool) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodeAborted {
		return "", nil, false
	}
	failed = connectErr.Meta().Values(FailedExpenseIDKey)
	if len(failed) == 0 {
		return "", nil, false
	}
	return connectErr.Meta().Get(SettlementIDKey), failed, true
}
