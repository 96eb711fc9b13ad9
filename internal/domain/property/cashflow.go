package property

import (
	"fmt"
	"time"
)

// FlowType classifies a cash flow entry.
type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
)

func (f FlowType) String() string {
	return string(f)
}

func (f FlowType) IsValid() bool {
	return f == FlowIncome || f == FlowExpense
}

func NewFlowType(s string) (FlowType, error) {
	f := FlowType(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid cash flow type: %s", s)
	}
	return f, nil
}

// CashFlow is a single dated money movement on a property. AmountCents
// is always positive; Type carries the direction.
type CashFlow struct {
	ID          uint
	PropertyID  uint
	Type        FlowType
	AmountCents int64
	Description string
	Date        time.Time
}
