package amqp

import (
	"encoding/json"
	"time"
)

// ReportRequestedMessage asks the worker to render the report files. It
// carries only the transaction count observed by the scheduler; the worker
// loads the current snapshot itself.
type ReportRequestedMessage struct {
	Transactions int       `json:"transacoes"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewReportRequestedMessage(transactions int) *ReportRequestedMessage {
	return &ReportRequestedMessage{
		Transactions: transactions,
		Timestamp:    time.Now(),
	}
}

func (m *ReportRequestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportRequestedMessageFromJSON(data []byte) (*ReportRequestedMessage, error) {
	var msg ReportRequestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
