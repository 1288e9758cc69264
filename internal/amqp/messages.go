package amqp

import (
	"encoding/json"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// AlertMessage is the wire form of a spending alert. It carries the stored
// notification id so a consumer can fetch the full record if it needs to.
type AlertMessage struct {
	NotificationID string    `json:"notification_id"`
	OwnerID        string    `json:"owner_id"`
	Kind           string    `json:"kind"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewAlertMessage(n core.Notification) *AlertMessage {
	return &AlertMessage{
		NotificationID: n.ID,
		OwnerID:        n.OwnerID,
		Kind:           n.Kind,
		Message:        n.Message,
		Timestamp:      time.Now(),
	}
}

func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
