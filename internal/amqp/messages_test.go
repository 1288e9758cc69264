package amqp

import (
	"testing"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

func TestAlertMessage_JSON(t *testing.T) {
	n := core.Notification{
		ID:        "n-1",
		OwnerID:   "u-1",
		Kind:      core.NotificationWarning,
		Message:   "High Spending Alert: You spent $1500.00 on Travel. This exceeds your limit of $1000.00.",
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	body, err := NewAlertMessage(n).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := AlertMessageFromJSON(body)
	if err != nil {
		t.Fatalf("AlertMessageFromJSON() error = %v", err)
	}
	if got.NotificationID != n.ID {
		t.Errorf("NotificationID = %q, want %q", got.NotificationID, n.ID)
	}
	if got.OwnerID != n.OwnerID {
		t.Errorf("OwnerID = %q, want %q", got.OwnerID, n.OwnerID)
	}
	if got.Kind != core.NotificationWarning {
		t.Errorf("Kind = %q, want %q", got.Kind, core.NotificationWarning)
	}
	if got.Message != n.Message {
		t.Errorf("Message = %q, want %q", got.Message, n.Message)
	}
}

func TestAlertMessageFromJSON_Invalid(t *testing.T) {
	if _, err := AlertMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("AlertMessageFromJSON() accepted malformed payload")
	}
}
