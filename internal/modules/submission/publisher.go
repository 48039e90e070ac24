// README: Best-effort NATS publisher for submission events.
package submission

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher emits one event per persisted submission for downstream
// dashboards. A nil *Publisher publishes nothing.
type Publisher struct {
	nc *nats.Conn
}

func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

type eventMessage struct {
	Kind      Kind      `json:"kind"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Publish emits the submission event on setrae.submissions.<kind>.
func (p *Publisher) Publish(kind Kind, sender string) error {
	if p == nil || p.nc == nil {
		return nil
	}
	payload, err := json.Marshal(eventMessage{
		Kind:      kind,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.nc.Publish(fmt.Sprintf("setrae.submissions.%s", kind), payload)
}
