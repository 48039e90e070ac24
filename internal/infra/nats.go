// README: NATS connection for best-effort submission event publishing.
package infra

import (
	"time"

	"github.com/nats-io/nats.go"
)

func NewNATS(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
