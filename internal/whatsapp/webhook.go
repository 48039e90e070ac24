// README: Inbound webhook envelope parsing (WhatsApp Cloud API).
package whatsapp

import "errors"

var ErrNoMessage = errors.New("webhook envelope carries no message")

// Envelope mirrors the relevant subset of the Cloud API webhook body.
type Envelope struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Value struct {
				Messages []rawMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type rawMessage struct {
	ID   string `json:"id"`
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Image    *mediaRef `json:"image"`
	Document *mediaRef `json:"document"`
	Interactive *struct {
		Type        string    `json:"type"`
		ListReply   *replyRef `json:"list_reply"`
		ButtonReply *replyRef `json:"button_reply"`
	} `json:"interactive"`
}

type mediaRef struct {
	ID string `json:"id"`
}

type replyRef struct {
	ID string `json:"id"`
}

// InboundMessage is the flattened view of one webhook delivery that the
// conversation engine classifies.
type InboundMessage struct {
	MessageID string
	From      string
	Text      string
	HasLocation bool
	Latitude    float64
	Longitude   float64
	MediaID     string
	ListReplyID   string
	ButtonReplyID string
}

// FirstMessage extracts the first message of the envelope, which is the only
// one the Cloud API delivers per webhook call.
func (e Envelope) FirstMessage() (InboundMessage, error) {
	if e.Object == "" || len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 ||
		len(e.Entry[0].Changes[0].Value.Messages) == 0 {
		return InboundMessage{}, ErrNoMessage
	}
	raw := e.Entry[0].Changes[0].Value.Messages[0]

	m := InboundMessage{MessageID: raw.ID, From: raw.From}
	if raw.Text != nil {
		m.Text = raw.Text.Body
	}
	if raw.Location != nil {
		m.HasLocation = true
		m.Latitude = raw.Location.Latitude
		m.Longitude = raw.Location.Longitude
	}
	if raw.Image != nil {
		m.MediaID = raw.Image.ID
	} else if raw.Document != nil {
		m.MediaID = raw.Document.ID
	}
	if raw.Interactive != nil {
		if raw.Interactive.ListReply != nil {
			m.ListReplyID = raw.Interactive.ListReply.ID
		}
		if raw.Interactive.ButtonReply != nil {
			m.ButtonReplyID = raw.Interactive.ButtonReply.ID
		}
	}
	return m, nil
}
