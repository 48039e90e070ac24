// README: Inbound event classification into the engine's closed vocabulary.
package conversation

import (
	"errors"

	"github.com/PyDenTech/setrae-bot/internal/types"
	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

var ErrNoSender = errors.New("inbound payload carries no sender")

type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventText
	EventLocation
	EventMedia
	EventListSelection
	EventButtonSelection
	EventTimeout
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventLocation:
		return "location"
	case EventMedia:
		return "media"
	case EventListSelection:
		return "list"
	case EventButtonSelection:
		return "button"
	case EventTimeout:
		return "timeout"
	default:
		return "unrecognized"
	}
}

// Event is one classified inbound occurrence. Exactly the fields implied by
// Kind are set.
type Event struct {
	Kind     EventKind
	Text     string
	Location types.Point
	MediaID  string
	OptionID string
}

// Classify maps one raw webhook message to exactly one event. A message
// without a sender fails classification; the engine must not be invoked.
func Classify(m whatsapp.InboundMessage) (Event, error) {
	if m.From == "" {
		return Event{}, ErrNoSender
	}
	switch {
	case m.ListReplyID != "":
		return Event{Kind: EventListSelection, OptionID: m.ListReplyID}, nil
	case m.ButtonReplyID != "":
		return Event{Kind: EventButtonSelection, OptionID: m.ButtonReplyID}, nil
	case m.HasLocation:
		return Event{Kind: EventLocation, Location: types.Point{Lat: m.Latitude, Lng: m.Longitude}}, nil
	case m.MediaID != "":
		return Event{Kind: EventMedia, MediaID: m.MediaID}, nil
	case m.Text != "":
		return Event{Kind: EventText, Text: m.Text}, nil
	default:
		return Event{Kind: EventUnrecognized}, nil
	}
}
