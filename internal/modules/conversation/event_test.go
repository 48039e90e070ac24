package conversation

import (
	"testing"

	"github.com/PyDenTech/setrae-bot/internal/whatsapp"
)

func TestClassifyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		msg  whatsapp.InboundMessage
		want EventKind
	}{
		{
			name: "list reply wins over text",
			msg:  whatsapp.InboundMessage{From: "559491", ListReplyID: "option_1", Text: "hello"},
			want: EventListSelection,
		},
		{
			name: "button reply wins over location",
			msg:  whatsapp.InboundMessage{From: "559491", ButtonReplyID: "confirm_yes", HasLocation: true},
			want: EventButtonSelection,
		},
		{
			name: "location wins over media",
			msg:  whatsapp.InboundMessage{From: "559491", HasLocation: true, MediaID: "m1"},
			want: EventLocation,
		},
		{
			name: "media wins over text",
			msg:  whatsapp.InboundMessage{From: "559491", MediaID: "m1", Text: "segue anexo"},
			want: EventMedia,
		},
		{
			name: "plain text",
			msg:  whatsapp.InboundMessage{From: "559491", Text: "oi"},
			want: EventText,
		},
		{
			name: "empty payload is unrecognized",
			msg:  whatsapp.InboundMessage{From: "559491"},
			want: EventUnrecognized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Classify(tc.msg)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if ev.Kind != tc.want {
				t.Fatalf("Classify() kind = %s, want %s", ev.Kind, tc.want)
			}
		})
	}
}

func TestClassifyRejectsMissingSender(t *testing.T) {
	_, err := Classify(whatsapp.InboundMessage{Text: "oi"})
	if err == nil {
		t.Fatal("expected error for message without sender")
	}
}

func TestLockReleaseEmptiesTable(t *testing.T) {
	locks := newUserLocks()
	release := locks.lock("u1")
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Fatalf("lock table not garbage-collected: %d entries", len(locks.locks))
	}
}

func TestStoreCreateReplacesSession(t *testing.T) {
	store := NewMemoryStore()
	first := store.Create("u1", StepDriverName)
	first.Form = &DriverForm{}

	second := store.Create("u1", StepAwaitingLookup)
	if second.Form != nil {
		t.Fatal("restart must not inherit the previous wizard form")
	}
	if store.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", store.Count())
	}

	if err := store.Update("missing", func(*Session) {}); err == nil {
		t.Fatal("Update on absent session must error")
	}
}
