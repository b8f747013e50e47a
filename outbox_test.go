package main

import (
	"errors"
	"testing"

	"github.com/gorilla/websocket"
)

func TestOutboxSendAndDrain(t *testing.T) {
	out := NewOutbox()
	if err := out.SendBinary([]byte{1}); err != nil {
		t.Fatal(err)
	}
	if err := out.SendPacket(Joining{}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-out.Ready():
	default:
		t.Fatal("expected ready signal after send")
	}

	frames := out.Drain(nil)
	if len(frames) != 2 {
		t.Fatalf("drained %d frames, want 2", len(frames))
	}
	if frames[0].Type != websocket.BinaryMessage || frames[0].Data[0] != 1 {
		t.Errorf("frame 0 = %+v", frames[0])
	}
	if frames[1].Data[0] != TagJoining {
		t.Errorf("frame 1 tag = %d, want Joining", frames[1].Data[0])
	}
	if out.Len() != 0 {
		t.Errorf("len after drain = %d", out.Len())
	}
}

func TestOutboxClose(t *testing.T) {
	out := NewOutbox()
	out.SendBinary([]byte{1})
	out.Close()
	out.Close() // idempotent

	if !out.Closed() {
		t.Error("expected closed")
	}
	if err := out.SendBinary([]byte{2}); !errors.Is(err, ErrOutboxClosed) {
		t.Errorf("send after close err = %v, want ErrOutboxClosed", err)
	}

	select {
	case <-out.Done():
	default:
		t.Error("done should be closed")
	}

	// frames queued before close survive
	if frames := out.Drain(nil); len(frames) != 1 {
		t.Errorf("drained %d frames, want 1", len(frames))
	}
}

func TestOutboxSendPacketError(t *testing.T) {
	out := NewOutbox()
	if err := out.SendPacket(Account{}); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("err = %v, want ErrNotImplemented", err)
	}
	if out.Len() != 0 {
		t.Error("failed encode should not enqueue")
	}
}
