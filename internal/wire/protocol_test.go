package wire_test

import (
	"bytes"
	"math/rand"
	"testing"

	"wireline/internal/message"
	"wireline/internal/wire"
)

func TestGetBytesVersionByte(t *testing.T) {
	p := wire.NewProtocol(nil)
	frame, err := p.GetBytes(message.NewTextMessage("test"))
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if len(frame) < 5 {
		t.Fatalf("frame too short: %d bytes", len(frame))
	}
	if frame[4] != wire.ProtocolVersion {
		t.Fatalf("frame[4] = %#x, want %#x", frame[4], wire.ProtocolVersion)
	}
}

func TestCreateMessagesOrderAcrossConcatenatedFrames(t *testing.T) {
	p := wire.NewProtocol(nil)

	msgs := []message.Message{
		message.NewTextMessage("one"),
		message.NewPingMessage(),
		message.NewRawDataMessage([]byte{1, 2, 3}),
	}

	var all []byte
	for _, m := range msgs {
		frame, err := p.GetBytes(m)
		if err != nil {
			t.Fatalf("GetBytes: %v", err)
		}
		all = append(all, frame...)
	}

	got, err := p.CreateMessages(all)
	if err != nil {
		t.Fatalf("CreateMessages: %v", err)
	}
	if len(got) != len(msgs) {
		t.Fatalf("got %d messages, want %d", len(got), len(msgs))
	}
	for i, m := range got {
		if m.Envelope().ID() != msgs[i].Envelope().ID() {
			t.Errorf("message %d id mismatch: got %s want %s", i, m.Envelope().ID(), msgs[i].Envelope().ID())
		}
	}
}

func TestCreateMessagesAdversarialSplitting(t *testing.T) {
	p := wire.NewProtocol(nil)

	frame, err := p.GetBytes(message.NewTextMessage("split me"))
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}

	for split := 1; split < len(frame); split++ {
		fresh := wire.NewProtocol(nil)

		first, err := fresh.CreateMessages(frame[:split])
		if err != nil {
			t.Fatalf("split %d: CreateMessages first half: %v", split, err)
		}
		if len(first) != 0 {
			t.Fatalf("split %d: expected 0 messages from partial frame, got %d", split, len(first))
		}

		second, err := fresh.CreateMessages(frame[split:])
		if err != nil {
			t.Fatalf("split %d: CreateMessages second half: %v", split, err)
		}
		if len(second) != 1 {
			t.Fatalf("split %d: expected 1 message after full frame, got %d", split, len(second))
		}
	}
}

func TestLargePayloadRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 65536)
	rng.Read(data)

	p := wire.NewProtocol(nil)
	frame, err := p.GetBytes(message.NewRawDataMessage(data))
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}

	got, err := p.CreateMessages(frame)
	if err != nil {
		t.Fatalf("CreateMessages: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d messages, want 1", len(got))
	}

	rd, ok := got[0].(message.RawDataMessage)
	if !ok {
		t.Fatalf("got %T, want RawDataMessage", got[0])
	}
	if !bytes.Equal(rd.Data, data) {
		t.Fatal("round-tripped data does not match original")
	}
}

func TestOversizeFrameFailsAndResetsAccumulator(t *testing.T) {
	p := wire.NewProtocol(nil)

	oversizeHeader := []byte{0x08, 0x00, 0x00, 0x00, wire.ProtocolVersion}
	binaryLen := uint32(wire.MaxPayloadSize) + 1
	oversizeHeader[0] = byte(binaryLen >> 24)
	oversizeHeader[1] = byte(binaryLen >> 16)
	oversizeHeader[2] = byte(binaryLen >> 8)
	oversizeHeader[3] = byte(binaryLen)

	_, err := p.CreateMessages(oversizeHeader)
	if err == nil {
		t.Fatal("expected error for oversize frame")
	}

	// A well-formed frame afterward must succeed, proving the accumulator
	// was reset rather than left poisoned.
	frame, err := p.GetBytes(message.NewPingMessage())
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	msgs, err := p.CreateMessages(frame)
	if err != nil {
		t.Fatalf("CreateMessages after reset: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
}

func TestBinaryCodecRoundTripsEveryVariant(t *testing.T) {
	codec := wire.BinaryCodec{}

	text := "hello"
	exception := &message.RemoteException{Message: "boom", ServiceVersion: "1.0"}
	returnValue := message.ParamInt64(42)

	variants := []message.Message{
		message.NewBaseMessage(),
		message.NewTextMessage(text),
		message.NewEmptyTextMessage(),
		message.NewRawDataMessage([]byte("payload")),
		message.NewRawDataMessage(nil),
		message.NewPingMessage(),
		message.NewPongMessage("some-id"),
		message.NewRemoteInvokeMessage("Calculator", "Add", []message.Param{
			message.ParamInt32(1), message.ParamString("two"), message.ParamNull(),
		}),
		message.NewRemoteInvokeReturnMessage("reply-to-id", &returnValue, exception),
	}

	for _, m := range variants {
		encoded, err := codec.Encode(m)
		if err != nil {
			t.Fatalf("Encode(%T): %v", m, err)
		}
		decoded, err := codec.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%T): %v", m, err)
		}
		if decoded.Envelope().ID() != m.Envelope().ID() {
			t.Errorf("%T: id mismatch after round trip", m)
		}
		if decoded.Envelope().ReplyTo() != m.Envelope().ReplyTo() {
			t.Errorf("%T: reply id mismatch after round trip", m)
		}
		if decoded.Kind() != m.Kind() {
			t.Errorf("%T: kind mismatch after round trip", m)
		}

		switch orig := m.(type) {
		case message.RemoteInvokeMessage:
			got, ok := decoded.(message.RemoteInvokeMessage)
			if !ok {
				t.Fatalf("decoded %T, want RemoteInvokeMessage", decoded)
			}
			if got.ServiceClassName != orig.ServiceClassName {
				t.Errorf("ServiceClassName mismatch: got %q want %q", got.ServiceClassName, orig.ServiceClassName)
			}
			if got.MethodName != orig.MethodName {
				t.Errorf("MethodName mismatch: got %q want %q", got.MethodName, orig.MethodName)
			}
			if len(got.Parameters) != len(orig.Parameters) {
				t.Fatalf("Parameters length mismatch: got %d want %d", len(got.Parameters), len(orig.Parameters))
			}
			for i := range orig.Parameters {
				assertParamsEqual(t, i, got.Parameters[i], orig.Parameters[i])
			}
		case message.RemoteInvokeReturnMessage:
			got, ok := decoded.(message.RemoteInvokeReturnMessage)
			if !ok {
				t.Fatalf("decoded %T, want RemoteInvokeReturnMessage", decoded)
			}
			if (got.ReturnValue == nil) != (orig.ReturnValue == nil) {
				t.Fatalf("ReturnValue nilness mismatch: got %v want %v", got.ReturnValue, orig.ReturnValue)
			}
			if got.ReturnValue != nil {
				assertParamsEqual(t, -1, *got.ReturnValue, *orig.ReturnValue)
			}
			if (got.Exception == nil) != (orig.Exception == nil) {
				t.Fatalf("Exception nilness mismatch: got %v want %v", got.Exception, orig.Exception)
			}
			if got.Exception != nil {
				if got.Exception.Message != orig.Exception.Message {
					t.Errorf("Exception.Message mismatch: got %q want %q", got.Exception.Message, orig.Exception.Message)
				}
				if got.Exception.ServiceVersion != orig.Exception.ServiceVersion {
					t.Errorf("Exception.ServiceVersion mismatch: got %q want %q", got.Exception.ServiceVersion, orig.Exception.ServiceVersion)
				}
			}
		}
	}
}

func assertParamsEqual(t *testing.T, i int, got, want message.Param) {
	t.Helper()
	if got.Tag != want.Tag {
		t.Fatalf("param %d: Tag mismatch: got %v want %v", i, got.Tag, want.Tag)
	}
	switch want.Tag {
	case message.ParamTagInt32:
		if got.I32 != want.I32 {
			t.Errorf("param %d: I32 mismatch: got %d want %d", i, got.I32, want.I32)
		}
	case message.ParamTagString:
		if got.Str != want.Str {
			t.Errorf("param %d: Str mismatch: got %q want %q", i, got.Str, want.Str)
		}
	case message.ParamTagInt64:
		if got.I64 != want.I64 {
			t.Errorf("param %d: I64 mismatch: got %d want %d", i, got.I64, want.I64)
		}
	case message.ParamTagDouble:
		if got.F64 != want.F64 {
			t.Errorf("param %d: F64 mismatch: got %v want %v", i, got.F64, want.F64)
		}
	case message.ParamTagBool:
		if got.Bool != want.Bool {
			t.Errorf("param %d: Bool mismatch: got %v want %v", i, got.Bool, want.Bool)
		}
	case message.ParamTagBytes:
		if !bytes.Equal(got.Bytes, want.Bytes) {
			t.Errorf("param %d: Bytes mismatch: got %v want %v", i, got.Bytes, want.Bytes)
		}
	}
}
