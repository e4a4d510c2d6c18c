// Package message defines the closed set of wire-message variants. It is
// modeled as a sealed variant type: an interface with a closed,
// unexported-marker-guarded set of implementations rather than an
// inheritance hierarchy.
package message

import "github.com/google/uuid"

// Kind identifies which variant a Message value carries.
type Kind int

const (
	KindBase Kind = iota
	KindText
	KindRawData
	KindPing
	KindRemoteInvoke
	KindRemoteInvokeReturn
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "Base"
	case KindText:
		return "Text"
	case KindRawData:
		return "RawData"
	case KindPing:
		return "Ping"
	case KindRemoteInvoke:
		return "RemoteInvoke"
	case KindRemoteInvokeReturn:
		return "RemoteInvokeReturn"
	default:
		return "Unknown"
	}
}

// Envelope carries the two fields every variant has in common.
// RepliedMessageID uses the empty string as its "absent" sentinel: when
// non-empty, it names the message this one replies to.
type Envelope struct {
	MessageID        string
	RepliedMessageID string
}

func newEnvelope() Envelope {
	return Envelope{MessageID: uuid.NewString()}
}

// ID returns the message's own identifier, which is non-empty and stable
// for the lifetime of the message.
func (e Envelope) ID() string {
	return e.MessageID
}

// ReplyTo returns the MessageID this message replies to, or "" if it is
// not a reply.
func (e Envelope) ReplyTo() string {
	return e.RepliedMessageID
}

// Message is the sealed union of every wire variant this module carries.
type Message interface {
	Envelope() Envelope
	Kind() Kind

	// WithReply returns a copy of the message with RepliedMessageID set,
	// used to build a reply (e.g. a pong) without mutating the original.
	WithReply(repliedMessageID string) Message

	isMessage()
}

/*******************************************************************************
 BaseMessage
*******************************************************************************/

type BaseMessage struct {
	env Envelope
}

func NewBaseMessage() BaseMessage {
	return BaseMessage{env: newEnvelope()}
}

func (m BaseMessage) Envelope() Envelope { return m.env }
func (m BaseMessage) Kind() Kind         { return KindBase }
func (m BaseMessage) WithReply(id string) Message {
	m.env.RepliedMessageID = id
	return m
}
func (BaseMessage) isMessage() {}

/*******************************************************************************
 TextMessage
*******************************************************************************/

type TextMessage struct {
	env  Envelope
	Text *string // optional
}

func NewTextMessage(text string) TextMessage {
	t := text
	return TextMessage{env: newEnvelope(), Text: &t}
}

// NewEmptyTextMessage builds a TextMessage with no text set (Text == nil),
// distinct from NewTextMessage("").
func NewEmptyTextMessage() TextMessage {
	return TextMessage{env: newEnvelope()}
}

func (m TextMessage) Envelope() Envelope { return m.env }
func (m TextMessage) Kind() Kind         { return KindText }
func (m TextMessage) WithReply(id string) Message {
	m.env.RepliedMessageID = id
	return m
}
func (TextMessage) isMessage() {}

/*******************************************************************************
 RawDataMessage
*******************************************************************************/

type RawDataMessage struct {
	env  Envelope
	Data []byte // optional; nil means absent, non-nil (possibly empty) means present
}

func NewRawDataMessage(data []byte) RawDataMessage {
	return RawDataMessage{env: newEnvelope(), Data: data}
}

func (m RawDataMessage) Envelope() Envelope { return m.env }
func (m RawDataMessage) Kind() Kind         { return KindRawData }
func (m RawDataMessage) WithReply(id string) Message {
	m.env.RepliedMessageID = id
	return m
}
func (RawDataMessage) isMessage() {}

/*******************************************************************************
 PingMessage
*******************************************************************************/

type PingMessage struct {
	env Envelope
}

func NewPingMessage() PingMessage {
	return PingMessage{env: newEnvelope()}
}

// NewPongMessage builds the PingMessage that replies to originalPingID,
// setting RepliedMessageID to the original ping's MessageID.
func NewPongMessage(originalPingID string) PingMessage {
	p := NewPingMessage()
	p.env.RepliedMessageID = originalPingID
	return p
}

func (m PingMessage) Envelope() Envelope { return m.env }
func (m PingMessage) Kind() Kind         { return KindPing }
func (m PingMessage) WithReply(id string) Message {
	m.env.RepliedMessageID = id
	return m
}
func (PingMessage) isMessage() {}

/*******************************************************************************
 RemoteInvokeMessage
*******************************************************************************/

type RemoteInvokeMessage struct {
	env              Envelope
	ServiceClassName string
	MethodName       string
	Parameters       []Param // nil means the parameter list itself is absent
}

func NewRemoteInvokeMessage(serviceClassName, methodName string, parameters []Param) RemoteInvokeMessage {
	return RemoteInvokeMessage{
		env:              newEnvelope(),
		ServiceClassName: serviceClassName,
		MethodName:       methodName,
		Parameters:       parameters,
	}
}

func (m RemoteInvokeMessage) Envelope() Envelope { return m.env }
func (m RemoteInvokeMessage) Kind() Kind         { return KindRemoteInvoke }
func (m RemoteInvokeMessage) WithReply(id string) Message {
	m.env.RepliedMessageID = id
	return m
}
func (RemoteInvokeMessage) isMessage() {}

/*******************************************************************************
 RemoteInvokeReturnMessage
*******************************************************************************/

type RemoteInvokeReturnMessage struct {
	env         Envelope
	ReturnValue *Param
	Exception   *RemoteException
}

func NewRemoteInvokeReturnMessage(repliedMessageID string, returnValue *Param, exception *RemoteException) RemoteInvokeReturnMessage {
	env := newEnvelope()
	env.RepliedMessageID = repliedMessageID
	return RemoteInvokeReturnMessage{env: env, ReturnValue: returnValue, Exception: exception}
}

func (m RemoteInvokeReturnMessage) Envelope() Envelope { return m.env }
func (m RemoteInvokeReturnMessage) Kind() Kind         { return KindRemoteInvokeReturn }
func (m RemoteInvokeReturnMessage) WithReply(id string) Message {
	m.env.RepliedMessageID = id
	return m
}
func (RemoteInvokeReturnMessage) isMessage() {}

// RemoteException carries the minimum a propagated remote exception needs:
// the message string, plus the service version string that an RMI-layer
// client re-raises alongside it.
type RemoteException struct {
	Message        string
	ServiceVersion string
}
