// Package message re-exports the wire message variants for callers outside
// this module's internal tree.
package message

import "wireline/internal/message"

type (
	Kind                      = message.Kind
	Envelope                  = message.Envelope
	Message                   = message.Message
	BaseMessage               = message.BaseMessage
	TextMessage               = message.TextMessage
	RawDataMessage            = message.RawDataMessage
	PingMessage               = message.PingMessage
	RemoteInvokeMessage       = message.RemoteInvokeMessage
	RemoteInvokeReturnMessage = message.RemoteInvokeReturnMessage
	RemoteException           = message.RemoteException
	Param                     = message.Param
	ParamTag                  = message.ParamTag
)

const (
	KindBase               = message.KindBase
	KindText               = message.KindText
	KindRawData            = message.KindRawData
	KindPing               = message.KindPing
	KindRemoteInvoke       = message.KindRemoteInvoke
	KindRemoteInvokeReturn = message.KindRemoteInvokeReturn
)

const (
	ParamTagNull   = message.ParamTagNull
	ParamTagInt32  = message.ParamTagInt32
	ParamTagString = message.ParamTagString
	ParamTagInt64  = message.ParamTagInt64
	ParamTagDouble = message.ParamTagDouble
	ParamTagBool   = message.ParamTagBool
	ParamTagBytes  = message.ParamTagBytes
)

var (
	NewBaseMessage            = message.NewBaseMessage
	NewTextMessage            = message.NewTextMessage
	NewEmptyTextMessage       = message.NewEmptyTextMessage
	NewRawDataMessage         = message.NewRawDataMessage
	NewPingMessage            = message.NewPingMessage
	NewPongMessage            = message.NewPongMessage
	NewRemoteInvokeMessage       = message.NewRemoteInvokeMessage
	NewRemoteInvokeReturnMessage = message.NewRemoteInvokeReturnMessage
	ParamNull                    = message.ParamNull
	ParamInt32                = message.ParamInt32
	ParamString               = message.ParamString
	ParamInt64                = message.ParamInt64
	ParamDouble               = message.ParamDouble
	ParamBool                 = message.ParamBool
	ParamBytes                = message.ParamBytes
)
