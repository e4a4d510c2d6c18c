package message

// The constructors below rebuild a variant from an Envelope decoded off
// the wire (exact MessageID and RepliedMessageID, not a freshly minted
// one). They live in this package because the env field is unexported;
// wire.Codec implementations call these instead of reaching into the
// struct directly, keeping the variant set genuinely closed.

func BaseMessageFromEnvelope(env Envelope) BaseMessage {
	return BaseMessage{env: env}
}

func TextMessageFromEnvelope(env Envelope, text *string) TextMessage {
	return TextMessage{env: env, Text: text}
}

func RawDataMessageFromEnvelope(env Envelope, data []byte) RawDataMessage {
	return RawDataMessage{env: env, Data: data}
}

func PingMessageFromEnvelope(env Envelope) PingMessage {
	return PingMessage{env: env}
}

func RemoteInvokeMessageFromEnvelope(env Envelope, serviceClassName, methodName string, parameters []Param) RemoteInvokeMessage {
	return RemoteInvokeMessage{
		env:              env,
		ServiceClassName: serviceClassName,
		MethodName:       methodName,
		Parameters:       parameters,
	}
}

func RemoteInvokeReturnMessageFromEnvelope(env Envelope, returnValue *Param, exception *RemoteException) RemoteInvokeReturnMessage {
	return RemoteInvokeReturnMessage{env: env, ReturnValue: returnValue, Exception: exception}
}
