package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"wireline/internal/message"
	"wireline/pkg/comerr"
)

// Codec turns a Message into a payload and back. Protocol is constructed
// against this interface so alternate encoding strategies can be plugged
// in without touching the framing layer.
type Codec interface {
	Encode(m message.Message) ([]byte, error)
	Decode(payload []byte) (message.Message, error)
}

// messageTag identifies which Message variant a payload encodes, distinct
// from message.ParamTag (the parameter type tag set).
type messageTag byte

const (
	tagBase               messageTag = 0
	tagText               messageTag = 1
	tagRawData            messageTag = 2
	tagPing               messageTag = 3
	tagRemoteInvoke       messageTag = 4
	tagRemoteInvokeReturn messageTag = 5
)

// BinaryCodec encodes a one-byte variant tag followed by fields in
// declaration order, with nullable strings and byte sequences encoded as
// [bool present][length-prefixed bytes].
type BinaryCodec struct{}

func (BinaryCodec) Encode(m message.Message) ([]byte, error) {
	buf := &bytes.Buffer{}

	switch v := m.(type) {
	case message.BaseMessage:
		buf.WriteByte(byte(tagBase))
		writeEnvelope(buf, v.Envelope())
	case message.TextMessage:
		buf.WriteByte(byte(tagText))
		writeEnvelope(buf, v.Envelope())
		writeNullableString(buf, v.Text)
	case message.RawDataMessage:
		buf.WriteByte(byte(tagRawData))
		writeEnvelope(buf, v.Envelope())
		writeNullableBytes(buf, v.Data)
	case message.PingMessage:
		buf.WriteByte(byte(tagPing))
		writeEnvelope(buf, v.Envelope())
	case message.RemoteInvokeMessage:
		buf.WriteByte(byte(tagRemoteInvoke))
		writeEnvelope(buf, v.Envelope())
		writeString(buf, v.ServiceClassName)
		writeString(buf, v.MethodName)
		writeParams(buf, v.Parameters)
	case message.RemoteInvokeReturnMessage:
		buf.WriteByte(byte(tagRemoteInvokeReturn))
		writeEnvelope(buf, v.Envelope())
		writeNullableParam(buf, v.ReturnValue)
		writeNullableException(buf, v.Exception)
	default:
		return nil, comerr.ErrInvalidMessageFormat
	}

	return buf.Bytes(), nil
}

func (BinaryCodec) Decode(payload []byte) (message.Message, error) {
	d := &decoder{buf: payload}

	tag, err := d.readByte()
	if err != nil {
		return nil, comerr.Wrap(err, "read message tag")
	}

	switch messageTag(tag) {
	case tagBase:
		env, err := readEnvelope(d)
		if err != nil {
			return nil, err
		}
		return message.BaseMessageFromEnvelope(env), nil
	case tagText:
		env, err := readEnvelope(d)
		if err != nil {
			return nil, err
		}
		text, err := d.readNullableString()
		if err != nil {
			return nil, comerr.Wrap(err, "read text field")
		}
		return message.TextMessageFromEnvelope(env, text), nil
	case tagRawData:
		env, err := readEnvelope(d)
		if err != nil {
			return nil, err
		}
		data, err := d.readNullableBytes()
		if err != nil {
			return nil, comerr.Wrap(err, "read data field")
		}
		return message.RawDataMessageFromEnvelope(env, data), nil
	case tagPing:
		env, err := readEnvelope(d)
		if err != nil {
			return nil, err
		}
		return message.PingMessageFromEnvelope(env), nil
	case tagRemoteInvoke:
		env, err := readEnvelope(d)
		if err != nil {
			return nil, err
		}
		serviceClassName, err := d.readString()
		if err != nil {
			return nil, comerr.Wrap(err, "read service class name")
		}
		methodName, err := d.readString()
		if err != nil {
			return nil, comerr.Wrap(err, "read method name")
		}
		params, err := d.readParams()
		if err != nil {
			return nil, comerr.Wrap(err, "read parameters")
		}
		return message.RemoteInvokeMessageFromEnvelope(env, serviceClassName, methodName, params), nil
	case tagRemoteInvokeReturn:
		env, err := readEnvelope(d)
		if err != nil {
			return nil, err
		}
		returnValue, err := d.readNullableParam()
		if err != nil {
			return nil, comerr.Wrap(err, "read return value")
		}
		exception, err := d.readNullableException()
		if err != nil {
			return nil, comerr.Wrap(err, "read exception")
		}
		return message.RemoteInvokeReturnMessageFromEnvelope(env, returnValue, exception), nil
	default:
		return nil, comerr.ErrInvalidMessageFormat
	}
}

/*******************************************************************************
 low-level primitives
*******************************************************************************/

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeInt32(buf *bytes.Buffer, v int32) {
	writeUint32(buf, uint32(v))
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeInt64(buf *bytes.Buffer, v int64) {
	writeUint64(buf, uint64(v))
}

func writeFloat64(buf *bytes.Buffer, v float64) {
	writeUint64(buf, math.Float64bits(v))
}

func writeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func writeRawBytes(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}

func writeString(buf *bytes.Buffer, s string) {
	writeRawBytes(buf, []byte(s))
}

func writeNullableString(buf *bytes.Buffer, s *string) {
	if s == nil {
		writeBool(buf, false)
		return
	}
	writeBool(buf, true)
	writeString(buf, *s)
}

func writeNullableBytes(buf *bytes.Buffer, b []byte) {
	if b == nil {
		writeBool(buf, false)
		return
	}
	writeBool(buf, true)
	writeRawBytes(buf, b)
}

func writeEnvelope(buf *bytes.Buffer, env message.Envelope) {
	writeString(buf, env.MessageID)
	writeString(buf, env.RepliedMessageID)
}

func writeParam(buf *bytes.Buffer, p message.Param) {
	buf.WriteByte(byte(p.Tag))
	switch p.Tag {
	case message.ParamTagNull:
	case message.ParamTagInt32:
		writeInt32(buf, p.I32)
	case message.ParamTagString:
		writeString(buf, p.Str)
	case message.ParamTagInt64:
		writeInt64(buf, p.I64)
	case message.ParamTagDouble:
		writeFloat64(buf, p.F64)
	case message.ParamTagBool:
		writeBool(buf, p.Bool)
	case message.ParamTagBytes:
		writeRawBytes(buf, p.Bytes)
	}
}

func writeNullableParam(buf *bytes.Buffer, p *message.Param) {
	if p == nil {
		writeBool(buf, false)
		return
	}
	writeBool(buf, true)
	writeParam(buf, *p)
}

func writeParams(buf *bytes.Buffer, params []message.Param) {
	if params == nil {
		writeInt32(buf, -1)
		return
	}
	writeInt32(buf, int32(len(params)))
	for _, p := range params {
		writeParam(buf, p)
	}
}

func writeNullableException(buf *bytes.Buffer, e *message.RemoteException) {
	if e == nil {
		writeBool(buf, false)
		return
	}
	writeBool(buf, true)
	writeString(buf, e.Message)
	writeString(buf, e.ServiceVersion)
}

// decoder walks a payload byte slice with explicit bounds checking so a
// truncated or corrupt payload surfaces as an error, never a panic.
type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) hasBytes(n int) bool {
	return n >= 0 && d.pos+n <= len(d.buf)
}

func (d *decoder) readByte() (byte, error) {
	if !d.hasBytes(1) {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readRawBytes(n int) ([]byte, error) {
	if !d.hasBytes(n) {
		return nil, io.ErrUnexpectedEOF
	}
	out := make([]byte, n)
	copy(out, d.buf[d.pos:d.pos+n])
	d.pos += n
	return out, nil
}

func (d *decoder) readUint32() (uint32, error) {
	b, err := d.readRawBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) readInt32() (int32, error) {
	v, err := d.readUint32()
	return int32(v), err
}

func (d *decoder) readUint64() (uint64, error) {
	b, err := d.readRawBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (d *decoder) readInt64() (int64, error) {
	v, err := d.readUint64()
	return int64(v), err
}

func (d *decoder) readFloat64() (float64, error) {
	v, err := d.readUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (d *decoder) readBool() (bool, error) {
	b, err := d.readByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readUint32()
	if err != nil {
		return "", err
	}
	b, err := d.readRawBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) readNullableString() (*string, error) {
	present, err := d.readBool()
	if err != nil || !present {
		return nil, err
	}
	s, err := d.readString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (d *decoder) readNullableBytes() ([]byte, error) {
	present, err := d.readBool()
	if err != nil || !present {
		return nil, err
	}
	n, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	return d.readRawBytes(int(n))
}

func readEnvelope(d *decoder) (message.Envelope, error) {
	id, err := d.readString()
	if err != nil {
		return message.Envelope{}, comerr.Wrap(err, "read message id")
	}
	repliedID, err := d.readString()
	if err != nil {
		return message.Envelope{}, comerr.Wrap(err, "read replied message id")
	}
	return message.Envelope{MessageID: id, RepliedMessageID: repliedID}, nil
}

func (d *decoder) readParam() (message.Param, error) {
	tag, err := d.readByte()
	if err != nil {
		return message.Param{}, err
	}
	switch message.ParamTag(tag) {
	case message.ParamTagNull:
		return message.ParamNull(), nil
	case message.ParamTagInt32:
		v, err := d.readInt32()
		return message.ParamInt32(v), err
	case message.ParamTagString:
		v, err := d.readString()
		return message.ParamString(v), err
	case message.ParamTagInt64:
		v, err := d.readInt64()
		return message.ParamInt64(v), err
	case message.ParamTagDouble:
		v, err := d.readFloat64()
		return message.ParamDouble(v), err
	case message.ParamTagBool:
		v, err := d.readBool()
		return message.ParamBool(v), err
	case message.ParamTagBytes:
		n, err := d.readUint32()
		if err != nil {
			return message.Param{}, err
		}
		v, err := d.readRawBytes(int(n))
		return message.ParamBytes(v), err
	default:
		return message.Param{}, comerr.ErrInvalidMessagePayload
	}
}

func (d *decoder) readNullableParam() (*message.Param, error) {
	present, err := d.readBool()
	if err != nil || !present {
		return nil, err
	}
	p, err := d.readParam()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *decoder) readParams() ([]message.Param, error) {
	n, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	// Each Param is at least one byte (its tag), so n can't legitimately
	// exceed the bytes left in the payload; reject before allocating.
	if !d.hasBytes(int(n)) {
		return nil, comerr.ErrInvalidMessagePayload
	}
	params := make([]message.Param, n)
	for i := range params {
		p, err := d.readParam()
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	return params, nil
}

func (d *decoder) readNullableException() (*message.RemoteException, error) {
	present, err := d.readBool()
	if err != nil || !present {
		return nil, err
	}
	msg, err := d.readString()
	if err != nil {
		return nil, err
	}
	version, err := d.readString()
	if err != nil {
		return nil, err
	}
	return &message.RemoteException{Message: msg, ServiceVersion: version}, nil
}
