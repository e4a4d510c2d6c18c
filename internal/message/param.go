package message

// ParamTag is the wire tag for a RemoteInvoke parameter's primitive type.
type ParamTag byte

const (
	ParamTagNull   ParamTag = 0
	ParamTagInt32  ParamTag = 1
	ParamTagString ParamTag = 2
	ParamTagInt64  ParamTag = 3
	ParamTagDouble ParamTag = 4
	ParamTagBool   ParamTag = 5
	ParamTagBytes  ParamTag = 6
)

// Param is the closed primitive union RemoteInvoke parameters and return
// values draw from. Only the field matching Tag is meaningful.
type Param struct {
	Tag   ParamTag
	I32   int32
	I64   int64
	F64   float64
	Bool  bool
	Str   string
	Bytes []byte
}

func ParamNull() Param                { return Param{Tag: ParamTagNull} }
func ParamInt32(v int32) Param        { return Param{Tag: ParamTagInt32, I32: v} }
func ParamString(v string) Param      { return Param{Tag: ParamTagString, Str: v} }
func ParamInt64(v int64) Param        { return Param{Tag: ParamTagInt64, I64: v} }
func ParamDouble(v float64) Param     { return Param{Tag: ParamTagDouble, F64: v} }
func ParamBool(v bool) Param          { return Param{Tag: ParamTagBool, Bool: v} }
func ParamBytes(v []byte) Param       { return Param{Tag: ParamTagBytes, Bytes: v} }
