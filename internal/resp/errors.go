package resp

import "fmt"

// ProtocolError is fatal: the decoder cannot recover and the connection
// must be closed (§4.A, §7).
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return "ERR Protocol error: " + e.Msg }

func newProtoErr(format string, args ...any) error {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}
