// DUMP/RESTORE are registered for command-table completeness but don't
// serialize to the real RDB wire format; no replica or migration tool
// in this system needs to read the bytes back, so both sides just
// report the limitation instead of inventing an incompatible format.
package handlers

import (
	"github.com/vkeydb/vkeydb/internal/resp"
)

func hDump(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) != 1 {
		return nil, ErrWrongArgs
	}
	if _, ok := c.DB().Get(string(args[0])); !ok {
		return resp.NewNullBulk(), nil
	}
	return resp.NewError("ERR", "DUMP is not supported by this server"), nil
}

func hRestore(c *Context, args [][]byte) (*resp.Value, error) {
	if len(args) < 3 {
		return nil, ErrWrongArgs
	}
	return resp.NewError("ERR", "RESTORE is not supported by this server"), nil
}
