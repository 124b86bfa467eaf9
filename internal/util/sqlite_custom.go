package util

import (
	"database/sql/driver"
	"fmt"

	"modernc.org/sqlite"
)

// NormalizeTitleFunc is the name of the SQL function wrapping NormalizeTitle.
// The builtin lower() of sqlite only folds ASCII letters.
const NormalizeTitleFunc = "normalize_title"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(NormalizeTitleFunc, 1, normalizeTitle)
}

func normalizeTitle(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return "", nil
	case string:
		return NormalizeTitle(v), nil
	case []byte:
		return NormalizeTitle(string(v)), nil
	default:
		return nil, fmt.Errorf("invalid type: %T", args[0])
	}
}
