package schema

import (
	"strconv"
	"strings"
)

// FormatType renders a column type with its length or precision/scale.
//
// A present character length wins and is appended as (length); otherwise a
// precision and scale pair is appended as (precision,scale). Oracle first
// folds its catalog fields into a single length argument, so both dialects
// end up in the same rendering rule.
func FormatType(baseType string, length, precision, scale *int64, dialect Dialect) string {
	var arg string
	switch dialect {
	case DialectOracle:
		arg = oracleTypeArg(baseType, length, precision, scale)
	default:
		arg = standardTypeArg(length, precision, scale)
	}
	return renderType(baseType, arg)
}

func renderType(baseType, arg string) string {
	if arg == "" {
		return baseType
	}
	return baseType + "(" + arg + ")"
}

// standardTypeArg follows information_schema: CHARACTER_MAXIMUM_LENGTH,
// then NUMERIC_PRECISION/NUMERIC_SCALE. SQL Server reports -1 for (max).
func standardTypeArg(length, precision, scale *int64) string {
	if length != nil && *length != 0 {
		if *length == -1 {
			return "MAX"
		}
		return strconv.FormatInt(*length, 10)
	}
	if precision != nil && scale != nil {
		return strconv.FormatInt(*precision, 10) + "," + strconv.FormatInt(*scale, 10)
	}
	return ""
}

// oracleTypeArg collapses ALL_TAB_COLUMNS fields into one length argument.
// Only NUMBER carries precision/scale and only the character family carries
// a length; CHAR_LENGTH is reported as 0 for everything else.
func oracleTypeArg(baseType string, length, precision, scale *int64) string {
	switch {
	case baseType == "NUMBER" && precision != nil:
		s := int64(0)
		if scale != nil {
			s = *scale
		}
		return strconv.FormatInt(*precision, 10) + "," + strconv.FormatInt(s, 10)
	case isOracleCharType(baseType) && length != nil && *length != 0:
		return strconv.FormatInt(*length, 10)
	default:
		return ""
	}
}

func isOracleCharType(baseType string) bool {
	return strings.Contains(baseType, "CHAR") || baseType == "NVARCHAR2"
}
