package backend

import (
	"fmt"
	"strconv"
	"strings"
)

// Show renders v the way print statements output it
func Show(v Value) string {
	switch v := v.(type) {
	case Num:
		return strconv.FormatUint(uint64(v), 10)
	case Bool:
		return strconv.FormatBool(bool(v))
	case *Prim:
		return "<prim " + v.Name + ">"
	case *Closure:
		return "<closure>"
	case *Record:
		parts := make([]string, 0, 2*len(v.Names))
		for _, name := range v.Names {
			parts = append(parts, name, Show(v.Fields[name]))
		}
		return "<rec " + strings.Join(parts, ", ") + ">"
	case *Union:
		return v.Variant + ", " + Show(v.Payload)
	default:
		panic(fmt.Sprintf("unexpected value %T", v))
	}
}
