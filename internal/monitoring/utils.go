package monitoring

import "strings"

// getSegmentName shortens a runtime function name to pkg.receiver.method,
// e.g. "github.com/x/internal/services.(*report).Run" -> "services.report.Run".
func getSegmentName(fullFuncName string) string {
	name := fullFuncName
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	pkg, rest, ok := strings.Cut(name, ".")
	if !ok || rest == "" {
		return fullFuncName
	}

	if strings.HasPrefix(rest, "(") {
		receiver, method, found := strings.Cut(rest, ").")
		if !found {
			return fullFuncName
		}
		return pkg + "." + strings.TrimLeft(receiver, "(*") + "." + method
	}

	return pkg + "." + rest
}
