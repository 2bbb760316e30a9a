package runparams

import (
	"strconv"
	"strings"
)

// Params holds the run parameters recovered from a result directory path.
// Either field may be nil when the path carries no usable segment.
type Params struct {
	NodeCount  *int `json:"node_count"`
	MsgSizeMiB *int `json:"msgsize_mib"`
}

// FromPath scans the path segments of a result directory for the
// benchmark naming convention node_<N> and msgsize_<S>MiB and returns
// whatever it could recover. The last parseable segment wins; segments
// that fail to parse are ignored. It never fails: a path without the
// convention yields empty Params.
func FromPath(path string) Params {
	var params Params

	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		switch {
		case strings.HasPrefix(part, "node_"):
			if n, err := strconv.Atoi(strings.TrimPrefix(part, "node_")); err == nil {
				params.NodeCount = &n
			}
		case strings.HasPrefix(part, "msgsize_"):
			s := strings.TrimSuffix(strings.TrimPrefix(part, "msgsize_"), "MiB")
			if n, err := strconv.Atoi(s); err == nil {
				params.MsgSizeMiB = &n
			}
		}
	}

	return params
}

// NodeCountLabel renders the node count for CSV output, using the
// fallback token when the path did not provide one.
func (p Params) NodeCountLabel(unset string) string {
	return intLabel(p.NodeCount, unset)
}

// MsgSizeLabel renders the message size in MiB for CSV output, using
// the fallback token when the path did not provide one.
func (p Params) MsgSizeLabel(unset string) string {
	return intLabel(p.MsgSizeMiB, unset)
}

func intLabel(v *int, unset string) string {
	if v == nil {
		return unset
	}
	return strconv.Itoa(*v)
}
