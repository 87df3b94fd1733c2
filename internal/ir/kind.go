package ir

// Kind identifies the instruction class.
//
// The set is closed: these eight keywords are the complete instruction
// vocabulary of the genetic language, and dispatch sites are expected to
// switch exhaustively over them so a new kind is a compile-time-visible
// change rather than a silently ignored default branch.
type Kind string

const (
	// KindConfigure sets organelle parameters.
	KindConfigure Kind = "CONFIGURE"
	// KindConnect establishes a connection between organelles.
	KindConnect Kind = "CONNECT"
	// KindSpecialize commits the cell to a specialization profile.
	KindSpecialize Kind = "SPECIALIZE"
	// KindRegulate adjusts gene expression levels and regulation factors.
	KindRegulate Kind = "REGULATE"
	// KindDivide controls cell division.
	KindDivide Kind = "DIVIDE"
	// KindCommunicate carries inter-cellular communication.
	KindCommunicate Kind = "COMMUNICATE"
	// KindAdapt triggers adaptive responses.
	KindAdapt Kind = "ADAPT"
	// KindRepair triggers self-repair mechanisms.
	KindRepair Kind = "REPAIR"
)

// Kinds returns all instruction kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindConfigure,
		KindConnect,
		KindSpecialize,
		KindRegulate,
		KindDivide,
		KindCommunicate,
		KindAdapt,
		KindRepair,
	}
}

// ParseKind converts a keyword to a Kind.
// Returns false for anything outside the closed set.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindConfigure, KindConnect, KindSpecialize, KindRegulate,
		KindDivide, KindCommunicate, KindAdapt, KindRepair:
		return Kind(s), true
	default:
		return "", false
	}
}

// Valid reports whether k belongs to the closed kind set.
func (k Kind) Valid() bool {
	_, ok := ParseKind(string(k))
	return ok
}
