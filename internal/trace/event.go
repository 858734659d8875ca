package trace

import "time"

// Kind tells span boundaries apart from instant events.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindBegin:     "begin",
	KindEnd:       "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Coarser scopes have lower values.
type Scope uint8

const (
	// ScopeRun covers one CLI invocation.
	ScopeRun Scope = iota + 1
	// ScopeFile covers everything done for one file.
	ScopeFile
	// ScopePass covers one analyze-then-apply cycle.
	ScopePass
	// ScopeRule covers a single rule invocation.
	ScopeRule
)

var scopeNames = [...]string{
	ScopeRun:  "run",
	ScopeFile: "file",
	ScopePass: "pass",
	ScopeRule: "rule",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is a key-value pair attached to an event. Attrs keep insertion order.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is one trace record.
type Event struct {
	Time   time.Time
	Seq    uint64
	Kind   Kind
	Scope  Scope
	ID     uint64 // span ID; points get a fresh ID
	Parent uint64 // 0 at the top level
	Name   string
	Detail string
	Attrs  []Attr
}
