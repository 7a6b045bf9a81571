package contract

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ClauseRegistry maps clause kind tags to payload constructors. It is built
// once at startup and passed to the components that decode or encode clause
// payloads; it is immutable after construction and safe for concurrent use.
type ClauseRegistry struct {
	factories map[ClauseKind]func() ClauseData
}

// NewClauseRegistry builds the registry over the closed set of clause kinds.
func NewClauseRegistry() *ClauseRegistry {
	return &ClauseRegistry{
		factories: map[ClauseKind]func() ClauseData{
			ClauseKindText:        func() ClauseData { return &TextClauseData{} },
			ClauseKindEntity:      func() ClauseData { return &EntityClauseData{} },
			ClauseKindScope:       func() ClauseData { return &ScopeClauseData{} },
			ClauseKindExpiry:      func() ClauseData { return &ExpiryClauseData{} },
			ClauseKindTermination: func() ClauseData { return &TerminationClauseData{} },
		},
	}
}

// Kinds returns all registered clause kinds in stable order
func (r *ClauseRegistry) Kinds() []ClauseKind {
	kinds := make([]ClauseKind, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Decode unmarshals a raw payload into the variant registered for kind
func (r *ClauseRegistry) Decode(kind ClauseKind, raw []byte) (ClauseData, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("unregistered clause kind %q", kind)
	}
	data := factory()
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("decode clause payload for kind %q: %w", kind, err)
	}
	return data, nil
}

// Encode marshals a payload and returns its kind tag alongside the raw JSON
func (r *ClauseRegistry) Encode(data ClauseData) (ClauseKind, []byte, error) {
	if data == nil {
		return "", nil, fmt.Errorf("nil clause payload")
	}
	kind := data.Kind()
	if _, ok := r.factories[kind]; !ok {
		return "", nil, fmt.Errorf("unregistered clause kind %q", kind)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", nil, fmt.Errorf("encode clause payload for kind %q: %w", kind, err)
	}
	return kind, raw, nil
}
