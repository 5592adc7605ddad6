package store

// Record is the persisted status of one region.
//
// The first two JSON keys match the state file layout of earlier versions of
// the tool, so existing state files keep loading.
type Record struct {
	// Active reports whether contingency was active at the last check.
	Active bool `json:"contigencia_ativa"`

	// Details is the raw status text shown on the page for the region.
	Details string `json:"informacoes_contigencia"`

	// Notified is set once the last transition was delivered to a channel.
	// Files written before the flag existed load it as false.
	Notified bool `json:"notificado"`
}

// Store defines the interface for loading and saving the region state.
//
// Implementations replace the whole mapping on Save; a Load following a
// failed Save must observe either the old or the new mapping, never a mix.
type Store interface {
	// Load returns the persisted mapping. An absent state is an empty,
	// non-nil map and no error.
	Load() (map[string]Record, error)

	// Save overwrites the persisted mapping with m.
	Save(m map[string]Record) error
}

// copyRecords returns a shallow copy of m (Record has no reference fields).
func copyRecords(m map[string]Record) map[string]Record {
	out := make(map[string]Record, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
