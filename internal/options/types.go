package options

// AutoloadYes is the autoload flag value that marks a row as loaded on
// every request. Anything else ("no", "off", plugin-invented values) is
// treated as not autoloaded.
const AutoloadYes = "yes"

// Row is one options-table row as seen by the audit. SizeBytes is the raw
// stored length of the value, never the decoded/unserialized size.
type Row struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Autoload  string `json:"autoload"`
}

// Autoloaded reports whether the row is flagged for unconditional load.
func (r Row) Autoloaded() bool {
	return r.Autoload == AutoloadYes
}

// OrphanCandidate is a row whose guessed owning-component prefix matched no
// installed component. PrefixGuess is always normalized and at least three
// characters long; rows that cannot be classified are never emitted.
type OrphanCandidate struct {
	Name        string `json:"name"`
	PrefixGuess string `json:"prefix_guess"`
	SizeBytes   int64  `json:"size_bytes"`
	Autoload    string `json:"autoload"`
}

// TransientPair correlates a timeout marker row with its value row.
//
// ValueName and SizeBytes are zero values when the value row has been
// deleted out from under its timeout marker; that is a tolerated state,
// not an error.
type TransientPair struct {
	TimeoutName  string `json:"timeout_name"`
	ValueName    string `json:"value_name"`
	ExpiresEpoch int64  `json:"expires_epoch"`
	SizeBytes    int64  `json:"size_bytes"`
}
