package models

// ObserverMode controls how the balance observer treats its session between
// ticks.
type ObserverMode string

const (
	// ObserverIsolated opens a fresh session for every tick and closes it
	// afterwards.
	ObserverIsolated ObserverMode = "isolated"
	// ObserverReuse keeps one authenticated session across ticks until it
	// fails.
	ObserverReuse ObserverMode = "reuse"
)

// Valid reports whether m is one of the known observer modes.
func (m ObserverMode) Valid() bool {
	return m == ObserverIsolated || m == ObserverReuse
}
