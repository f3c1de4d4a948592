// Package widget implements the embeddable schedule widget: a feed loader
// with explicit display states, a declarative filter engine, and a card
// renderer producing the HTML fragment host pages inject.
package widget

// State is the widget's display state. Exactly one applies at any moment.
type State string

const (
	StateLoading   State = "loading"
	StateError     State = "error"
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)
