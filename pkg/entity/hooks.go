package entity

// Trigger tells why a validation pass ran.
type Trigger string

const (
	TriggerConstruct Trigger = "construct"
	TriggerWrite     Trigger = "write"
	TriggerExplicit  Trigger = "explicit"
)

// ValidationEvent describes a completed validation pass.
type ValidationEvent struct {
	Kind    string  `json:"kind"`
	Label   string  `json:"label"`
	Trigger Trigger `json:"trigger"`
	Valid   bool    `json:"valid"`
	Errors  Errors  `json:"errors"`
}

// Hooks defines callbacks for entity observability.
type Hooks struct {
	OnValidate func(*ValidationEvent)
}

// Chain returns hooks that call h and then next.
func (h Hooks) Chain(next Hooks) Hooks {
	if h.OnValidate == nil {
		return next
	}
	if next.OnValidate == nil {
		return h
	}
	first, second := h.OnValidate, next.OnValidate
	return Hooks{OnValidate: func(e *ValidationEvent) {
		first(e)
		second(e)
	}}
}
