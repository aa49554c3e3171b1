package models

// Ward conditions drive the simulator's per-patient signal shape.
const (
	ConditionStable  = "stable"
	ConditionAcute   = "acute"
	ConditionChronic = "chronic"
	ConditionNoisy   = "noisy"
)

// Subject is one selectable entry of the static ward roster.
type Subject struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Condition string `json:"condition,omitempty"` // stable | acute | chronic | noisy
}
