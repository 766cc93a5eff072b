// Package types provides type definitions for structured data used throughout the offer-analyzer system.
package types

// Script tones, from strongest to softest negotiating position
const (
	ToneAssertive = "assertive"
	ToneBalanced  = "balanced"
	ToneHumble    = "humble"
)

// NegotiationTip is a short piece of negotiation advice.
type NegotiationTip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ScriptBundle holds the three generated negotiation email scripts plus
// supporting tips and talking points.
type ScriptBundle struct {
	Assertive     string           `json:"assertive"`
	Balanced      string           `json:"balanced"`
	Humble        string           `json:"humble"`
	Tips          []NegotiationTip `json:"tips"`
	TalkingPoints []string         `json:"talking_points"`
}
