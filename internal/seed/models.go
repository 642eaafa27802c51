package seed

// Wheel is the YAML shape of one seeded wheel
type Wheel struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description,omitempty"`
	Settings     Settings      `yaml:"settings"`
	Participants []Participant `yaml:"participants"`
}

// Settings mirrors the wheel settings; omitted fields keep the service defaults
type Settings struct {
	AllowRigging            *bool    `yaml:"allow_rigging,omitempty"`
	RequireReasonForRigging *bool    `yaml:"require_reason_for_rigging,omitempty"`
	DefaultWeight           *float64 `yaml:"default_weight,omitempty"`
}

// Participant is a seeded participant; a missing weight uses the wheel default
type Participant struct {
	Name   string   `yaml:"name"`
	Weight *float64 `yaml:"weight,omitempty"`
}

// Result reports what Apply did
type Result struct {
	Created []string
	Skipped []string
}
