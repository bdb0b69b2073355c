package config

// Layout constants.
const (
	// MinContentWidth is the narrowest frame the wizard renders into.
	MinContentWidth = 40

	// MaxContentWidth caps the frame width on wide terminals.
	MaxContentWidth = 96

	// DescriptionLines limits project descriptions in the selector.
	DescriptionLines = 1
)

// Display limits.
const (
	// MaxVisibleProjects limits projects shown before the selector scrolls.
	MaxVisibleProjects = 8

	// HistoryLimit is the default number of journal rows printed by `history`.
	HistoryLimit = 20

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Input constraints.
const (
	// MaxAmountLength bounds the amount text input.
	MaxAmountLength = 20
)
