package config

import "time"

// Network timeouts.
const (
	FetchTimeout  = 15 * time.Second
	SubmitTimeout = 30 * time.Second
)

// Treasury defaults.
const (
	// FallbackTreasuryBalance is the documented demo balance used when the
	// authenticated balance fetch is unavailable.
	FallbackTreasuryBalance = "500000"
	DefaultCurrency         = "NGNTS"
	CurrencySymbol          = "₦"
)

// Fallback policies for the treasury balance.
const (
	FallbackAllow  = "allow"
	FallbackDeny   = "deny"
	FallbackAlways = "always"
)

// ShortcutPercents are the percentage-of-balance amount shortcuts.
var ShortcutPercents = []int{25, 50, 75, 100}

// Collaborator endpoints.
const (
	ProjectsPath         = "/api/projects"
	TreasuryBalancePath  = "/api/system/treasury-balance"
	TreasuryAllocatePath = "/api/admin/treasury/allocate"
	IdempotencyHeader    = "Idempotency-Key"
)

// User-facing messages.
const (
	MsgInvalidAmount       = "Please enter a valid amount"
	MsgInsufficientBalance = "Insufficient treasury balance"
	MsgSubmitFailed        = "Failed to initiate capital deployment"
	MsgSubmitTimeout       = "Capital deployment request timed out"
	GovernanceDisclosure   = "This deployment creates a capital allocation request. Funds move only after the multisig signers approve it on-chain."
)

// Application settings.
const (
	AppName        = "seedx"
	LogFileName    = "seedx.log"
	LedgerFileName = "receipts.db"
	ConfigFileName = "config.yaml"
	DefaultBaseURL = "http://localhost:5000"
)
