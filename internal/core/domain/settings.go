package domain

// MaxFeeBps is the exclusive cap on the marketplace fee.
const MaxFeeBps = 9000

// DefaultFeeBps is the marketplace fee applied until the operator changes it.
const DefaultFeeBps = 25

// DefaultAuctionExtensionInterval is the default anti-snipe window, in blocks.
const DefaultAuctionExtensionInterval = 300

// Settings holds the process-wide marketplace configuration mutated only by
// the operator.
type Settings struct {
	FeeBps                   uint64
	FeeReceiver              string
	AuctionExtensionInterval uint64
}

// NewSettings returns the marketplace settings with defaults applied. The
// fee receiver defaults to the operator account.
func NewSettings(feeReceiver string) (*Settings, error) {
	if feeReceiver == "" {
		return nil, ErrInvalidAccount
	}
	return &Settings{
		FeeBps:                   DefaultFeeBps,
		FeeReceiver:              feeReceiver,
		AuctionExtensionInterval: DefaultAuctionExtensionInterval,
	}, nil
}

// SetFeeBps updates the marketplace fee, rejecting rates at or above MaxFeeBps.
func (s *Settings) SetFeeBps(bps uint64) error {
	if bps >= MaxFeeBps {
		return ErrFeeTooHigh
	}
	s.FeeBps = bps
	return nil
}

// SetFeeReceiver updates the account collecting marketplace fees.
func (s *Settings) SetFeeReceiver(receiver string) error {
	if receiver == "" {
		return ErrInvalidAccount
	}
	s.FeeReceiver = receiver
	return nil
}

// SetAuctionExtensionInterval updates the anti-snipe window. The new value
// only affects future extension computations, already extended end blocks
// are left untouched.
func (s *Settings) SetAuctionExtensionInterval(blocks uint64) error {
	if blocks == 0 {
		return ErrZeroAmount
	}
	s.AuctionExtensionInterval = blocks
	return nil
}
