package usecases

const (
	// BpsDenominator is the fee rate denominator.
	BpsDenominator = 10000

	// DefaultFeeBasisPoints is the rate used until an admin sets one.
	DefaultFeeBasisPoints = 10

	// MaxFeeBasisPoints caps the configurable rate at 1%.
	MaxFeeBasisPoints = 100

	// AttestationPollBatch bounds how many pending transfers one poll
	// iteration inspects.
	AttestationPollBatch = 50
)
