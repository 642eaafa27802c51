package selection

// PolicyName identifies a redistribution policy in configuration
type PolicyName string

const (
	// PolicyEqualSplit moves the picked participant's weight to everyone else in equal shares
	PolicyEqualSplit PolicyName = "equal_split"

	// PolicyRenormalize does the equal split and then rescales the wheel so the total equals N
	PolicyRenormalize PolicyName = "renormalize"
)

// ConservationTolerance is the float tolerance used when checking weight conservation
const ConservationTolerance = 1e-9

// ArrivalWeight is the implicit weight a participant brings to a wheel.
// Removing a participant hands exactly this much back to the rest of the wheel.
const ArrivalWeight = 1.0
