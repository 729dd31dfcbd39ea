package sigcond

import "fmt"

// Policy selects how Apply trades causality against phase distortion.
type Policy int

const (
	// PolicyTwoPassZeroPhase filters forward, then backward over the
	// reversed result. Zero delay, non-causal, squared magnitude response.
	PolicyTwoPassZeroPhase Policy = iota

	// PolicyCausal runs one forward pass seeded with the first sample. The
	// output keeps the filter's group delay.
	PolicyCausal

	// PolicyCausalDelayCut is PolicyCausal with the first Delay() samples
	// dropped, so output sample 0 lines up with input sample 0. The output
	// is Delay() samples shorter than the input.
	PolicyCausalDelayCut

	// PolicyReflectZeroPhase mirrors len(taps)-1 samples onto each edge and
	// applies the taps once, centred. Zero delay in a single pass.
	PolicyReflectZeroPhase
)

var policyNames = map[Policy]string{
	PolicyTwoPassZeroPhase: "two_pass_zero_phase",
	PolicyCausal:           "causal",
	PolicyCausalDelayCut:   "causal_delay_cut",
	PolicyReflectZeroPhase: "reflect_zero_phase",
}

// ParsePolicy maps a policy name to its Policy.
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, &InvalidPolicyError{Name: name}
}

// String returns the policy name accepted by ParsePolicy.
func (p Policy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Validate returns an *InvalidPolicyError for values outside the enum.
func (p Policy) Validate() error {
	if _, ok := policyNames[p]; !ok {
		return &InvalidPolicyError{Name: p.String()}
	}
	return nil
}

// OutputLen returns the output length of a policy for n input samples and
// the given taps.
func (p Policy) OutputLen(n int, taps TapSet) int {
	if p == PolicyCausalDelayCut {
		return max(n-taps.Delay(), 0)
	}
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
