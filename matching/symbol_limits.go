package matching

// Limits contains just 3 numbers (min, max and step) and used for price and lot size limitations.
type Limits struct {
	Min  Uint
	Max  Uint
	Step Uint
}

// IsZero returns true for unrestricted limits.
func (l Limits) IsZero() bool {
	return l.Min.IsZero() && l.Max.IsZero() && l.Step.IsZero()
}

func (l Limits) Valid() bool {
	if l.Min.GreaterThanOrEqualTo(l.Max) {
		return false
	}

	if l.Step.IsZero() {
		return false
	}

	if l.Min.LessThan(l.Step) {
		return false
	}

	return true
}

// Allows checks that v lies within [Min, Max] and is a multiple of Step.
// Zero limits allow any value.
func (l Limits) Allows(v Uint) bool {
	if l.IsZero() {
		return true
	}
	if v.LessThan(l.Min) || v.GreaterThan(l.Max) {
		return false
	}
	_, rem := v.QuoRem(l.Step)
	return rem.IsZero()
}

// ApplySteps rounds v down to a multiple of step.
func ApplySteps(v Uint, step Uint) Uint {
	steps, _ := v.QuoRem(step)
	v = steps.Mul(step)

	return v
}
