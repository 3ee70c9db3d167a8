package sequence

// DefaultMaxCount caps numeric prefixes.
const DefaultMaxCount = 9999

// CountState accumulates a numeric prefix.
type CountState struct {
	Value  int
	Active bool
	max    int
}

// Reset clears the count.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit to the count and reports whether it was
// accepted. A leading '0' is not a count.
func (c *CountState) AccumulateDigit(digit int) bool {
	if digit < 0 || digit > 9 {
		return false
	}
	if !c.Active && digit == 0 {
		return false
	}
	c.Active = true

	limit := c.max
	if limit <= 0 {
		limit = DefaultMaxCount
	}
	if c.Value > (limit-digit)/10 {
		c.Value = limit
		return true
	}
	c.Value = c.Value*10 + digit
	return true
}

// Backspace drops the last digit. The count stays active while digits
// remain.
func (c *CountState) Backspace() {
	c.Value /= 10
	if c.Value == 0 {
		c.Active = false
	}
}

// Get returns the effective count, 1 when none was typed.
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}
