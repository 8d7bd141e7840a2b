package calc

import "strings"

// ErrorDisplay is shown after a failed evaluation.
const ErrorDisplay = "Error"

// Calculator is the button-driven state behind the calculator window.
type Calculator struct {
	display string
	failed  bool
	err     error
}

// NewCalculator returns a calculator showing 0.
func NewCalculator() *Calculator {
	return &Calculator{display: "0"}
}

// Display returns the current display text.
func (c *Calculator) Display() string {
	if c.failed {
		return ErrorDisplay
	}
	return c.display
}

// Err returns the error behind an Error display, if any.
func (c *Calculator) Err() error {
	return c.err
}

// Press applies a button: digits, ".", "+", "-", "*", "/", "×", "÷",
// "=", "C" (clear) and "⌫" (backspace). Unknown buttons are ignored.
// Any button pressed after an error starts over from 0.
func (c *Calculator) Press(button string) {
	if c.failed {
		c.Clear()
		if button == "=" || button == "C" || button == "⌫" {
			return
		}
	}

	switch button {
	case "C":
		c.Clear()
	case "⌫":
		if len(c.display) <= 1 {
			c.display = "0"
			return
		}
		c.display = c.display[:len(c.display)-1]
	case "=":
		v, err := Eval(c.display)
		if err != nil {
			c.failed = true
			c.err = err
			return
		}
		c.display = Format(v)
	case "+", "-", "*", "/", "×", "÷":
		c.display += normalize(button)
	case ".", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if c.display == "0" && button != "." {
			c.display = button
			return
		}
		c.display += button
	}
}

// PressAll applies every rune of keys as a button.
func (c *Calculator) PressAll(keys string) {
	for _, r := range keys {
		if strings.TrimSpace(string(r)) == "" {
			continue
		}
		c.Press(string(r))
	}
}

// Clear resets the display to 0.
func (c *Calculator) Clear() {
	c.display = "0"
	c.failed = false
	c.err = nil
}
