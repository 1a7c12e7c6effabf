package workflow

import (
	"fmt"

	"statusflow/internal/pkg/errs"
)

// Color is a semantic presentation hint for a status badge.
type Color string

const (
	ColorNeutral Color = "neutral"
	ColorInfo    Color = "info"
	ColorWarning Color = "warning"
	ColorSuccess Color = "success"
	ColorDanger  Color = "danger"
)

// Colors returns the semantic set in display order.
func Colors() []Color {
	return []Color{ColorNeutral, ColorInfo, ColorWarning, ColorSuccess, ColorDanger}
}

// Validate returns errs.ValueIsInvalidError for anything outside Colors().
func (c Color) Validate() error {
	switch c {
	case ColorNeutral, ColorInfo, ColorWarning, ColorSuccess, ColorDanger:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("color", fmt.Errorf("%q is not a semantic color", string(c)))
	}
}

// String returns the color token as sent to the dashboard.
func (c Color) String() string {
	return string(c)
}

// Phase groups statuses into coarse lifecycle stages for progress views.
type Phase string

// String returns the phase name.
func (p Phase) String() string {
	return string(p)
}
