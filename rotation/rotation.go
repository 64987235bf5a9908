// Package rotation maps raw configuration strings to an appendorr.Policy.
// Configuration usually arrives as two strings pulled from a settings store:
// a strategy ("none", "time" or "size") and a strategy-specific value. The
// mapping is done once, here; nothing downstream ever re-parses strings.
//
// Malformed configuration never fails the appender. Select logs a warning
// and returns a nil Policy, which appendorr treats as "never rotate".
// Losing rotation beats losing log capture.
package rotation

import (
	"log/slog"
	"strconv"

	"golift.io/appendorr"
	"golift.io/appendorr/sizepolicy"
	"golift.io/appendorr/timepolicy"
)

// Strategy names accepted by Select.
const (
	None = "none"
	Time = "time"
	Size = "size"
)

// Select returns the Policy described by a strategy and its value: the
// rotation interval specification for Time, the maximum byte count for Size.
// Invalid input degrades to no rotation with a warning on logger.
func Select(logger *slog.Logger, strategy, value string) appendorr.Policy {
	if logger == nil {
		logger = slog.Default()
	}

	switch strategy {
	case None, "":
		return nil
	case Time:
		policy, err := timepolicy.New(value)
		if err != nil {
			logger.Warn("rotation disabled: bad time rotation config", "interval", value, "error", err)

			return nil
		}

		return policy
	case Size:
		maxBytes, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			logger.Warn("rotation disabled: bad size rotation config", "size", value, "error", err)

			return nil
		}

		policy, err := sizepolicy.New(maxBytes)
		if err != nil {
			logger.Warn("rotation disabled: bad size rotation config", "size", value, "error", err)

			return nil
		}

		return policy
	default:
		logger.Warn("rotation disabled: unknown rotation strategy", "strategy", strategy)

		return nil
	}
}
