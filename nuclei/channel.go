package nuclei

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrChannelRequired is returned when an image has several channels and
	// no nuclei channel was given.
	ErrChannelRequired = errors.New("nuclei channel required")

	// ErrIllegalChannel is returned when the nuclei channel is not an integer
	// or is out of range for the image.
	ErrIllegalChannel = errors.New("illegal nuclei channel")
)

// ChannelSource is the configured nuclei channel, kept raw so that it is only
// validated when an image actually needs a channel chosen. Origin names where
// Raw came from, for error messages.
type ChannelSource struct {
	Raw    string
	Origin string
}

// Resolve picks the channel index for an image with numChannels channels.
func (c ChannelSource) Resolve(numChannels int) (int, error) {
	raw := strings.TrimSpace(c.Raw)
	if raw == "" {
		return 0, fmt.Errorf("image has %d channels and no nuclei channel is set (%s): %w", numChannels, c.origin(), ErrChannelRequired)
	}

	ch, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("nuclei channel %q (from %s) is not an integer: %w", c.Raw, c.origin(), ErrIllegalChannel)
	}
	if ch < 0 || ch >= numChannels {
		return 0, fmt.Errorf("nuclei channel %d (from %s) is out of range for channel axis of length %d: %w", ch, c.origin(), numChannels, ErrIllegalChannel)
	}

	return ch, nil
}

func (c ChannelSource) origin() string {
	if c.Origin == "" {
		return "unknown source"
	}
	return c.Origin
}
