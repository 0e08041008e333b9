package sim

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tanema/gween/ease"
)

// ErrUnknownEasing is returned for an easing name not in Easings.
var ErrUnknownEasing = errors.New("unknown easing")

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"inoutcubic":   ease.InOutCubic,
	"inoutsine":    ease.InOutSine,
	"outbounce":    ease.OutBounce,
	"outelastic":   ease.OutElastic,
	"inoutbounce":  ease.InOutBounce,
	"inoutelastic": ease.InOutElastic,
}

// Easing looks up an easing function by name, ignoring case.
func Easing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// Easings returns the accepted easing names.
func Easings() []string {
	names := make([]string, 0, len(easings))
	for k := range easings {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
