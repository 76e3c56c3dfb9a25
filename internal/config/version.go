package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

func validateConstraint(c string) error {
	if _, err := semver.NewConstraint(c); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidConstraint, c, err)
	}
	return nil
}
