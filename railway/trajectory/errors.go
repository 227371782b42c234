// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package trajectory

import (
	"fmt"

	"go.amzn.com/trainsim/railway/fatalerror"
)

// ConfigurationError is returned by every construction-time check of this package.
type ConfigurationError struct {
	Type   fatalerror.ErrorType
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Reason)
}

// Is matches any ConfigurationError of the same type, so sentinels below work with errors.Is.
func (e *ConfigurationError) Is(target error) bool {
	t, ok := target.(*ConfigurationError)
	return ok && t.Type == e.Type
}

var (
	ErrInvalidTrajectory  = &ConfigurationError{Type: fatalerror.InvalidTrajectory}
	ErrNotFound           = &ConfigurationError{Type: fatalerror.ContactNotFound}
	ErrInvalidGeometry    = &ConfigurationError{Type: fatalerror.InvalidGeometry}
	ErrInvalidStart       = &ConfigurationError{Type: fatalerror.InvalidStart}
	ErrInvalidStation     = &ConfigurationError{Type: fatalerror.InvalidStation}
	ErrTrajectoryTooShort = &ConfigurationError{Type: fatalerror.TrajectoryTooShort}
	ErrInvalidScenario    = &ConfigurationError{Type: fatalerror.InvalidScenario}
)

func configError(errorType fatalerror.ErrorType, format string, args ...interface{}) error {
	return &ConfigurationError{Type: errorType, Reason: fmt.Sprintf(format, args...)}
}
