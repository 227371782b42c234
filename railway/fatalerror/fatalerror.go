// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fatalerror

// This package defines the error types reported when a scenario cannot be built.
// Separate package for namespacing

// ErrorType classifies a construction-time failure
type ErrorType string

const (
	InvalidTrajectory  ErrorType = "Config.InvalidTrajectory"  // empty trajectory or duplicated contact
	ContactNotFound    ErrorType = "Config.ContactNotFound"    // contact is not part of the trajectory
	InvalidGeometry    ErrorType = "Config.InvalidGeometry"    // entrance and exit are the same contact
	InvalidStart       ErrorType = "Config.InvalidStart"       // starting contacts overlap the section or its buffers
	InvalidStation     ErrorType = "Config.InvalidStation"     // station inside the section or its buffers
	TrajectoryTooShort ErrorType = "Config.TrajectoryTooShort" // no room for section, buffers and station
	InvalidScenario    ErrorType = "Config.InvalidScenario"    // scenario file does not match its schema
	Unknown            ErrorType = "Unknown"
)
