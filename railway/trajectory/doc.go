// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package trajectory derives the shared section geometry of one train from its
cyclic list of contacts.

# Trajectory

A trajectory is the ordered, cyclic list of contacts a train drives over. The
list is authored per train, so the same physical section may be listed
entrance-first (written forward) or exit-first (written backward), and may
wrap past the end of the list (split). All positions are ring indices:

	Wrap(i, n) == ((i % n) + n) % n

# Sign table

Every direction dependent quantity derives from one rule. A train travels
"with the writing" when (direction == Forward) == writtenForward. Such a train
enters through the entrance and leaves through the exit, any other train
enters through the exit and leaves through the entrance. Then:

	reservation = Step(entry, direction, -incoming)
	release     = Step(exit,  direction, +outgoing)

which yields, for entrance index e and exit index x:

	writtenForward  direction  reservation  release
	true            forward    e-incoming   x+outgoing
	true            backward   x+incoming   e-outgoing
	false           forward    x-incoming   e+outgoing
	false           backward   e+incoming   x-outgoing

# Validation

Build checks a Layout once and fails with a *ConfigurationError when the
trajectory cannot host the section, its buffer zones, the station and the
starting position. There is no degraded mode.
*/
package trajectory
