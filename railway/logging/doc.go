// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*

The simulator emits two kinds of logs:

1. Internal logs: operational logs of the coordination layer (grants, releases,
rendezvous rounds), written through logrus with InternalFormatter
2. Train messages: what each train reports on its display, written by a
MessageLogger to the console and any extra sink

*/
package logging
