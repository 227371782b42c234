// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"log"
)

// MessageLogger shows what trains report on their display.
type MessageLogger interface {
	Message(trainID int, msg string)
	Printf(fmt string, args ...interface{})
}

// FormattedMessageLogger writes one prefixed line per train message.
type FormattedMessageLogger struct {
	logger *log.Logger
}

// NewMessageLogger writes train messages to every given writer.
func NewMessageLogger(outputs ...io.Writer) *FormattedMessageLogger {
	prefix, flags := "", log.Ltime|log.Lmicroseconds
	return &FormattedMessageLogger{
		logger: log.New(io.MultiWriter(outputs...), prefix, flags),
	}
}

// Message formats and logs a line attributed to trainID
func (l *FormattedMessageLogger) Message(trainID int, msg string) {
	l.logger.Println(fmt.Sprintf("TRAIN\tNo: %d\t%s", trainID, msg))
}

// Printf logs a line not attributed to a train
func (l *FormattedMessageLogger) Printf(format string, args ...interface{}) {
	l.logger.Printf(format, args...)
}
