// Package logger is a standardized event logging framework for shell
// sessions.
//
// Entries are written as newline delimited JSON, each line being the
// protojson encoding of a google.protobuf.Struct.
package logger
