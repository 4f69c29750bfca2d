/*
Copyright 2024 The bilevelmatch Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package log provides a logging abstraction shared by every package in
// this module, so call sites never need to know whether the operator
// wired in the standard library or zap.
package log

import (
	"io/ioutil"
	"log"
	"os"

	"go.uber.org/zap"
)

// Logger defines an interface for logging messages.
type Logger interface {

	// Printf logs a formatted string.
	Printf(format string, args ...interface{})

	// Println logs a line.
	Println(args ...interface{})

	// Fatalf is equivalent to Printf() followed by a program abort.
	Fatalf(format string, args ...interface{})

	// Fatalln is equivalent to Println() followed by a program abort.
	Fatalln(args ...interface{})
}

type logger struct {
	log Logger
}

// Debug, Info, Stats and Trace are the four package-level loggers call
// sites use. Debug carries construction-time fallbacks (e.g. lossless
// mode), Stats carries one summary line per classifier/dispatcher run,
// Trace is discarded by default.
var (
	Debug = &logger{}
	Info  = &logger{}
	Stats = &logger{}
	Trace = &logger{}
)

// SetDebugLogger sets the debug logger.
func SetDebugLogger(log Logger) {
	Debug.log = log
}

// SetInfoLogger sets the info logger.
func SetInfoLogger(log Logger) {
	Info.log = log
}

// SetStatsLogger sets the stats logger.
func SetStatsLogger(log Logger) {
	Stats.log = log
}

// SetTraceLogger sets the trace logger.
func SetTraceLogger(log Logger) {
	Trace.log = log
}

// SetDefaultDebugLogger sets the default debug logger.
func SetDefaultDebugLogger() {
	SetDebugLogger(log.New(os.Stderr, "DEBUG: ", log.Ldate|log.Ltime))
}

// SetDefaultInfoLogger sets the default info logger.
func SetDefaultInfoLogger() {
	SetInfoLogger(log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime))
}

// SetDefaultStatsLogger sets the default stats logger.
func SetDefaultStatsLogger() {
	SetStatsLogger(log.New(os.Stderr, "STATS: ", log.Ldate|log.Ltime))
}

// SetDefaultTraceLogger sets the default trace logger; its output is
// discarded.
func SetDefaultTraceLogger() {
	SetTraceLogger(log.New(ioutil.Discard, "TRACE: ", log.Ldate|log.Ltime))
}

// SetDefaultLoggers sets all four loggers to their standard-library
// default.
func SetDefaultLoggers() {
	SetDefaultDebugLogger()
	SetDefaultInfoLogger()
	SetDefaultStatsLogger()
	SetDefaultTraceLogger()
}

// DisableLoggers turns off all logging.
func DisableLoggers() {
	SetDebugLogger(nil)
	SetInfoLogger(nil)
	SetStatsLogger(nil)
	SetTraceLogger(nil)
}

// SetZapLogger bridges a *zap.Logger into all four package-level
// loggers via zap.NewStdLog, so code written against this package's
// plain Logger interface can be backed by structured zap output without
// any call site change. Each of the four gets its own named child
// logger so the "debug"/"info"/"stats"/"trace" field distinguishes them
// in zap's structured output.
func SetZapLogger(z *zap.Logger) {
	SetDebugLogger(zap.NewStdLog(z.Named("debug")))
	SetInfoLogger(zap.NewStdLog(z.Named("info")))
	SetStatsLogger(zap.NewStdLog(z.Named("stats")))
	SetTraceLogger(zap.NewStdLog(z.Named("trace")))
}

// Printf writes a formatted message to the log.
func (l *logger) Printf(format string, args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Printf(format, args...)
}

// Println writes a line to the log.
func (l *logger) Println(args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Println(args...)
}

// Fatalf logs a formatted message and aborts the program.
func (l *logger) Fatalf(format string, args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Fatalf(format, args...)
}

// Fatalln logs a line and aborts the program.
func (l *logger) Fatalln(args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Fatalln(args...)
}
