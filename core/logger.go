/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
)

var logLevel = log.InfoLevel
var shouldPrintTraceLogs = false
var logFileObj *os.File

// InitializeLogger sends log output to logFile, or to stdout when logFile is empty, at the level
// named by core.log_level.
func InitializeLogger(logFile string) error {
	var out io.Writer = os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
		logFileObj = f
		out = f
	}
	SetLogOutput(out)
	SetLogLevel(GetConfigStringDefault("core.log_level", "INFO"))
	return nil
}

// SetLogOutput replaces the log destination.
func SetLogOutput(out io.Writer) {
	log.SetHandler(text.New(out))
}

// SetLogLevel sets the minimum level logged. TRACE is printed as DEBUG. Unknown names mean INFO.
func SetLogLevel(name string) {
	shouldPrintTraceLogs = strings.EqualFold(name, "TRACE")
	if shouldPrintTraceLogs {
		logLevel = log.DebugLevel
	} else if level, err := log.ParseLevel(strings.ToLower(name)); err == nil {
		logLevel = level
	} else {
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)
}

// ShutdownLogger closes the log file, if any.
func ShutdownLogger() {
	if logFileObj != nil {
		SetLogOutput(os.Stdout)
		logFileObj.Close()
		logFileObj = nil
	}
}

func generateLogMessage(components ...interface{}) string {
	var message strings.Builder
	for _, component := range components {
		switch v := component.(type) {
		case string:
			message.WriteString(v)
		case int:
			message.WriteString(strconv.Itoa(v))
		case uint16:
			message.WriteString(strconv.FormatUint(uint64(v), 10))
		case uint32:
			message.WriteString(strconv.FormatUint(uint64(v), 10))
		case uint64:
			message.WriteString(strconv.FormatUint(v, 10))
		case error:
			message.WriteString(v.Error())
		default:
			fmt.Fprint(&message, component)
		}
	}
	return message.String()
}

func logEntry(module interface{}) *log.Entry {
	return log.WithField("module", fmt.Sprint(module))
}

// LogFatal logs a message at the FATAL level and exits.
func LogFatal(module interface{}, components ...interface{}) {
	logEntry(module).Fatal(generateLogMessage(components...))
}

// LogError logs a message at the ERROR level.
func LogError(module interface{}, components ...interface{}) {
	if logLevel <= log.ErrorLevel {
		logEntry(module).Error(generateLogMessage(components...))
	}
}

// LogWarn logs a message at the WARN level.
func LogWarn(module interface{}, components ...interface{}) {
	if logLevel <= log.WarnLevel {
		logEntry(module).Warn(generateLogMessage(components...))
	}
}

// LogInfo logs a message at the INFO level.
func LogInfo(module interface{}, components ...interface{}) {
	if logLevel <= log.InfoLevel {
		logEntry(module).Info(generateLogMessage(components...))
	}
}

// LogDebug logs a message at the DEBUG level.
func LogDebug(module interface{}, components ...interface{}) {
	if logLevel <= log.DebugLevel {
		logEntry(module).Debug(generateLogMessage(components...))
	}
}

// LogTrace logs a message at the TRACE level (really just additional DEBUG messages).
// Arguments are not formatted unless TRACE is enabled.
func LogTrace(module interface{}, components ...interface{}) {
	if shouldPrintTraceLogs {
		logEntry(module).Debug(generateLogMessage(components...))
	}
}
