// Package logger builds the zap logger shared by commands, features and the HTTP stack.
//
// Level accepts debug, info, warn or error; Format selects json or console encoding.
// WithRayID attaches the request's RayID so handler logs can be correlated:
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	l := logger.WithRayID(log, c)
//	l.Error("Load failed", zap.Error(err))
package logger
