// Package logger wraps zerolog with structured, component-tagged logging
// for streamkit.
//
// Library code obtains a logger via Nop (silent default) or from the caller;
// applications configure the global logger once at startup:
//
//	logger.Init(logger.Config{Level: "debug", Format: "console"})
//	log := logger.WithComponent("paginate")
//	log.Info("fetch settled", logger.Fields("page", 3, "items", 20))
//
// WithContext enriches a logger with the OpenTelemetry trace and span IDs
// carried by a context, so stream-internal logs correlate with traces.
package logger
