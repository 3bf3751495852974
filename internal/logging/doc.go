// Package logging builds the slog loggers used across wavemill.
//
// Two handler formats exist: a human-oriented console handler that hoists
// the component attribute into a prefix, and a JSON handler for machine
// consumption. Records go to stderr so batch progress on stdout stays
// parseable; a configured log directory adds an append-only wavemill.log.
package logging
