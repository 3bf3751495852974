// Package config loads and validates wavemill configuration.
//
// Configuration is TOML with a fixed search order: an explicit --config
// path, ~/.config/wavemill/config.toml, then ./wavemill.toml. Missing files
// are not an error; defaults apply. Load expands ~ and relativity in all
// path fields so the rest of the program only ever sees absolute paths.
//
// The recognized extension sets and delivery-format table live here as
// immutable accessors (AudioExtensions, DeliveryFormats) so the stages
// receive them as configuration rather than reaching for package-level
// mutable state.
package config
