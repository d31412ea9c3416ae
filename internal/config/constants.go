// Package config holds process-wide flags and constants shared across cosy's
// packages, kept separate from any single package to avoid import cycles.
package config

// Version is the current cosy module version.
var Version = "0.1.0"

// IsTestMode suppresses the per-Solve uuid run ID prefix from the
// façade's Iterator.Show debug listing so golden-output tests stay
// stable.
var IsTestMode = false

// DefaultSpecFile is the conventional name utils.ResolveSpecPath looks
// for when a directory is given instead of a file.
const DefaultSpecFile = "cosy.yaml"
