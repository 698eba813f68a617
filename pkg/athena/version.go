// Package athena holds module-level metadata shared by the CLI and library.
package athena

// Version is the athena release version. Bumped on each tagged release.
const Version = "0.1.0"
