// Package taskboard holds module-wide metadata.
package taskboard

// Version is the taskboard release version.
const Version = "0.1.0"
