package version

// Version is set at build time with -ldflags "-X ...".
var Version = "v0.0.0-dev"

// GitCommit is set at build time.
var GitCommit = "unknown"
