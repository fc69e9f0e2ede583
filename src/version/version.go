package version

// Version is the llm-switch release version. Overridden at build time via
// -ldflags "-X llm-switch/src/version.Version=...".
var Version = "0.1.0-dev"
