// Package common provides the pieces every tool package shares: the Tool
// type and AddTools registration, behavior hint and argument helpers, the
// schema validator, and the instrumented handler wrapper that classifies
// failures and records spans, metrics and audit lines.
package common
