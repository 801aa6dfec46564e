// Package service provides the business logic layer for the hours application.
// It ties the entry engine to the durable cache and the remote report source,
// providing one API for both CLI and TUI frontends.
package service

// LoadSource tells where the report set came from on startup
type LoadSource int

const (
	// SourceNone means neither the cache nor the remote source supplied reports
	SourceNone LoadSource = iota
	// SourceCache means a stored snapshot was adopted
	SourceCache
	// SourceRemote means reports were fetched and written to the cache
	SourceRemote
)

// String returns the lowercase name used in logs and CLI output
func (s LoadSource) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	default:
		return "none"
	}
}

// LoadResult describes the outcome of the startup load
type LoadResult struct {
	Source LoadSource
	// Err is the fetch failure when Source is SourceNone, nil otherwise
	Err error
}
