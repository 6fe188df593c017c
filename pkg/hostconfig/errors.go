package hostconfig

import "fmt"

// ReadError reports an existing config file that could not be parsed.
// Fatal: a malformed config must never be silently overwritten.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading host config %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// DirError reports a failure to create the config's parent directory.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("creating config directory %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// WriteError reports a failure to persist the config. The original
// file is untouched when this is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing host config %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
