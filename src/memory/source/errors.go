package source

// InputFormatError reports a candidate document or query that cannot be
// parsed into the expected structural shape. Per-record anomalies are not
// format errors; they are defaulted or skipped during decoding.
type InputFormatError struct {
	Err error
}

func (e *InputFormatError) Error() string {
	return "invalid input format: " + e.Err.Error()
}

func (e *InputFormatError) Unwrap() error { return e.Err }

// ResourceError reports a candidate source that cannot be read or opened.
type ResourceError struct {
	Err error
}

func (e *ResourceError) Error() string {
	return "memory source unavailable: " + e.Err.Error()
}

func (e *ResourceError) Unwrap() error { return e.Err }
