package errorutil

import "errors"

// ErrNoCaptureData indicates a request carried no usable profiling export.
var ErrNoCaptureData = errors.New("no capture data")
