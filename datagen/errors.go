package datagen

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("invalid generator configuration")
	// ErrSampling matches every *SamplingError via errors.Is.
	ErrSampling = errors.New("degenerate sampling window")
)

// ConfigurationError reports a distribution or generator parameter that was
// rejected at construction time.
type ConfigurationError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Param, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// SamplingError reports a target-id request whose window cannot hold an id.
type SamplingError struct {
	DestSize  int64
	EdgeCount int64
	Index     int64
	Reason    string
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("sampling dest=%d edges=%d index=%d: %s", e.DestSize, e.EdgeCount, e.Index, e.Reason)
}

func (e *SamplingError) Is(target error) bool {
	return target == ErrSampling
}

func checkSampleArgs(destSize, edgeCount, index int64) error {
	switch {
	case destSize <= 0:
		return &SamplingError{destSize, edgeCount, index, "destination space is empty"}
	case edgeCount <= 0:
		return &SamplingError{destSize, edgeCount, index, "edge count must be positive"}
	case index < 0 || index >= edgeCount:
		return &SamplingError{destSize, edgeCount, index, "index out of range"}
	}
	return nil
}
