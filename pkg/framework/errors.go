package framework

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every ConfigurationError via errors.Is
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidChromosome matches every InvalidChromosomeError via errors.Is
	ErrInvalidChromosome = errors.New("invalid chromosome")
)

// ConfigurationError reports a setup that makes the search impossible,
// e.g. a block larger than the grid. It is detected before any search begins.
type ConfigurationError struct {
	Reason string
}

// NewConfigurationError formats a ConfigurationError
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InvalidChromosomeError reports a chromosome with the wrong length or an
// out-of-bounds position. It indicates a defect in an operator or factory.
// Index is the offending gene, or -1 when the chromosome as a whole is wrong.
type InvalidChromosomeError struct {
	Reason string
	Index  int
}

// NewInvalidChromosomeError formats an InvalidChromosomeError for gene index
func NewInvalidChromosomeError(index int, format string, args ...any) *InvalidChromosomeError {
	return &InvalidChromosomeError{Reason: fmt.Sprintf(format, args...), Index: index}
}

func (e *InvalidChromosomeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid chromosome at gene %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid chromosome: %s", e.Reason)
}

func (e *InvalidChromosomeError) Is(target error) bool {
	return target == ErrInvalidChromosome
}
