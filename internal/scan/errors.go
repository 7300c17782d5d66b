package scan

import (
	"errors"
	"fmt"
)

const (
	invalidRootPathMessageConstant        = "invalid root path"
	invalidPathErrorTemplateConstant      = "invalid root path %s: %s"
	rootPathMissingReasonConstant         = "does not exist"
	rootPathNotDirectoryReasonConstant    = "not a directory"
	rootPathUnresolvableReasonConstant    = "cannot be resolved"
	rootPathInaccessibleReasonConstant    = "cannot be inspected"
	walkFailedErrorTemplateConstant       = "scan of %s interrupted: %w"
	reportRenderErrorTemplateConstant     = "unable to render report: %w"
	reporterCreationErrorTemplateConstant = "invalid report options: %w"
)

// ErrInvalidRootPath matches every InvalidPathError.
var ErrInvalidRootPath = errors.New(invalidRootPathMessageConstant)

// InvalidPathError reports a scan root that does not exist or is not a directory.
type InvalidPathError struct {
	Path   string
	Reason string
	Cause  error
}

// Error describes the invalid path.
func (pathError InvalidPathError) Error() string {
	return fmt.Sprintf(invalidPathErrorTemplateConstant, pathError.Path, pathError.Reason)
}

// Unwrap exposes the underlying filesystem error.
func (pathError InvalidPathError) Unwrap() error {
	return pathError.Cause
}

// Is reports whether target is ErrInvalidRootPath.
func (pathError InvalidPathError) Is(target error) bool {
	return target == ErrInvalidRootPath
}
