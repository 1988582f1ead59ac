// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// MalformedInputError reports an export input that could not be parsed or is
// structurally incomplete. Path is empty when the input did not come from a
// file.
type MalformedInputError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed export input"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Cause }

// MissingAssetError reports a referenced chapter text or image file that is
// absent on disk.
type MissingAssetError struct {
	Path  string
	Cause error
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("missing asset %s", e.Path)
}

func (e *MissingAssetError) Unwrap() error { return e.Cause }

// UnresolvedImageReferenceError reports an embedded-image placeholder whose
// key has no entry in the novel's embedded-image mapping.
type UnresolvedImageReferenceError struct {
	NovelID int
	Key     string
}

func (e *UnresolvedImageReferenceError) Error() string {
	return fmt.Sprintf("novel %d: unresolved embedded image reference %q", e.NovelID, e.Key)
}

// InvalidTemplateError reports a template setting that is not a string.
// Templates reach the builder untyped when they come from the config file.
type InvalidTemplateError struct {
	Value any
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("template must be a string, got %T", e.Value)
}

// InvalidOutputTargetError reports an output directory that does not exist.
type InvalidOutputTargetError struct {
	Path string
}

func (e *InvalidOutputTargetError) Error() string {
	return fmt.Sprintf("output directory %s does not exist", e.Path)
}
