package overlay

import (
	"errors"

	"routeview/internal/geo"
)

var (
	// ErrProjectionUnavailable means the host has no usable view: it is
	// not ready yet or was disposed.
	ErrProjectionUnavailable = errors.New("projection unavailable")

	// ErrEmptyInput is returned by Fit when called without coordinates.
	ErrEmptyInput = geo.ErrEmptyInput

	// ErrNoAnchors is returned when registering a binding without anchors.
	ErrNoAnchors = errors.New("binding has no anchors")

	// ErrNoApply is returned when registering a binding without an apply callback.
	ErrNoApply = errors.New("binding has no apply callback")

	// ErrNoID is returned when registering a binding with an empty id.
	ErrNoID = errors.New("binding has no id")
)
