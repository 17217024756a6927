package codes

import (
	errs "github.com/bdlm/errors"
	std "github.com/bdlm/std/error"
)

const (
	// ErrUnspecified - 1000: The error code was unspecified
	ErrUnspecified std.Code = iota + 1000
	// ErrInvalidSelection - 1001: An explicit property selection was empty
	ErrInvalidSelection
	// ErrEmptyFilter - 1002: A filter spec had no property or object specs
	ErrEmptyFilter
	// ErrInvalidSpec - 1003: A spec failed local validation
	ErrInvalidSpec
	// ErrSession - 1004: The RPC session failed
	ErrSession
	// ErrFilterCreate - 1005: CreateFilter was rejected
	ErrFilterCreate
	// ErrQueryFailed - 1006: A property retrieval failed
	ErrQueryFailed
	// ErrInvalidPowerOp - 1007: The power operation is not in the command table
	ErrInvalidPowerOp
	// ErrObjectsNotFound - 1008: One or more names did not resolve to exactly one object
	ErrObjectsNotFound
	// ErrNoTargets - 1009: No target objects were given
	ErrNoTargets
	// ErrPowerOpFailed - 1010: One or more power tasks ended in error
	ErrPowerOpFailed
	// ErrCancelled - 1011: The caller cancelled the watch
	ErrCancelled
	// ErrTimedOut - 1012: The watch deadline passed
	ErrTimedOut
	// ErrInvalidConfig - 1013: The client configuration is invalid
	ErrInvalidConfig
)

func init() {
	errs.Codes[ErrUnspecified] = errs.ErrCode{Ext: "An unknown error occurred", Int: "An unknown error occurred", HTTP: 500}
	errs.Codes[ErrInvalidSelection] = errs.ErrCode{Ext: "Invalid property selection", Int: "explicit property selection is empty", HTTP: 400}
	errs.Codes[ErrEmptyFilter] = errs.ErrCode{Ext: "Invalid property filter", Int: "property filter requires at least one property spec and one object spec", HTTP: 400}
	errs.Codes[ErrInvalidSpec] = errs.ErrCode{Ext: "Invalid specification", Int: "specification failed validation", HTTP: 400}
	errs.Codes[ErrSession] = errs.ErrCode{Ext: "Session error", Int: "rpc session failed", HTTP: 502}
	errs.Codes[ErrFilterCreate] = errs.ErrCode{Ext: "Filter creation failed", Int: "property filter could not be created", HTTP: 502}
	errs.Codes[ErrQueryFailed] = errs.ErrCode{Ext: "Query failed", Int: "property query failed", HTTP: 502}
	errs.Codes[ErrInvalidPowerOp] = errs.ErrCode{Ext: "Invalid power operation", Int: "invalid power operation", HTTP: 400}
	errs.Codes[ErrObjectsNotFound] = errs.ErrCode{Ext: "Objects not found", Int: "one or more specified objects not found", HTTP: 404}
	errs.Codes[ErrNoTargets] = errs.ErrCode{Ext: "No targets", Int: "no managed object references given", HTTP: 400}
	errs.Codes[ErrPowerOpFailed] = errs.ErrCode{Ext: "Power operation failed", Int: "one or more power tasks failed", HTTP: 500}
	errs.Codes[ErrCancelled] = errs.ErrCode{Ext: "Cancelled", Int: "watch cancelled", HTTP: 499}
	errs.Codes[ErrTimedOut] = errs.ErrCode{Ext: "Timed out", Int: "watch timed out", HTTP: 504}
	errs.Codes[ErrInvalidConfig] = errs.ErrCode{Ext: "Invalid configuration", Int: "invalid configuration", HTTP: 400}
}
