package models

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrLoadInFlight       = errors.New("load already in flight")
	ErrAllSourcesFailed   = errors.New("all sources failed")
	ErrNoMoreResults      = errors.New("no more results")
	ErrUnknownMarketplace = errors.New("unknown marketplace")
)
