package game

import "errors"

var (
	ErrNoProfile    = errors.New("no-profile")
	ErrItemNotOwned = errors.New("item-not-owned")
)
