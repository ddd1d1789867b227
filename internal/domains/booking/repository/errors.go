package repository

import "errors"

// ErrSlotCapacityExceeded is returned by InsertIfCapacity when the slot's
// non-cancelled booking count has already reached capacity. The transaction is
// rolled back and no row is written.
var ErrSlotCapacityExceeded = errors.New("slot capacity exceeded")
