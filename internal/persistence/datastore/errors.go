package datastore

import "errors"

var ErrDestroyed = errors.New("datastore destroyed")
