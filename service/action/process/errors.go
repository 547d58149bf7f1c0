package process

import "errors"

var errRequiredCmd = errors.New("attribute 'cmd' is required")
