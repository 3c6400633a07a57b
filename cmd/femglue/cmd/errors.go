package cmd

import "errors"

var errUnknownOutput = errors.New("unknown output format")
