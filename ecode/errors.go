package ecode

import (
	"fmt"
)

// Field messages, e.g. FieldIsInvalid("page") gives "page invalid".
var (
	FieldIsRequired = fieldMessage("required")
	FieldIsEmpty    = fieldMessage("empty")
	FieldIsInvalid  = fieldMessage("invalid")
	FieldIsReserved = fieldMessage("reserved")
	OutOfRange      = fieldMessage("out of range")
	AlreadyExist    = fieldMessage("already exists")
)

func fieldMessage(msg string) func(k ...string) string {
	return func(k ...string) string {
		if len(k) > 0 && k[0] != "" {
			return fmt.Sprintf("%s %s", k[0], msg)
		}
		return msg
	}
}
