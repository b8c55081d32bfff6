package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrGradeLevelInvalid        = errors.New("the grade level is not a valid grade level for this school")
	ErrAmountNotPositive        = errors.New("contribution amounts must be larger than zero")
	ErrMethodInvalid            = errors.New("the payment method must be one of cash, bank, online, other")
	ErrClearingInvalid          = errors.New("the clearing state must be one of pending, cleared")
	ErrReceiptNumberNotUnique   = errors.New("the receipt number is already in use")
	ErrStudentReferenceNotFound = errors.New("there is no student for the ID you referenced")
	ErrStudentHasContributions  = errors.New("the student has contribution records and can only be archived, not deleted")
)
