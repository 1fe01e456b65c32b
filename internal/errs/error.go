package errs

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrAlreadyReturned = errors.New("lending already returned")
	ErrDuplicateLoan   = errors.New("reader already has an active loan for this book")
	ErrNoCopies        = errors.New("no copies available")
	ErrHasOpenLoans    = errors.New("reader has active loans")
	ErrCopiesOnLoan    = errors.New("book has copies on loan")
	ErrNotOverdue      = errors.New("lending is not overdue")
)
