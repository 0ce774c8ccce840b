package core

import "errors"

var (
	ErrUnparseableAnswer = errors.New("answer is not a recognized boolean")
	ErrSessionNotFound   = errors.New("no session for client")
	ErrStoreOperation    = errors.New("store operation failed")
	ErrEmptyCorpus       = errors.New("corpus contains no words")
)
