package service

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUploadInFlight      = errors.New("an upload is already being processed")
	ErrNoteNotFound        = errors.New("note not found")
	ErrNoteNotReady        = errors.New("note is not ready for chat")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrReplyPending        = errors.New("a reply is already pending for this note")
)
