package resumes

import "errors"

var (
	// ErrNotFound covers both absent records and records owned by another
	// user. Callers cannot distinguish the two.
	ErrNotFound = errors.New("resume not found")

	// ErrNoFile means the multipart request carried no resume file.
	ErrNoFile = errors.New("no file uploaded")

	// ErrUnsupportedType means the declared content type is not extractable.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrInvalidInput covers malformed requests and unextractable payloads.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFileGone means the record exists but its stored file was removed.
	ErrFileGone = errors.New("stored file no longer available")
)
