package wander

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrPrecondition indicates a protected operation was attempted without
	// an identity token. The operation is never attempted against the network.
	ErrPrecondition = errors.New("missing identity token")

	// ErrFetch indicates the session list could not be fetched.
	ErrFetch = errors.New("fetch sessions failed")

	// ErrCreate indicates a new session could not be created.
	ErrCreate = errors.New("create session failed")

	// ErrRename indicates a session rename could not be pushed to the
	// backend. The local name keeps the derived value regardless.
	ErrRename = errors.New("rename session failed")

	// ErrDelete indicates a session could not be deleted.
	ErrDelete = errors.New("delete session failed")

	// ErrParse indicates a reply payload did not have the expected shape.
	// Absorbed into a fallback assistant turn, never shown raw.
	ErrParse = errors.New("malformed reply payload")

	// ErrUnsupported indicates the platform has no speech-recognition
	// capability.
	ErrUnsupported = errors.New("speech recognition unavailable")

	// ErrRecognition indicates a mid-recording speech-recognition failure.
	ErrRecognition = errors.New("speech recognition failed")
)
