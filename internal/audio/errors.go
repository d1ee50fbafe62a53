package audio

import "errors"

var (
	// ErrUnsupportedFormat means no decoder is registered for the file's extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNoAudioTrack means the container was opened but no decodable audio was found.
	ErrNoAudioTrack = errors.New("no decodable audio track")

	errNotSeekable = errors.New("seekable input required")
)
