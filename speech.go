package wander

import "fmt"

// RecordingState indicates the current state of a Recorder.
type RecordingState int

const (
	RecordingIdle   RecordingState = iota // No recording in progress.
	RecordingActive                       // Recognition running, transcript updates flowing.
	RecordingError                        // Idle with a transient, display-only error message.
)

// Recognizer wraps a platform speech-recognition capability.
//
// Start begins continuous recognition. Every onResult call carries the full
// accumulated transcript for the recognition session, not a delta; consumers
// must treat each emission as a full replacement of the composed-but-unsent
// text. Implementations deliver callbacks on the application's single
// cooperative loop, so no locking is needed.
type Recognizer interface {
	Start(onResult func(transcript string), onErr func(error)) error
	Stop()
}

// Recorder is the start/stop state machine over a Recognizer:
// idle → recording → idle, or recording → error → idle.
//
// Late callbacks are made inert by a monotonically incrementing recording
// token: callbacks capture the token at Start and are discarded when it no
// longer matches. Not safe for concurrent use.
type Recorder struct {
	recognizer   Recognizer // nil when the platform has no capability
	onTranscript func(string)

	active bool
	errMsg string
	token  int
}

// NewRecorder creates a Recorder. recognizer may be nil, in which case Start
// fails with ErrUnsupported and recording controls stay inert. onTranscript
// receives every full-transcript update while recording.
func NewRecorder(recognizer Recognizer, onTranscript func(string)) *Recorder {
	return &Recorder{recognizer: recognizer, onTranscript: onTranscript}
}

// State returns the current recording state.
func (r *Recorder) State() RecordingState {
	switch {
	case r.active:
		return RecordingActive
	case r.errMsg != "":
		return RecordingError
	default:
		return RecordingIdle
	}
}

// Err returns the transient error message, or "" when there is none. It is
// display-only state, cleared on the next successful Start.
func (r *Recorder) Err() string { return r.errMsg }

// Start begins recording. It fails with ErrUnsupported when the platform has
// no speech-recognition capability; recording stays idle and the failure is
// a non-fatal, user-visible notice. A failure to start the underlying
// recognizer is reported as ErrRecognition and also leaves the state idle.
func (r *Recorder) Start() error {
	if r.recognizer == nil {
		return ErrUnsupported
	}
	if r.active {
		return nil
	}
	r.errMsg = ""
	r.token++
	tok := r.token

	onResult := func(transcript string) {
		if tok != r.token {
			return // late callback after stop
		}
		if r.onTranscript != nil {
			r.onTranscript(transcript)
		}
	}
	onErr := func(err error) {
		if tok != r.token {
			return
		}
		// Surface the error, then transition to idle autonomously. The
		// transcript accumulated so far stays with the consumer.
		r.errMsg = fmt.Sprintf("Failed to record: %v. Please try again.", err)
		r.stopRecognition()
	}

	if err := r.recognizer.Start(onResult, onErr); err != nil {
		r.errMsg = "Failed to start recording. Please try again."
		return fmt.Errorf("%w: %v", ErrRecognition, err)
	}
	r.active = true
	return nil
}

// Stop transitions to idle from any state. It is idempotent; calling it when
// already idle is safe. Updates arriving after Stop are discarded.
func (r *Recorder) Stop() {
	if r.recognizer == nil {
		return
	}
	r.stopRecognition()
}

func (r *Recorder) stopRecognition() {
	r.token++
	if r.active {
		r.recognizer.Stop()
	}
	r.active = false
}
