package mock

import "github.com/wanderapp/wander"

// Interface compliance check.
var _ wander.Recognizer = (*Recognizer)(nil)

// Recognizer is a test double for wander.Recognizer. It captures the
// callbacks passed to Start so tests can drive transcript and error
// delivery, including late deliveries after Stop.
type Recognizer struct {
	// StartErr, when set, is returned by Start.
	StartErr error

	// Started and Stopped count lifecycle calls.
	Started int
	Stopped int

	onResult func(string)
	onErr    func(error)
}

// Start records the callbacks and reports StartErr.
func (r *Recognizer) Start(onResult func(string), onErr func(error)) error {
	if r.StartErr != nil {
		return r.StartErr
	}
	r.Started++
	r.onResult = onResult
	r.onErr = onErr
	return nil
}

// Stop counts the call. The captured callbacks are kept so tests can emit
// late deliveries.
func (r *Recognizer) Stop() {
	r.Stopped++
}

// EmitResult delivers a full-transcript update through the captured callback.
func (r *Recognizer) EmitResult(transcript string) {
	if r.onResult != nil {
		r.onResult(transcript)
	}
}

// EmitError delivers a recognition error through the captured callback.
func (r *Recognizer) EmitError(err error) {
	if r.onErr != nil {
		r.onErr(err)
	}
}
