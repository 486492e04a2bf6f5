package framework

// TestLogger receives scenario lifecycle notifications as the harness runs.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

// RecordingTestLogger keeps a readable record of every notification, for tests of code
// that drives scenarios.
type RecordingTestLogger struct {
	Events []string
}

func (r *RecordingTestLogger) TestStarted(id TestID) {
	r.Events = append(r.Events, "started "+id.String())
}

func (r *RecordingTestLogger) TestError(id TestID, err error) {
	r.Events = append(r.Events, "error "+id.String()+": "+err.Error())
}

func (r *RecordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		r.Events = append(r.Events, "failed "+id.String())
	} else {
		r.Events = append(r.Events, "finished "+id.String())
	}
}

func (r *RecordingTestLogger) TestSkipped(id TestID, reason string) {
	r.Events = append(r.Events, "skipped "+id.String()+": "+reason)
}
