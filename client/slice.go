package client

// Status is the lifecycle of one async operation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// AsyncState tracks one operation's status and last error message.
// Concurrent dispatches are not fenced: whichever call writes last wins.
type AsyncState struct {
	Status Status
	Error  string
}

func (s *AsyncState) loading() {
	s.Status = StatusLoading
	s.Error = ""
}

func (s *AsyncState) success() {
	s.Status = StatusSuccess
	s.Error = ""
}

func (s *AsyncState) failed(err error) {
	s.Status = StatusFailed
	s.Error = err.Error()
}

func (s *AsyncState) reset() {
	s.Status = StatusIdle
	s.Error = ""
}
