package driver

// Status captures the state of one file in TokenizeFiles.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Finished reports whether no further events follow for the file.
func (s Status) Finished() bool {
	return s == StatusCached || s == StatusDone || s == StatusError
}

// ProgressEvent is emitted for every status change of a file. File is the
// path exactly as passed to TokenizeFiles.
type ProgressEvent struct {
	File   string
	Status Status
	Tokens int
}

// ProgressSink receives progress events. OnEvent is called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(ProgressEvent)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- ProgressEvent
}

func (s ChannelSink) OnEvent(evt ProgressEvent) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emitProgress(sink ProgressSink, file string, status Status, tokens int) {
	if sink == nil {
		return
	}
	sink.OnEvent(ProgressEvent{File: file, Status: status, Tokens: tokens})
}

// resultStatus maps a finished result onto its final status.
func resultStatus(res *TokenizeResult) Status {
	switch {
	case res.Bag.HasErrors():
		return StatusError
	case res.Cached:
		return StatusCached
	default:
		return StatusDone
	}
}
