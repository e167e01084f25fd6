package status

type Status = int32

const (
	Running Status = iota
	Completed
	Stopped
)
