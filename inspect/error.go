package inspect

//go:generate go tool stringer -type=Stage -linecomment -output=stage_string.go

// Stage identifies a decoding step.
type Stage uint8

const (
	StageHeader      Stage = iota // header
	StageContainer                // container
	StageDisassembly              // disassembly
	StageGraphics                 // graphics
)

// Error is returned by Parse. It records the stage that failed.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return e.Stage.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
