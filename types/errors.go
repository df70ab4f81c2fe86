package types

import "fmt"

// The oracle returns free text. Every structured call can therefore fail to
// parse, and each failure mode gets its own type so the router and the HTTP
// layer can match with errors.As and report something actionable.

// AnalysisParseError indicates the floorplan analysis response could not be
// parsed into a valid FloorplanAnalysis. The caller must discard the whole
// response; no partial room set is ever adopted.
type AnalysisParseError struct {
	Raw string // raw oracle output, for diagnostics
	Err error
}

func (e *AnalysisParseError) Error() string {
	return fmt.Sprintf("floorplan analysis response is not a valid room model: %v", e.Err)
}

func (e *AnalysisParseError) Unwrap() error { return e.Err }

// CorrectionParseError indicates an architecture correction response did not
// round-trip the room schema, or dropped feature IDs it was required to keep.
// The prior room remains in effect.
type CorrectionParseError struct {
	Raw string
	Err error
}

func (e *CorrectionParseError) Error() string {
	return fmt.Sprintf("architecture correction rejected: %v", e.Err)
}

func (e *CorrectionParseError) Unwrap() error { return e.Err }

// DesignAidParseError indicates the design aid response (image prompt, material
// breakdown, album title) was malformed. No design is appended.
type DesignAidParseError struct {
	Raw string
	Err error
}

func (e *DesignAidParseError) Error() string {
	return fmt.Sprintf("design aid response is malformed: %v", e.Err)
}

func (e *DesignAidParseError) Unwrap() error { return e.Err }

// NoImageProducedError indicates the image oracle answered without an inline
// image payload.
type NoImageProducedError struct {
	Call string // "render" or "refine"
}

func (e *NoImageProducedError) Error() string {
	return fmt.Sprintf("image %s call produced no image payload", e.Call)
}

// OracleUnavailableError wraps transport or auth failures talking to the
// oracle, as opposed to the oracle answering with garbage.
type OracleUnavailableError struct {
	Call string
	Err  error
}

func (e *OracleUnavailableError) Error() string {
	return fmt.Sprintf("oracle call %q failed: %v", e.Call, e.Err)
}

func (e *OracleUnavailableError) Unwrap() error { return e.Err }
