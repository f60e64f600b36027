package domain

// CaptureData is the immutable snapshot exchanged with the capture
// holder: a sampling period in microseconds and the set of counter
// uids currently selected for capture.
type CaptureData struct {
	Period     uint32
	CounterIDs []Uid
}

// Clone returns a deep copy so callers can hand out CaptureData
// without letting the recipient mutate the holder's internal state.
func (c CaptureData) Clone() CaptureData {
	ids := make([]Uid, len(c.CounterIDs))
	copy(ids, c.CounterIDs)
	return CaptureData{Period: c.Period, CounterIDs: ids}
}
