package entity

import "time"

// DispatchRecord describes one executor call made by the engine.
type DispatchRecord struct {
	ID           int64
	KeyMapID     string
	ActionID     string
	Kind         ActionKind
	EventType    KeyEventType
	MetaState    int
	Success      bool
	Error        string
	DispatchedAt time.Time
}

// NewDispatchRecord builds a record from an executor result.
func NewDispatchRecord(keyMapID string, action Action, eventType KeyEventType, metaState int, err error, at time.Time) DispatchRecord {
	rec := DispatchRecord{
		KeyMapID:     keyMapID,
		ActionID:     action.ID,
		Kind:         action.Payload.Kind,
		EventType:    eventType,
		MetaState:    metaState,
		Success:      err == nil,
		DispatchedAt: at.UTC(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// DispatchStat aggregates the journal of one key map.
type DispatchStat struct {
	KeyMapID       string
	Total          int64
	Failed         int64
	LastDispatched time.Time
}
