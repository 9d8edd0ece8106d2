package game

type HistoryEntry struct {
	N         int
	Move      Move
	Cell      Cell
	IsAi      bool
	ElapsedMs float64
}

// MoveHistory records moves in play order. All and Last hand out copies so
// callers cannot disturb the log.
type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = h.entries[:0]
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	entry.N = len(h.entries) + 1
	h.entries = append(h.entries, entry)
}

func (h *MoveHistory) Size() int {
	return len(h.entries)
}

func (h *MoveHistory) All() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
