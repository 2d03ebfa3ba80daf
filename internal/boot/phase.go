package boot

type Phase int

const (
	ResetDisplay Phase = iota
	SetupScreens
	SetupBoard
	SetupWifi
	SyncClock
	RunDemo
	Exit
)

// Phases lists every phase in boot order.
var Phases = []Phase{ResetDisplay, SetupScreens, SetupBoard, SetupWifi, SyncClock, RunDemo, Exit}

func (p Phase) String() string {
	switch p {
	case ResetDisplay:
		return "reset-display"
	case SetupScreens:
		return "setup-screens"
	case SetupBoard:
		return "setup-board"
	case SetupWifi:
		return "setup-wifi"
	case SyncClock:
		return "sync-clock"
	case RunDemo:
		return "run-demo"
	case Exit:
		return "exit"
	}
	return "unknown"
}
