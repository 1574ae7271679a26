package world

// Lighting is the stealth-phase light handle passed to player control.
type Lighting interface {
	Active() bool
	Dispose()
}

// StealthLight is the moonlight cone the player hides from during stealth.
type StealthLight struct {
	Radius   float64
	disposed bool
}

func (l *StealthLight) Active() bool { return l != nil && !l.disposed }

func (l *StealthLight) Dispose() {
	if l != nil {
		l.disposed = true
	}
}
