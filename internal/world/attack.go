package world

// AttackState tracks one attacker's swing and cooldown counters, in seconds.
type AttackState struct {
	Attacking bool
	LockedOut bool

	Length   float64 // duration of one attack
	Cooldown float64 // minimum time between attacks

	counter         float64
	cooldownCounter float64
}

// NewAttackState starts with a full cooldown so the first attack is available.
func NewAttackState(length, cooldown float64) AttackState {
	return AttackState{
		Length:          length,
		Cooldown:        cooldown,
		cooldownCounter: cooldown,
	}
}

// CanStart reports whether a new attack may begin.
func (s *AttackState) CanStart() bool {
	return !s.Attacking && !s.LockedOut && s.cooldownCounter >= s.Cooldown
}

// Initiate begins an attack and resets the cooldown.
func (s *AttackState) Initiate() {
	s.Attacking = true
	s.counter = 0
	s.cooldownCounter = 0
}

// Process advances the counters by dt.
func (s *AttackState) Process(dt float64) {
	if dt <= 0 {
		return
	}
	if s.Attacking {
		s.counter += dt
		if s.counter >= s.Length {
			s.Attacking = false
			s.counter = 0
		}
		return
	}
	s.cooldownCounter += dt
}
