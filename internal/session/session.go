package session

import (
	"github.com/duskfall/core/internal/match"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Track and cue names understood by a Backend.
const (
	MusicStealth = "stealth"
	MusicBattle  = "battle"
	SoundWin     = "win"
	SoundFail    = "fail"
)

// Backend plays audio. Mixing and asset loading live behind it.
type Backend interface {
	PlaySound(name string, volume float64)
	PlayMusic(name string, volume float64, loop bool)
	StopMusic()
}

// AudioSettings are the player's audio preferences for the session.
type AudioSettings struct {
	MusicEnabled bool
	SoundEnabled bool
	MusicVolume  float64 // 0.0-1.0
	SoundVolume  float64 // 0.0-1.0
}

// Session is the per-match handle for music and sound. It consumes the
// scheduler's effect descriptors; there is no global audio state.
type Session struct {
	id       uuid.UUID
	backend  Backend
	settings AudioSettings
	log      *zap.Logger

	music  string // current track, "" when silent
	counts map[match.EffectKind]int
}

var _ match.EffectSink = (*Session)(nil)

func New(backend Backend, settings AudioSettings, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		id:       id,
		backend:  backend,
		settings: settings,
		log:      log.With(zap.Stringer("session", id)),
		counts:   make(map[match.EffectKind]int),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

// Start begins the stealth music.
func (s *Session) Start() {
	s.playMusic(MusicStealth)
}

// Music returns the track currently playing.
func (s *Session) Music() string { return s.music }

// Count returns how many effects of kind k have been consumed.
func (s *Session) Count(k match.EffectKind) int { return s.counts[k] }

// SetAudio applies new settings. Disabling music stops the current track;
// enabling it again resumes the track that should be playing.
func (s *Session) SetAudio(settings AudioSettings) {
	prev := s.settings
	s.settings = settings
	switch {
	case prev.MusicEnabled && !settings.MusicEnabled:
		s.backend.StopMusic()
	case s.music != "" && settings.MusicEnabled && (!prev.MusicEnabled || prev.MusicVolume != settings.MusicVolume):
		s.backend.PlayMusic(s.music, settings.MusicVolume, true)
	}
}

func (s *Session) Consume(effects []match.Effect) {
	for _, e := range effects {
		s.counts[e.Kind]++
		switch e.Kind {
		case match.EffectPlayWinSound:
			s.stopMusic()
			s.playSound(SoundWin)
		case match.EffectPlayFailSound:
			s.stopMusic()
			s.playSound(SoundFail)
		case match.EffectPlayBattleMusic:
			s.playMusic(MusicBattle)
		default:
			s.log.Debug("effect", zap.Stringer("effect", e))
		}
	}
}

func (s *Session) playSound(name string) {
	if !s.settings.SoundEnabled {
		return
	}
	s.backend.PlaySound(name, s.settings.SoundVolume)
}

func (s *Session) playMusic(name string) {
	if s.music == name {
		return
	}
	s.music = name
	if !s.settings.MusicEnabled {
		return
	}
	s.backend.StopMusic()
	s.backend.PlayMusic(name, s.settings.MusicVolume, true)
}

func (s *Session) stopMusic() {
	if s.music == "" {
		return
	}
	s.music = ""
	if s.settings.MusicEnabled {
		s.backend.StopMusic()
	}
}
