package session

import "go.uber.org/zap"

// LogBackend writes audio cues to the log instead of a mixer. Used by the
// headless driver.
type LogBackend struct {
	log *zap.Logger
}

func NewLogBackend(log *zap.Logger) *LogBackend {
	return &LogBackend{log: log}
}

func (b *LogBackend) PlaySound(name string, volume float64) {
	b.log.Info("sound", zap.String("cue", name), zap.Float64("volume", volume))
}

func (b *LogBackend) PlayMusic(name string, volume float64, loop bool) {
	b.log.Info("music", zap.String("track", name), zap.Float64("volume", volume), zap.Bool("loop", loop))
}

func (b *LogBackend) StopMusic() {
	b.log.Debug("music stopped")
}
