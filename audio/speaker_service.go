package audio

import (
	"log"
	"sync/atomic"
)

// SpeakerService wraps Speaker as a service.Service
// A missing audio device disables the speaker instead of failing startup
type SpeakerService struct {
	speaker  *Speaker
	wave     Wave
	disabled atomic.Bool
}

// NewService creates a speaker service
func NewService(wave Wave) *SpeakerService {
	return &SpeakerService{wave: wave}
}

// Name implements Service
func (s *SpeakerService) Name() string {
	return "speaker"
}

// Dependencies implements Service
func (s *SpeakerService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - muted (default true)
func (s *SpeakerService) Init(args ...any) error {
	muted := true
	if len(args) > 0 {
		if m, ok := args[0].(bool); ok {
			muted = m
		}
	}
	s.speaker = NewSpeaker(!muted, s.wave)
	s.disabled.Store(muted)
	return nil
}

// Start implements Service
func (s *SpeakerService) Start() error {
	if s.disabled.Load() || s.speaker == nil {
		return nil
	}
	if err := s.speaker.Initialize(); err != nil {
		log.Printf("speaker unavailable: %v", err)
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements Service
func (s *SpeakerService) Stop() error {
	if s.speaker != nil {
		s.speaker.Cleanup()
	}
	return nil
}

// Speaker returns the speaker, nil if muted or no device opened
func (s *SpeakerService) Speaker() *Speaker {
	if s.disabled.Load() || s.speaker == nil || !s.speaker.Enabled() {
		return nil
	}
	return s.speaker
}
