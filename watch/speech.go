package watch

import (
	"context"

	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Speech drives a speech synthesizer. Data holds the text of the
// current utterance and Loading reports whether it is still speaking.
// Speaking again cancels the previous utterance first.
type Speech struct {
	binding bind.Binding
	speaker platform.Speaker
	sig     *state.Signal[state.Async[string]]
}

// NewSpeech creates an adapter over speaker. A nil speaker reports
// unsupported on every Speak.
func NewSpeech(speaker platform.Speaker) *Speech {
	return &Speech{
		speaker: speaker,
		sig:     state.NewSignal(state.Unsupported[string]()),
	}
}

// Speak starts an utterance, superseding any in-flight one.
func (s *Speech) Speak(ctx context.Context, text string) {
	if s == nil {
		return
	}
	s.binding.Activate(func(g *bind.Guard) {
		if s.speaker == nil {
			s.sig.Set(state.Unsupported[string]())
			return
		}
		ctx, cancel := context.WithCancel(ctx)
		g.Cleanup(func() {
			cancel()
			s.speaker.Cancel()
		})

		s.sig.Set(state.Async[string]{Data: text, Loading: true, Supported: true})
		go func() {
			err := s.speaker.Speak(ctx, text)
			g.Commit(func() {
				s.sig.Set(state.Async[string]{Data: text, Err: err, Supported: true})
			})
		}()
	})
}

// Stop cancels the current utterance.
func (s *Speech) Stop() {
	if s == nil {
		return
	}
	s.binding.Deactivate()
}

// Cell returns the utterance cell.
func (s *Speech) Cell() state.Readable[state.Async[string]] {
	if s == nil {
		return nil
	}
	return s.sig
}
