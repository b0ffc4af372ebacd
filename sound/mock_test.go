// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errScriptEnd = errors.New("pulled past the end of the script")

// scripted is a Stage replaying a fixed list of units. An entry with a
// non-nil error in errs at the same index is returned as an error instead.
type scripted struct {
	channels   int
	sampleRate int
	units      []Next
	errs       map[int]error

	pulls   int
	batches int
	closed  bool
}

func newScripted(channels int, units ...Next) *scripted {
	return &scripted{channels: channels, sampleRate: 44100, units: units}
}

// failAt makes the pull at index i return err.
func (s *scripted) failAt(i int, err error) *scripted {
	if s.errs == nil {
		s.errs = make(map[int]error)
	}
	s.errs[i] = err
	return s
}

func (s *scripted) Channels() int   { return s.channels }
func (s *scripted) SampleRate() int { return s.sampleRate }
func (s *scripted) OnBatchStart()   { s.batches++ }

func (s *scripted) Close() error {
	s.closed = true
	return nil
}

func (s *scripted) Next() (Next, error) {
	i := s.pulls
	s.pulls++

	if err, ok := s.errs[i]; ok {
		return Next{}, err
	}
	if i >= len(s.units) {
		return Next{}, errScriptEnd
	}
	return s.units[i], nil
}

// samples turns values into Sample units followed by Finished.
func samples(vs ...int16) []Next {
	units := make([]Next, 0, len(vs)+1)
	for _, v := range vs {
		units = append(units, Sample(v))
	}
	return append(units, Finished())
}

// drain pulls s until Finished and returns every unit, Finished included.
func drain(t *testing.T, s Stage) []Next {
	t.Helper()

	var out []Next
	for range 1 << 20 {
		n, err := s.Next()
		require.NoError(t, err)

		out = append(out, n)
		if n.Kind == KindFinished {
			return out
		}
	}

	t.Fatal("stage never finished")
	return nil
}

// values keeps the sample values of units.
func values(units []Next) []int16 {
	var out []int16
	for _, n := range units {
		if n.Kind == KindSample {
			out = append(out, n.Sample)
		}
	}
	return out
}
