package interpreter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfolio/internal/resume"
)

func TestNew_Welcome(t *testing.T) {
	s := New(resume.Sample(), nil, nil)
	assert.Equal(t, []Entry{
		{Kind: KindOutput, Text: `Welcome — type "help" to see commands.`},
		{Kind: KindOutput, Text: "Loaded resume for Jordan Lee (Full Stack Developer)\n"},
	}, s.History())
	assert.NotEmpty(t, s.ID())
}

func TestSubmit_EchoesTrimmedLine(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), nil)

	run(t, s, "   whoami  ")

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, Entry{Kind: KindCommand, Text: "$ whoami"}, history[0])
	assert.Equal(t, []string{"whoami"}, s.CommandLog())
	_, recalling := s.Cursor()
	assert.False(t, recalling)
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), nil)
	run(t, s, "about")
	s.RecallPrevious()
	before := s.History()

	for _, line := range []string{"", "   ", "\t\n"} {
		run(t, s, line)
	}

	assert.Equal(t, before, s.History())
	assert.Equal(t, []string{"about"}, s.CommandLog())
	idx, recalling := s.Cursor()
	assert.True(t, recalling, "blank submissions must not reset the cursor")
	assert.Equal(t, 0, idx)
}

func TestSubmit_CommandNameIsCaseInsensitive(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), nil)
	run(t, s, "WhoAmI")
	assert.Equal(t, []string{"Jordan Lee — Full Stack Developer"}, outputs(s))
	assert.Equal(t, "$ WhoAmI", s.History()[0].Text)
}

func TestSubmit_FallbackAnswer(t *testing.T) {
	asker := &stubAsker{answer: "Jordan works with Go and React."}
	s, _ := newTestSession(resume.Sample(), asker)

	run(t, s, "what does jordan   use?")

	assert.Equal(t, []string{"what does jordan   use?"}, asker.calls, "the full original line is forwarded")
	assert.Equal(t, []string{"Jordan works with Go and React."}, outputs(s))
	assert.False(t, s.Busy())

	history := s.History()
	assert.False(t, history[0].Answer)
	assert.True(t, history[1].Answer, "service answers are marked")
}

func TestSubmit_FallbackEmptyAnswer(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), &stubAsker{})
	run(t, s, "sudo make me a sandwich")
	assert.Equal(t, []string{"Unknown command: sudo make me a sandwich"}, outputs(s))
	assert.False(t, s.History()[1].Answer)
}

func TestSubmit_FallbackTransportFailure(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), &stubAsker{err: errOffline})
	run(t, s, "hello")
	assert.Equal(t, []string{"Error querying API: dial tcp: connection refused"}, outputs(s))
	assert.False(t, s.Busy())
}

func TestSubmit_FallbackWithoutAsker(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), nil)
	run(t, s, "hello")
	assert.Equal(t, []string{"Unknown command: hello"}, outputs(s))
}

func TestSubmit_FallbackPanicIsContained(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), panickingAsker{})
	run(t, s, "hello")
	assert.Equal(t, []string{"Error querying API: boom"}, outputs(s))
	assert.False(t, s.Busy())
}

func TestSubmit_EffectPanicIsContained(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"resume --json", "Error: disk gone"},
		{"open color-wheel", "Error: no display"},
		{"resume", "Error: no display"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := New(resume.Sample(), nil, panickingEffects{}, WithoutWelcome())
			var (
				done <-chan struct{}
				err  error
			)
			require.NotPanics(t, func() {
				done, err = s.Submit(context.Background(), tt.line)
			})
			require.NoError(t, err)
			<-done

			out := outputs(s)
			require.NotEmpty(t, out)
			assert.Equal(t, tt.want, out[len(out)-1])
			assert.Equal(t, []string{tt.line}, s.CommandLog())

			// the session keeps working afterwards
			run(t, s, "whoami")
			assert.Equal(t, "Jordan Lee — Full Stack Developer", outputs(s)[len(outputs(s))-1])
		})
	}
}

func TestSubmit_BusyWhileQueryInFlight(t *testing.T) {
	asker := &stubAsker{answer: "later", release: make(chan struct{})}
	s, _ := newTestSession(resume.Sample(), asker)

	done, err := s.Submit(context.Background(), "tell me more")
	require.NoError(t, err)
	assert.True(t, s.Busy(), "busy is set before Submit returns")

	_, err = s.Submit(context.Background(), "about")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, []string{"tell me more"}, s.CommandLog(), "rejected lines are not logged")

	close(asker.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("query did not settle")
	}
	assert.False(t, s.Busy())
	assert.Equal(t, []string{"later"}, outputs(s))

	run(t, s, "whoami")
	assert.Len(t, s.CommandLog(), 2)
}

func TestSubmit_CanceledContextDoesNotAbortQuery(t *testing.T) {
	asker := &stubAsker{answer: "still answered"}
	s, _ := newTestSession(resume.Sample(), asker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done, err := s.Submit(ctx, "question")
	require.NoError(t, err)
	<-done

	assert.Equal(t, []string{"still answered"}, outputs(s))
}

func TestReset(t *testing.T) {
	s, _ := newTestSession(resume.Sample(), nil)
	run(t, s, "about")
	s.SetInput("half typed")
	epoch := s.Epoch()

	s.Reset()

	assert.Empty(t, s.History())
	assert.Empty(t, s.Input())
	assert.Equal(t, []string{"about"}, s.CommandLog())
	assert.Greater(t, s.Epoch(), epoch)
}
