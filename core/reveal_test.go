package orchestration

import (
	"strings"
	"testing"
	"time"
)

func TestRevealTerminatesAndIsMonotone(t *testing.T) {
	for _, text := range []string{
		"",
		"Miaou!",
		"Meow? " + strings.Repeat("purr ", 200),
		"Miaou! Ça va très bien, merci! Émotions: ❤️",
	} {
		reveal := newRevealState(text)

		var rebuilt strings.Builder
		previous := 0
		for steps := 0; !reveal.done(); steps++ {
			if steps > len(text)+1 {
				t.Fatalf("reveal of %d runes did not terminate", len([]rune(text)))
			}

			chunk := reveal.step()
			if chunk == "" {
				t.Fatal("expected a non-empty chunk before the reveal is done")
			}
			rebuilt.WriteString(chunk)

			if reveal.revealed < previous {
				t.Fatalf("revealed prefix shrank from %d to %d", previous, reveal.revealed)
			}
			if reveal.revealed > len(reveal.full) {
				t.Fatalf("revealed prefix %d exceeds full length %d", reveal.revealed, len(reveal.full))
			}
			previous = reveal.revealed
		}

		if rebuilt.String() != text {
			t.Errorf("expected revealed chunks to rebuild %q, got %q", text, rebuilt.String())
		}
		if chunk := reveal.step(); chunk != "" {
			t.Errorf("expected no chunk after completion, got %q", chunk)
		}
	}
}

func TestRevealChunksGrowWithLength(t *testing.T) {
	long := newRevealState(strings.Repeat("a", 480))
	if chunk := long.step(); len(chunk) < 2 {
		t.Errorf("expected a long reply to reveal more than %d rune(s) per step", len(chunk))
	}

	short := newRevealState("hi")
	if chunk := short.step(); len(chunk) != 1 {
		t.Errorf("expected a short reply to reveal 1 rune per step, got %d", len(chunk))
	}
}

func TestRevealStepDelayScalesInversely(t *testing.T) {
	if fast, slow := revealStepDelay(2), revealStepDelay(0.5); fast >= slow {
		t.Errorf("expected a higher speed to shorten the delay, got %v >= %v", fast, slow)
	}
	if delay := revealStepDelay(0); delay != baseRevealStepDelay {
		t.Errorf("expected an unset speed to use the base delay, got %v", delay)
	}
	if delay := revealStepDelay(1); delay != 40*time.Millisecond {
		t.Errorf("expected the base delay at speed 1, got %v", delay)
	}
}
