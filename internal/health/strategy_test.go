package health

import "testing"

func TestEWMAStrategy(t *testing.T) {
	s := &EWMAStrategy{Alpha: 0.1}

	rate := 100.0
	for i := 0; i < 5; i++ {
		rate = s.Update(rate, false)
	}
	if rate >= 100.0*0.9*0.9*0.9*0.9*0.9+0.01 {
		t.Errorf("rate did not decay under failures: %f", rate)
	}

	recovered := s.Update(rate, true)
	if recovered <= rate {
		t.Errorf("rate did not recover on success: %f -> %f", rate, recovered)
	}
}

func TestSlidingStrategyBounds(t *testing.T) {
	s := &SlidingStrategy{StepUp: 5, StepDown: 20}

	if got := s.Update(98, true); got != 100 {
		t.Errorf("upper bound not clamped: %f", got)
	}
	if got := s.Update(10, false); got != 0 {
		t.Errorf("lower bound not clamped: %f", got)
	}
	if got := s.Update(50, false); got != 30 {
		t.Errorf("step down wrong: %f", got)
	}
}
