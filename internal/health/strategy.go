package health

// SuccessRateStrategy 成功率更新策略
type SuccessRateStrategy interface {
	Update(current float64, success bool) float64
}

// EWMAStrategy 趋势平滑，适合高频场景
type EWMAStrategy struct {
	Alpha float64 // e.g. 0.1
}

func (e *EWMAStrategy) Update(current float64, success bool) float64 {
	var value float64
	if success {
		value = 100
	}
	return e.Alpha*value + (1-e.Alpha)*current
}

// SlidingStrategy 滑动步进策略，成功缓升失败快降
type SlidingStrategy struct {
	StepUp   float64
	StepDown float64
}

func (s *SlidingStrategy) Update(current float64, success bool) float64 {
	if success {
		if current+s.StepUp > 100 {
			return 100
		}
		return current + s.StepUp
	}
	if current-s.StepDown < 0 {
		return 0
	}
	return current - s.StepDown
}
