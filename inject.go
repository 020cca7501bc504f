package scrollscape

// InjectScroll queues a scroll offset to be used as the scroll sample of a
// future tick. One queued offset is consumed per tick. When the scene's scroll
// source is a *ScrollControls the offset is applied with Jump, so it persists;
// otherwise it overrides the source for that tick only.
func (s *Scene) InjectScroll(offset float64) {
	s.injectQueue = append(s.injectQueue, offset)
}

// InjectScrollSweep queues a linear scroll from one offset to another spread
// over frames ticks, including both endpoints. Minimum frames is 2.
func (s *Scene) InjectScrollSweep(from, to float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	last := float64(frames - 1)
	for i := 0; i < frames; i++ {
		s.InjectScroll(from + (to-from)*float64(i)/last)
	}
}

// PendingInjections returns the number of queued scroll samples.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}
