package assistant

// timer 由 Update 推进的单次计时器
type timer struct {
	remaining float64
	active    bool
}

func (t *timer) start(d float64) {
	t.remaining = d
	t.active = true
}

func (t *timer) stop() {
	t.active = false
	t.remaining = 0
}

// tick 推进计时器，到期时返回 true 并停止
func (t *timer) tick(dt float64) bool {
	if !t.active {
		return false
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.stop()
		return true
	}
	return false
}
