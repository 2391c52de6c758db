package hover

// Deferred is an explicit cancellable one-shot action. Arm returns a
// token; Fire only takes effect when called with the token of the most
// recent un-cancelled arming, so a stale firing scheduled before a
// re-arm or cancel is inert. Time lives outside: the caller schedules
// the firing however it likes and tests fire directly.
type Deferred struct {
	gen   int
	armed bool
}

// Arm schedules the action and returns the token the eventual firing
// must present. Re-arming invalidates any outstanding token.
func (d *Deferred) Arm() int {
	d.gen++
	d.armed = true
	return d.gen
}

// Cancel invalidates the outstanding token, if any.
func (d *Deferred) Cancel() {
	d.armed = false
}

// Fire consumes the token. Returns true only for the current armed
// token; anything else is stale and ignored.
func (d *Deferred) Fire(token int) bool {
	if !d.armed || token != d.gen {
		return false
	}
	d.armed = false
	return true
}

// Armed reports whether a firing is outstanding.
func (d *Deferred) Armed() bool {
	return d.armed
}
