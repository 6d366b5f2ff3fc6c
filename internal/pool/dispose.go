package pool

// DisposeAll irreversibly tears the pool down. It is one-shot and idempotent.
//
// Disposal closes the pool's done channel, unblocking every current and
// future AcquireWait into a disposal abort, then destroys every idle engine.
// Engines still held by borrowers are left untouched: their eventual Release
// observes the disposed flag and destroys them instead of re-pooling.
func (p *Pool) DisposeAll() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	close(p.doneCh)

	drained := p.idle
	p.idle = nil
	p.created -= len(drained)
	stillInUse := len(p.inUse)
	p.mu.Unlock()

	for _, engine := range drained {
		p.Factory.Destroy(engine)
	}

	if stillInUse > 0 {
		p.Logger.Debug("playerpool: disposed with engines still in use; they will be destroyed on release")
	}
}
