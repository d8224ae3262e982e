package main

// runJob drops gesture sessions whose widgets went away without ending their gesture.
func (p *Plugin) runJob() {
	if p.gestureSessions == nil {
		return
	}

	dropped := p.gestureSessions.Sweep()
	if dropped > 0 {
		p.API.LogInfo("Swept idle gesture sessions", "dropped", dropped, "open", p.gestureSessions.Len())
	}
}
