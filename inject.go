package howitzer

// Queue defers cmd to the start of the next Update, the same point at which
// keyboard input is applied. Use Apply to run a command immediately.
func (s *Scene) Queue(cmd Command) {
	s.commandQueue = append(s.commandQueue, cmd)
}

// QueueRepeat queues cmd n times, as if its key were pressed n times.
func (s *Scene) QueueRepeat(cmd Command, n int) {
	for i := 0; i < n; i++ {
		s.Queue(cmd)
	}
}

// Pending returns the number of queued commands.
func (s *Scene) Pending() int {
	return len(s.commandQueue)
}

// processQueue applies every queued command in order and empties the queue.
func (s *Scene) processQueue() {
	if len(s.commandQueue) == 0 {
		return
	}
	for _, cmd := range s.commandQueue {
		if !s.Apply(cmd) {
			s.log.Debug().Stringer("command", cmd.Type).Msg("command rejected")
		}
	}
	clear(s.commandQueue)
	s.commandQueue = s.commandQueue[:0]
}
