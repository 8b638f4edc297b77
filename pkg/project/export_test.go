package project

// resetCurrent clears the process-wide project between tests.
func resetCurrent() {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = nil
}
