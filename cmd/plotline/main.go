package main

// ============================================================================
// PLOTLINE CLI — Free-text analysis tasks to computed answers
// ============================================================================

func main() {
	Execute()
}
