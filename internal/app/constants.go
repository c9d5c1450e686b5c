package app

// SeatCount is the number of seats a Pidro table needs before a game can start.
const SeatCount = 4

// DefaultMoveCacheSize bounds the legal-action cache kept by a Service.
const DefaultMoveCacheSize = 4096

// maxAdvanceSteps bounds the automatic phase loop after a single action. A full cascade
// (last card of a hand through to the next deal) takes well under ten steps.
const maxAdvanceSteps = 64
