package rod

// Unreachable exposes the failure classification to external tests.
var Unreachable = unreachable
