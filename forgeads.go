// Package forgeads turns product landing pages and uploaded documents into
// validated product profiles and the ad copy generated from them.
//
// This package contains domain types, interfaces and pure domain logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// gemini/, sqlite/). The creative/ package orchestrates them.
package forgeads
