// Package ui contains the Bubble Tea program that drives the file manager.
// Model.Update is the single controller goroutine: every key press, operation
// poll and directory-change notification arrives as a message and is applied
// to the session there.
//
// Message flow:
//   - Key presses go to the console prompt when it is open. Otherwise they are
//     fed to the chord resolver; a completed chord runs its command through the
//     command bus, an escape or unknown key resets the chord.
//   - While file operations are in flight a pollTickMsg is scheduled every
//     poll interval. Each tick polls every task with a short timeout, so key
//     presses interleave with progress updates. No tick runs while idle.
//   - A backend.Watcher streams directory-change events; each one marks the
//     matching listing stale, or re-scans it when it is on screen.
//
// State ownership:
//   - internal/session owns tabs, listings and operations. The model only
//     keeps view state: geometry, the prompt, the pending chord, and the
//     parent/preview panels, which are refreshed after every update rather
//     than while rendering.
package ui
