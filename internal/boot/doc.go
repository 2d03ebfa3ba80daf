// Package boot sequences device bring-up and runs the demo loop.
//
// The [Controller] is an explicit finite state machine over [Phase]:
//
//	ResetDisplay -> SetupScreens -> SetupBoard -> SetupWifi -> SyncClock -> RunDemo (loops)
//
// Exit is reached only when the caller's context ends. Every loop iteration
// polls the buttons, runs the current phase once and refreshes the display.
//
// Hardware and network are reached only through the collaborator interfaces
// in [Deps]: [Display], [Network], [HTTPClient] and [Clock].
//
// # Failure Policy
//
//   - missing credentials and hardware init failures are fatal ([PhaseError])
//   - network association retries forever, without backoff
//   - a failed clock sync is logged and skipped
//
// # Thread Safety
//
// A Controller is NOT thread-safe. All of its state, including the pages it
// registers, belongs to the goroutine calling Run.
package boot
