// Package intro runs the carving-trail intro animation.
//
// One [Animation] owns all per-run state: head, velocity, target, trail,
// phase, timers and the color crossfade. It is mutated only from
// [Driver.Tick], which clamps the frame delta, advances the phase machine,
// and hands an immutable [Frame] to a [Painter].
//
// # Phases
//
//	carve --(run duration elapsed)--> exit --(head off-screen)--> clear --(pause over)--> carve
//
// There is no terminal phase; the host stops the driver when the user
// dismisses the intro through the [SkipGate].
//
// # Scheduling
//
// The driver never sleeps. It asks a [Scheduler] for the next tick, so tests
// and headless hosts can use [ManualScheduler] and feed synthetic time.
package intro
