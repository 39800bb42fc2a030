// Package tickq bridges concurrently running asynchronous tasks and a shared
// mutable state store that may only be touched once per discrete host tick.
//
// The engine funnels every state access through a single unbounded job queue
// drained by the host-driven step, and comes with adapter layers built purely
// on that primitive:
//
//   - service/timer    – tick-stepped countdown and deadline signals
//   - service/watch    – per-tick diff-and-notify value subscriptions
//   - service/stream   – cursor-based readers over append-only per-tick logs
//   - service/eventlog – an in-memory append-only log with bounded retention
//   - service/resource – asynchronous external resource loading over afs
//
// tickq is designed to be embedded in host applications. End-users typically
// interact with the engine via the high-level Service façade exposed by the
// root package:
//
//	srv := tickq.New[*gameState]()
//	rt := srv.Runtime()
//	rt.Spawn(ctx, func(ctx context.Context, h *tickq.Handle[*gameState]) {
//	    score, _ := tickq.Submit(h, func(s *gameState) int { return s.score }).Wait(ctx)
//	    _ = score
//	})
//	for running {
//	    rt.Step(ctx, state) // once per tick, with exclusive state access
//	}
//
// For more details see the README and individual sub-packages.
package tickq
